package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegrim/corvid/internal/config"
	"github.com/arnegrim/corvid/pkg/engine"
)

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "corvid.yaml")
	require.NoError(t, writeFile(path, "depth: 6\nhash: 64\nnoise: false\n"))

	c, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, engine.Options{Depth: 6, Hash: 64, Noise: false}, c.Options())
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAMLErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, writeFile(path, "depth: [this is not valid\n"))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}
