// Package engine wires together position, search and evaluation into a
// single-game playing engine, exposing the operations UCI and the debug
// console drive.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/arnegrim/corvid/pkg/board"
	"github.com/arnegrim/corvid/pkg/board/fen"
	"github.com/arnegrim/corvid/pkg/search"
	"github.com/arnegrim/corvid/pkg/search/searchctl"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are search creation options.
type Options struct {
	// Depth is the search depth limit. If zero, there is no limit.
	// Overridden by search options if provided.
	Depth uint
	// Hash is the transposition table size in MB. If zero, the engine will
	// not use a transposition table.
	Hash uint
	// Noise enables +/-10 centipawn root move randomization.
	Noise bool
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v}", o.Depth, o.Hash, o.Noise)
}

// Engine encapsulates game-playing logic, search and evaluation, and is the
// single mutable point of contact both UCI and the debug console drive.
type Engine struct {
	name, author string

	launcher searchctl.Launcher
	eval     search.Search
	zt       *board.ZobristTable
	seed     int64
	opts     Options

	g      *board.Game
	tt     *search.TranspositionTable
	noise  search.Noise
	active searchctl.Handle
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithZobrist configures the engine to use the given random seed instead of
// the default seed of zero.
func WithZobrist(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

func New(ctx context.Context, name, author string, root search.Search, opts ...Option) *Engine {
	e := &Engine{
		name:   name,
		author: author,
		eval:   root,
	}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = board.NewZobristTable(e.seed)
	e.launcher = searchctl.NewIterative(root)

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetHash(size uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = size
}

func (e *Engine) SetNoise(on bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Noise = on
}

// Game returns a forked game, safe for the caller to search or inspect
// without racing the engine's own mutations.
func (e *Engine) Game() *board.Game {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.g.Fork()
}

// Position returns the current position in FEN format. Convenience function.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.g.Position())
}

// Reset resets the engine to a new starting position in FEN format.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, depth=%v, TT=%vMB, noise=%v", position, e.opts.Depth, e.opts.Hash, e.opts.Noise)

	_, _ = e.haltSearchIfActive(ctx)

	pos, noprogress, fullmoves, err := fen.DecodeGame(position)
	if err != nil {
		return err
	}
	e.g = board.NewGame(e.zt, pos, noprogress, fullmoves)

	e.tt = nil
	if e.opts.Hash > 0 {
		e.tt = search.NewTranspositionTable(uint64(e.opts.Hash) << 20)
	}
	e.noise = nil
	if e.opts.Noise {
		e.noise = search.NewRootNoise(e.seed)
	}

	logw.Infof(ctx, "New game: %v", e.g)
	return nil
}

// Move applies the given UCI long-algebraic move, usually an opponent move.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	candidate, err := board.ParseMove(e.g.Position(), move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	_, _ = e.haltSearchIfActive(ctx)

	for _, m := range board.GenerateLegalMoves(e.g.Position()) {
		if !candidate.Equals(m.ToMove(e.g.Turn())) {
			continue
		}
		e.g.PushMove(m)
		logw.Infof(ctx, "Move %v: %v", m, e.g)
		return nil
	}
	return fmt.Errorf("illegal move: %v", candidate)
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	if !e.g.PopMove() {
		return fmt.Errorf("no move to take back")
	}

	logw.Infof(ctx, "Takeback")
	return nil
}

// Analyze starts a search of the current position.
func (e *Engine) Analyze(ctx context.Context, opt searchctl.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}

	logw.Infof(ctx, "Analyze %v, opt=%v", e.g, opt)

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	handle, out := e.launcher.Launch(ctx, e.g.Fork(), e.tt, e.noise, opt)
	e.active = handle
	return out, nil
}

// Halt halts the active search and returns the principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Halt")

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search %v halted: %v", e.g, pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}
