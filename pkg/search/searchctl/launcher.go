// Package searchctl drives iterative-deepening search under depth and time
// controls, and manages the lifecycle of an in-flight search for the engine.
package searchctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/arnegrim/corvid/pkg/board"
	"github.com/arnegrim/corvid/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold dynamic search options. The user may change these on a
// particular search.
type Options struct {
	// DepthLimit, if set, limits the search to the given ply depth.
	DepthLimit lang.Optional[uint]
	// TimeControl, if set, limits the search to the given time parameters.
	TimeControl lang.Optional[TimeControl]
}

func (o Options) String() string {
	var ret []string
	if v, ok := o.DepthLimit.V(); ok {
		ret = append(ret, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		ret = append(ret, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(ret, ", "))
}

// Launcher launches searches from a Game under the given options.
type Launcher interface {
	// Launch starts a new iteratively-deepening search from g, which the
	// caller must not otherwise touch until the returned Handle is halted.
	// It returns a PV channel updated once per completed depth, closed when
	// the search is exhausted.
	Launch(ctx context.Context, g *board.Game, tt *search.TranspositionTable, noise search.Noise, opt Options) (Handle, <-chan search.PV)
}

// Handle lets the engine manage an in-flight search. The engine spins off
// searches with forked games and halts/abandons them as needed; this keeps
// stopping conditions and resynchronization simple.
type Handle interface {
	// Halt halts the search, if running, and returns the last completed PV.
	// Idempotent.
	Halt() search.PV
}
