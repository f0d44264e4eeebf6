package eval

import (
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/arnegrim/corvid/pkg/board"
)

// Score is a signed position score in centipawns, positive favoring the side
// to move. Search treats Inf/NegInf as effectively unreachable bounds; they
// sit just outside [MinScore; MaxScore] and far from the int32 limits, so
// negating them or adding root noise cannot wrap. Crop clamps a score back
// into [MinScore; MaxScore]; search does not call it.
type Score int32

const (
	MinScore Score = -1000000
	MaxScore Score = 1000000
	NegInf   Score = MinScore - 1
	Inf      Score = MaxScore + 1
)

func (s Score) String() string {
	return fmt.Sprintf("%+d", s)
}

// Negate flips a score to the opposing side's point of view -- the single
// operation negamax needs to recurse without tracking whose turn a score
// was computed for.
func (s Score) Negate() Score {
	return -s
}

// Unit returns the signed unit for the color: 1 for White and -1 for Black.
func Unit(c board.Color) Score {
	if c == board.White {
		return 1
	}
	return -1
}

// Crop clamps a Score into [MinScore; MaxScore].
func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

func Max(a, b Score) Score {
	return ordMax(a, b)
}

func Min(a, b Score) Score {
	return ordMin(a, b)
}

func ordMax[T constraints.Ordered](a, b T) T {
	if a < b {
		return b
	}
	return a
}

func ordMin[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}
