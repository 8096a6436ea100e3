package searchctl

import (
	"fmt"
	"time"

	"github.com/solskog/corvid/pkg/board"
)

// TimeControl represents time control information: the clock remaining for
// each side and how many moves it must cover (0 meaning the rest of the
// game).
type TimeControl struct {
	White, Black time.Duration
	Moves        int
}

// Limits returns a soft and hard time budget for the side to move c. After
// the soft limit, no new depth should be started; the hard limit is an
// unconditional cutoff mid-search.
func (t TimeControl) Limits(c board.Color) (time.Duration, time.Duration) {
	remainder := t.White
	if c == board.Black {
		remainder = t.Black
	}

	// Assume 40 moves to the end of the game if nothing else is known.
	// Let B = T/80 be the soft timeout and the hard timeout be 3B.
	moves := time.Duration(40)
	if t.Moves > 0 {
		moves = time.Duration(t.Moves) + 1
	}

	soft := remainder / (2 * moves)
	hard := 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}
