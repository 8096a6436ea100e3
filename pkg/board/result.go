package board

import "fmt"

// Outcome is the game-theoretic outcome, if decided.
type Outcome uint8

const (
	Undecided Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

// Reason qualifies why an Outcome was reached.
type Reason uint8

const (
	NoReason Reason = iota
	Checkmate
	Stalemate
	Repetition
	NoProgress
	InsufficientMaterial
)

// Result is the result of a game, if any, plus the reason it was reached.
type Result struct {
	Outcome Outcome
	Reason  Reason
}

// Loss returns the Outcome recording a loss for the given color.
func Loss(c Color) Outcome {
	if c == White {
		return BlackWins
	}
	return WhiteWins
}

func (r Result) String() string {
	if r.Outcome == Undecided {
		return "undecided"
	}
	return fmt.Sprintf("%v (%v)", r.Outcome, r.Reason)
}

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

func (r Reason) String() string {
	switch r {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Repetition:
		return "repetition"
	case NoProgress:
		return "fifty-move rule"
	case InsufficientMaterial:
		return "insufficient material"
	default:
		return "-"
	}
}
