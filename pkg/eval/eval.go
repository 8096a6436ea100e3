// Package eval provides static position evaluation: the searcher's only
// dependency on "who stands better", expressed as a centipawn score from
// the side-to-move's perspective.
package eval

import "github.com/solskog/corvid/pkg/board"

// Evaluator is a static position evaluator. Positive scores favor the side
// to move in pos.
type Evaluator interface {
	Evaluate(pos *board.Position) board.Score
}

// Material sums the nominal value of every piece on the board for the side
// to move minus the opponent's.
type Material struct{}

func (Material) Evaluate(pos *board.Position) board.Score {
	turn := pos.Turn()
	var score board.Score
	for t := board.Pawn; t <= board.King; t++ {
		diff := pos.Bitboard(turn, t).PopCount() - pos.Bitboard(turn.Opponent(), t).PopCount()
		score += board.Score(diff) * board.PieceValue(t)
	}
	return score
}

// tempoBonus rewards the side to move for having the move at all: a small,
// constant acknowledgement that initiative has value independent of
// material.
const tempoBonus board.Score = 10

// Tempo always returns a fixed bonus for the side to move.
type Tempo struct{}

func (Tempo) Evaluate(pos *board.Position) board.Score { return tempoBonus }

// lazyMargin bounds how far the fast terms (material, PST, bishop pair,
// tempo) may already put the score outside the caller's search window
// before the slow terms (king safety) are skipped outright.
const lazyMargin board.Score = 150

// Composite evaluates a position by summing Fast terms, and only evaluates
// Slow terms when the running total does not already clear the caller's
// alpha/beta window by lazyMargin — the "lazy evaluation" optimisation: if
// material and piece placement alone already decide the comparison the
// searcher is making, there is no need to price in king safety too.
type Composite struct {
	Fast []Evaluator
	Slow []Evaluator
}

// NewDefault returns the reference evaluator: material, tapered
// piece-square tables, bishop pair and tempo as fast terms, king safety as
// the slow term. noiseLimit/noiseSeed add a small deterministic-per-seed
// amount of evaluation noise on top (0 disables it), the way an engine
// varies its own play without a real opponent model.
func NewDefault(noiseLimit int, noiseSeed int64) Composite {
	fast := []Evaluator{Material{}, PieceSquareTables{}, BishopPair{}, Tempo{}}
	if noiseLimit > 0 {
		fast = append(fast, NewRandom(noiseLimit, noiseSeed))
	}
	return Composite{
		Fast: fast,
		Slow: []Evaluator{KingSafety{}},
	}
}

func (c Composite) Evaluate(pos *board.Position) board.Score {
	return c.EvaluateWindow(pos, board.NegInfScore, board.InfScore)
}

// EvaluateWindow is Evaluate with lazy short-circuiting against an
// alpha/beta search window: quiescence calls this directly (the alpha-beta
// search reaches evaluation only through quiescence) so the lazy margin
// actually has a window to compare against. Evaluate alone (no window context) always runs every term.
func (c Composite) EvaluateWindow(pos *board.Position, alpha, beta board.Score) board.Score {
	var score board.Score
	for _, e := range c.Fast {
		score += e.Evaluate(pos)
	}

	if score+lazyMargin < alpha || score-lazyMargin > beta {
		return score
	}

	for _, e := range c.Slow {
		score += e.Evaluate(pos)
	}
	return score
}
