package search

import (
	"github.com/solskog/corvid/pkg/board"
	"github.com/solskog/corvid/pkg/movegen"
	"github.com/solskog/corvid/pkg/see"
)

// deltaMargin is the slack a capture gets before it is pruned outright
// without recursing into it: a capture is skipped when the stand-pat score
// plus its SEE gain plus this margin still falls short of alpha.
const deltaMargin board.Score = 200

// maxQuiescencePly bounds how many plies a check-evasion chain inside
// quiescence may run before it is cut off unconditionally. Ordinary
// quiescence (not in check) always terminates on its own once captures
// run out; only a constructed position with an extremely long forced
// check sequence could otherwise run unbounded.
const maxQuiescencePly = 32

// windowEvaluator is implemented by evaluators (eval.Composite) that can
// short-circuit slow terms against the caller's alpha/beta window.
// quiescence uses it opportunistically and falls back to plain Evaluate
// for evaluators that don't implement it.
type windowEvaluator interface {
	EvaluateWindow(pos *board.Position, alpha, beta board.Score) board.Score
}

type scoredCapture struct {
	move board.Move
	gain board.Score
}

// quiescence extends the search past the nominal horizon through capture
// (and, while in check, any) sequences, so the static evaluation is never
// reported in the middle of a hanging piece. qply counts plies spent
// inside quiescence specifically, independent of the overall search ply.
func (r *run) quiescence(pos *board.Position, ply, qply int, alpha, beta board.Score) board.Score {
	if r.halted() {
		return 0
	}
	r.nodes++

	turn := pos.Turn()
	inCheck := pos.IsAttacked(pos.King(turn), turn.Opponent())

	var standPat board.Score
	if !inCheck {
		standPat = r.evaluate(pos, alpha, beta)
		if standPat >= beta {
			return standPat
		}
		alpha = board.Max(alpha, standPat)
	}

	mode := movegen.TacticalOnly
	if inCheck {
		mode = movegen.All // every legal reply addresses the check, not just captures
	}

	var buf [movegen.MaxMoves]board.Move
	n := movegen.Generate(pos, buf[:], mode)

	moves := make([]scoredCapture, 0, n)
	for i := 0; i < n; i++ {
		m := buf[i]
		if !movegen.IsLegal(pos, m) {
			continue
		}
		gain := see.Evaluate(pos, m)
		if !inCheck && standPat+gain+deltaMargin < alpha {
			continue // delta-pruned
		}
		moves = append(moves, scoredCapture{move: m, gain: gain})
	}

	if inCheck && len(moves) == 0 {
		return board.MatedIn(ply)
	}
	if qply >= maxQuiescencePly {
		if inCheck {
			return r.evaluate(pos, alpha, beta)
		}
		return standPat
	}

	for len(moves) > 0 {
		best := 0
		for i := 1; i < len(moves); i++ {
			if moves[i].gain > moves[best].gain {
				best = i
			}
		}
		sel := moves[best]
		last := len(moves) - 1
		moves[best] = moves[last]
		moves = moves[:last]

		if !inCheck && sel.gain < 0 {
			continue // losing capture: never better than standing pat
		}

		info := pos.Make(sel.move, board.AllFlags)
		score := r.quiescence(pos, ply+1, qply+1, beta.Negate(), alpha.Negate()).Negate()
		pos.Unmake(sel.move, board.AllFlags, info)

		if score >= beta {
			return score
		}
		alpha = board.Max(alpha, score)
	}
	return alpha
}

func (r *run) evaluate(pos *board.Position, alpha, beta board.Score) board.Score {
	if we, ok := r.eval.(windowEvaluator); ok {
		return we.EvaluateWindow(pos, alpha, beta)
	}
	return r.eval.Evaluate(pos)
}
