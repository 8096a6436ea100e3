package search

import (
	"context"
	"errors"

	"github.com/seekerror/stdlib/pkg/util/contextx"
	"github.com/solskog/corvid/pkg/board"
	"github.com/solskog/corvid/pkg/eval"
)

// ErrHalted is returned by Search when it is interrupted before completing
// its nominal depth.
var ErrHalted = errors.New("search halted")

// AlphaBeta is a negamax searcher with alpha-beta pruning, transposition
// table probing/storing, and staged move ordering (hash move, SEE-scored
// tactical, killers, history-scored quiet). Depth-zero nodes extend into a
// quiescence search rather than evaluating directly, so the search never
// reports a static score in the middle of a pending capture sequence.
//
// Killers and History are shared across the repeated Search calls of an
// iterative-deepening pass, so later, deeper iterations benefit from
// cutoffs found by earlier, shallower ones. TT may be nil (no caching) or
// NoTranspositionTable{}.
type AlphaBeta struct {
	Eval    eval.Evaluator
	TT      TranspositionTable
	Killers *KillerTable
	History *HistoryTable
}

// Result is the outcome of a single fixed-depth search.
type Result struct {
	Score board.Score
	Moves []board.Move // principal variation, root move first
	Nodes uint64
}

// Search runs a fixed-depth search of pos, which is mutated and restored
// via balanced Make/Unmake pairs over the course of the search but left
// unchanged once Search returns. halt, if non-nil, is polled at every node
// in addition to ctx's own cancellation; once either fires, Search returns
// ErrHalted and a zero Result.
func (ab AlphaBeta) Search(ctx context.Context, pos *board.Position, depth int, halt func() bool) (Result, error) {
	tt := ab.TT
	if tt == nil {
		tt = NoTranspositionTable{}
	}
	killers := ab.Killers
	if killers == nil {
		killers = NewKillerTable(depth + 1)
	}
	history := ab.History
	if history == nil {
		history = NewHistoryTable()
	}

	r := &run{
		eval:    ab.Eval,
		tt:      tt,
		killers: killers,
		history: history,
		halt: func() bool {
			return contextx.IsCancelled(ctx) || (halt != nil && halt())
		},
	}

	score, pv := r.negamax(pos, depth, 0, board.NegInfScore, board.InfScore)
	if r.halted() {
		return Result{}, ErrHalted
	}
	return Result{Score: score, Moves: pv, Nodes: r.nodes}, nil
}

// run holds the mutable state of a single Search call as it recurses.
type run struct {
	eval    eval.Evaluator
	tt      TranspositionTable
	killers *KillerTable
	history *HistoryTable
	halt    func() bool
	nodes   uint64
}

func (r *run) halted() bool {
	return r.halt != nil && r.halt()
}

// negamax returns the score of pos from the perspective of the side to
// move, searched depth plies deeper (extending into quiescence once depth
// reaches zero), along with the principal variation from this node down.
func (r *run) negamax(pos *board.Position, depth, ply int, alpha, beta board.Score) (board.Score, []board.Move) {
	if r.halted() {
		return 0, nil
	}

	if ply > 0 {
		switch {
		case pos.PliesSinceIrreversible() >= 100:
			return board.DrawScore, nil
		case pos.IsRepeated():
			return board.DrawScore, nil
		case board.HasInsufficientMaterial(pos):
			return board.DrawScore, nil
		}
	}

	hash := pos.Hash()
	var hashMove board.Move
	if bound, d, score, move, ok := r.tt.Probe(hash); ok {
		hashMove = move
		if d >= depth {
			switch bound {
			case ExactBound:
				return score, []board.Move{move}
			case LowerBound:
				alpha = board.Max(alpha, score)
			case UpperBound:
				beta = board.Min(beta, score)
			}
			if alpha >= beta {
				return score, []board.Move{move}
			}
		}
	}

	if depth <= 0 {
		return r.quiescence(pos, ply, 0, alpha, beta), nil
	}

	if r.killers != nil {
		r.killers.Resize(ply)
	}

	turn := pos.Turn()
	origAlpha := alpha
	bound := UpperBound
	hasLegal := false
	var best board.Move
	var pv []board.Move

	ordering := NewOrdering(pos, ply, hashMove, r.killers, r.history)
	for {
		m, ok := ordering.Next()
		if !ok {
			break
		}

		info := pos.Make(m, board.AllFlags)
		r.nodes++
		childScore, childPV := r.negamax(pos, depth-1, ply+1, beta.Negate(), alpha.Negate())
		pos.Unmake(m, board.AllFlags, info)

		if r.halted() {
			return 0, nil
		}
		hasLegal = true

		score := childScore.Negate()
		if score > alpha {
			alpha = score
			best = m
			pv = append([]board.Move{m}, childPV...)
		}

		if alpha >= beta {
			bound = LowerBound
			if m.IsQuiet() {
				if r.killers != nil {
					r.killers.Add(ply, m)
				}
				if r.history != nil {
					r.history.Add(turn, pos.Piece(m.From()).Type(), m.To(), depth)
				}
			}
			break
		}
	}

	if !hasLegal {
		if pos.IsAttacked(pos.King(turn), turn.Opponent()) {
			return board.MatedIn(ply), nil
		}
		return board.DrawScore, nil
	}

	if bound != LowerBound {
		if alpha > origAlpha {
			bound = ExactBound
		} else {
			bound = UpperBound
		}
	}
	r.tt.Store(hash, bound, depth, alpha, best)

	return alpha, pv
}
