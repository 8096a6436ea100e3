package search

import (
	"github.com/solskog/corvid/pkg/board"
	"github.com/solskog/corvid/pkg/eval"
	"github.com/solskog/corvid/pkg/movegen"
	"github.com/solskog/corvid/pkg/see"
)

// promotionBonus is added to a tactical move's ordering score on top of its
// SEE value, so even an even-material promotion sorts ahead of an
// even-material capture: queening is rarely bad even when SEE can't see
// why.
const promotionBonus int32 = 800

// orderStage is which part of the staged move stream Ordering is
// currently yielding from.
type orderStage int

const (
	orderHash orderStage = iota
	orderTactical
	orderKillers
	orderQuiet
	orderEnd
)

// scoredMove pairs a generated move with its ordering score, for the
// selection-scan buffer used by the tactical and quiet stages (and briefly
// by the hash stage to confirm the hash move).
type scoredMove struct {
	move  board.Move
	score int32
}

// Ordering streams the moves of a position in the staged order described by
// the searcher's move-ordering contract: hash move, tactical (SEE-scored),
// killers, quiet (history+PST scored), end. It is built fresh per search
// node and driven entirely by repeated Next() calls; the tactical and quiet
// buffers are filled only when their stage is reached, so a node that cuts
// off on the hash move never scores or legality-filters its other moves.
// The hash move itself is checked against one pseudo-legal generation
// before it is yielded.
//
// The tactical and quiet stages use a selection scan (O(n) per pop) over an
// unordered buffer rather than a full sort: most interior nodes cut off
// long before the buffer is exhausted, so the total cost of never-reached
// entries is zero instead of O(n log n).
type Ordering struct {
	pos     *board.Position
	ply     int
	hash    board.Move
	killers [killersPerPly]board.Move
	history *HistoryTable

	stage       orderStage
	hashYielded bool
	killerIdx   int

	buf    [movegen.MaxMoves]board.Move
	scored []scoredMove
}

// NewOrdering returns a move stream for pos at the given search ply. hash is
// the transposition table's best-move hint for pos (board.NoMove if none);
// it is re-verified for legality before being yielded. killers and history
// may be nil, in which case those stages contribute nothing.
func NewOrdering(pos *board.Position, ply int, hash board.Move, killers *KillerTable, history *HistoryTable) *Ordering {
	o := &Ordering{pos: pos, ply: ply, hash: hash, history: history}
	if killers != nil {
		o.killers = killers.At(ply)
	}
	return o
}

// Next returns the next move in stage order, or (NoMove, false) once every
// stage is exhausted.
func (o *Ordering) Next() (board.Move, bool) {
	for {
		switch o.stage {
		case orderHash:
			o.stage = orderTactical
			if !o.hash.IsValid() {
				continue
			}
			// The hint may come from a colliding table entry, so it is yielded
			// only if this position generates it and it is legal here.
			n := movegen.Generate(o.pos, o.buf[:], movegen.All)
			for _, m := range o.buf[:n] {
				if m == o.hash && movegen.IsLegal(o.pos, m) {
					o.hashYielded = true
					return o.hash, true
				}
			}

		case orderTactical:
			if o.scored == nil {
				o.fillTactical()
			}
			if m, ok := o.popBest(); ok {
				return m, true
			}
			o.stage = orderKillers
			o.scored = nil

		case orderKillers:
			if o.killerIdx >= killersPerPly {
				o.stage = orderQuiet
				continue
			}
			k := o.killers[o.killerIdx]
			o.killerIdx++
			if !k.IsValid() || k == o.hash || !movegen.IsLegal(o.pos, k) || k.IsTactical() {
				continue
			}
			return k, true

		case orderQuiet:
			if o.scored == nil {
				o.fillQuiet()
			}
			if m, ok := o.popBest(); ok {
				return m, true
			}
			o.stage = orderEnd
			o.scored = nil

		case orderEnd:
			return board.NoMove, false
		}
	}
}

func (o *Ordering) fillTactical() {
	n := movegen.Generate(o.pos, o.buf[:], movegen.TacticalOnly)
	o.scored = o.scored[:0]
	for i := 0; i < n; i++ {
		m := o.buf[i]
		if o.hashYielded && m == o.hash {
			continue
		}
		if !movegen.IsLegal(o.pos, m) {
			continue
		}
		score := int32(see.Evaluate(o.pos, m))
		if m.IsPromotion() {
			score += promotionBonus
		}
		o.scored = append(o.scored, scoredMove{move: m, score: score})
	}
}

func (o *Ordering) fillQuiet() {
	n := movegen.Generate(o.pos, o.buf[:], movegen.All)
	o.scored = o.scored[:0]
	for i := 0; i < n; i++ {
		m := o.buf[i]
		if m.IsTactical() {
			continue
		}
		if o.hashYielded && m == o.hash {
			continue
		}
		if m == o.killers[0] || m == o.killers[1] {
			continue
		}
		if !movegen.IsLegal(o.pos, m) {
			continue
		}
		score := o.quietScore(m)
		o.scored = append(o.scored, scoredMove{move: m, score: score})
	}
}

func (o *Ordering) quietScore(m board.Move) int32 {
	var hist int32
	if o.history != nil {
		piece := o.pos.Piece(m.From()).Type()
		hist = o.history.Score(o.pos.Turn(), piece, m.To(), 1<<12)
	}
	return hist + int32(eval.PSTDelta(o.pos, m))
}

// popBest does a selection scan over o.scored: finds the highest-scoring
// entry, swap-removes it from the buffer, and returns its move.
func (o *Ordering) popBest() (board.Move, bool) {
	if len(o.scored) == 0 {
		return board.NoMove, false
	}

	best := 0
	for i := 1; i < len(o.scored); i++ {
		if o.scored[i].score > o.scored[best].score {
			best = i
		}
	}

	m := o.scored[best].move
	last := len(o.scored) - 1
	o.scored[best] = o.scored[last]
	o.scored = o.scored[:last]
	return m, true
}
