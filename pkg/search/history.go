package search

import "github.com/solskog/corvid/pkg/board"

// HistoryTable accumulates how often a quiet (board.Color, piece type,
// destination square) combination has caused a beta-cutoff, weighted by the
// depth at which it happened. Scores are normalized against the running
// total per side so the magnitude stays comparable across iterative
// deepening's growing depths.
type HistoryTable struct {
	total [board.NumColors]uint32
	table [board.NumColors][board.NumPieceTypes][board.NumSquares]uint32
}

// NewHistoryTable returns an empty table. The per-color totals start at 1
// to avoid a division by zero in Score before anything has been recorded.
func NewHistoryTable() *HistoryTable {
	h := &HistoryTable{}
	h.total[board.White] = 1
	h.total[board.Black] = 1
	return h
}

// Add records a beta-cutoff caused by a quiet move: it is the caller's
// responsibility not to call this for captures or promotions, which have
// their own (SEE-based) ordering and would otherwise drown out genuine
// quiet-move history.
func (h *HistoryTable) Add(side board.Color, piece board.PieceType, to board.Square, depth int) {
	bonus := uint32(depth * depth)
	h.total[side] += bonus
	h.table[side][piece][to] += bonus
}

// Score returns a history score for (side, piece, to), scaled so that the
// result is comparable regardless of how many cutoffs have accumulated:
// the raw count divided by the side's running total, times scale.
func (h *HistoryTable) Score(side board.Color, piece board.PieceType, to board.Square, scale uint32) int32 {
	count := uint64(h.table[side][piece][to])
	return int32(count * uint64(scale) / uint64(h.total[side]))
}
