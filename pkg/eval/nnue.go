package eval

import "github.com/solskog/corvid/pkg/board"

// featureWeight is a quantized feature weight, the same representation a
// trained network would ship (int16 fixed-point rather than float32, so
// accumulator updates are cheap integer adds). All weights here are zero:
// this is a wiring stub, not a trained evaluator.
type featureWeight = int16

// Accumulator holds the running per-side feature sum a real NNUE evaluator
// would maintain incrementally across Make/Unmake, one slot per king
// bucket side. AddPiece/RemovePiece are the hook a Position would call
// from placePiece/removePiece under the same MakeFlags gating it already
// uses for the material running total (FlagMaterial): a piece placed or
// removed changes the accumulator exactly when it changes material, so no
// separate flag is needed. This stub does not wire that call yet — Evaluate
// below rebuilds the accumulator from scratch each call instead, which is
// correct but not incremental, since there is no trained network to make
// incrementality worth the plumbing.
type Accumulator struct {
	sum [board.NumColors]int32
}

func (a *Accumulator) AddPiece(p board.Piece, sq board.Square) {
	a.sum[p.Color()] += int32(featureWeight(weightOf(p, sq)))
}

func (a *Accumulator) RemovePiece(p board.Piece, sq board.Square) {
	a.sum[p.Color()] -= int32(featureWeight(weightOf(p, sq)))
}

func weightOf(p board.Piece, sq board.Square) featureWeight {
	return 0 // untrained
}

// FromPosition rebuilds an Accumulator by scanning every piece currently on
// the board.
func FromPosition(pos *board.Position) Accumulator {
	var acc Accumulator
	for sq := board.Square(0); sq < board.NumSquares; sq++ {
		if p := pos.Piece(sq); p != board.NoPiece {
			acc.AddPiece(p, sq)
		}
	}
	return acc
}

// NNUE is an evaluator backed by an Accumulator rather than hand-written
// terms. The searcher is agnostic to which Evaluator it holds, per the
// interface contract; swapping Composite for NNUE requires no search
// changes. With all weights zero this degrades to a constant, so it is not
// registered by NewDefault.
type NNUE struct{}

func (NNUE) Evaluate(pos *board.Position) board.Score {
	turn := pos.Turn()
	acc := FromPosition(pos)
	return board.Score(acc.sum[turn] - acc.sum[turn.Opponent()])
}
