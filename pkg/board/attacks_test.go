package board_test

import (
	"testing"

	"github.com/solskog/corvid/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestKnightAttacksCorner(t *testing.T) {
	a := board.KnightAttacks(board.A1)
	assert.Equal(t, 2, a.PopCount())
	assert.True(t, a.IsSet(board.B3))
	assert.True(t, a.IsSet(board.C2))
}

func TestKingAttacksCorner(t *testing.T) {
	a := board.KingAttacks(board.H8)
	assert.Equal(t, 3, a.PopCount())
	assert.True(t, a.IsSet(board.G8))
	assert.True(t, a.IsSet(board.H7))
	assert.True(t, a.IsSet(board.G7))
}

func TestPawnAttacks(t *testing.T) {
	w := board.PawnAttacks(board.White, board.E4)
	assert.True(t, w.IsSet(board.D5))
	assert.True(t, w.IsSet(board.F5))
	assert.Equal(t, 2, w.PopCount())

	b := board.PawnAttacks(board.Black, board.E4)
	assert.True(t, b.IsSet(board.D3))
	assert.True(t, b.IsSet(board.F3))
}

func TestRookAttacksBlocked(t *testing.T) {
	var occ board.Bitboard
	occ = occ.Set(board.D4).Set(board.D6).Set(board.B4)

	a := board.RookAttacks(board.D4, occ)
	assert.True(t, a.IsSet(board.D5))
	assert.True(t, a.IsSet(board.D6)) // includes first blocker
	assert.False(t, a.IsSet(board.D7))
	assert.True(t, a.IsSet(board.C4))
	assert.True(t, a.IsSet(board.B4)) // includes first blocker
	assert.False(t, a.IsSet(board.A4))
	assert.True(t, a.IsSet(board.D1))
}

func TestBishopAttacksOpenBoard(t *testing.T) {
	a := board.BishopAttacks(board.D4, board.EmptyBitboard)
	assert.True(t, a.IsSet(board.A1))
	assert.True(t, a.IsSet(board.H8))
	assert.True(t, a.IsSet(board.A7))
	assert.True(t, a.IsSet(board.G1))
	assert.False(t, a.IsSet(board.D5))
}

func TestQueenAttacksIsUnion(t *testing.T) {
	occ := board.EmptyBitboard
	q := board.QueenAttacks(board.D4, occ)
	b := board.BishopAttacks(board.D4, occ)
	r := board.RookAttacks(board.D4, occ)
	assert.Equal(t, b|r, q)
}

func TestAttackersOfKing(t *testing.T) {
	var pieces [board.NumSquares]board.Piece
	pieces[board.E1] = board.NewPiece(board.White, board.King)
	pieces[board.E8] = board.NewPiece(board.Black, board.King)
	pieces[board.E5] = board.NewPiece(board.Black, board.Rook)
	p := board.NewPosition(pieces, board.White, 0, board.NoSquare)

	assert.True(t, p.IsAttacked(board.E1, board.Black))
	assert.False(t, p.IsAttacked(board.D1, board.Black))
}
