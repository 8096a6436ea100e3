package board_test

import (
	"testing"

	"github.com/solskog/corvid/pkg/board"
	"github.com/stretchr/testify/assert"
)

func TestBitboardSetClear(t *testing.T) {
	var b board.Bitboard
	b = b.Set(board.E4)
	assert.True(t, b.IsSet(board.E4))
	assert.False(t, b.IsSet(board.E5))

	b = b.Clear(board.E4)
	assert.False(t, b.IsSet(board.E4))
}

func TestBitboardPopCountAndLSB(t *testing.T) {
	var b board.Bitboard
	assert.Equal(t, 0, b.PopCount())
	assert.Equal(t, board.NoSquare, b.LSB())

	b = b.Set(board.D4).Set(board.A1).Set(board.H8)
	assert.Equal(t, 3, b.PopCount())
	assert.Equal(t, board.A1, b.LSB())

	sq, rest := b.PopLSB()
	assert.Equal(t, board.A1, sq)
	assert.Equal(t, 2, rest.PopCount())
	assert.False(t, rest.IsSet(board.A1))
}

func TestBitRankAndFile(t *testing.T) {
	r := board.BitRank(board.Rank1)
	assert.Equal(t, 8, r.PopCount())
	assert.True(t, r.IsSet(board.A1))
	assert.True(t, r.IsSet(board.H1))
	assert.False(t, r.IsSet(board.A2))

	f := board.BitFile(board.FileA)
	assert.Equal(t, 8, f.PopCount())
	assert.True(t, f.IsSet(board.A1))
	assert.True(t, f.IsSet(board.A8))
	assert.False(t, f.IsSet(board.B1))
}
