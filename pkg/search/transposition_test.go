package search_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/solskog/corvid/pkg/board"
	"github.com/solskog/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestTranspositionTableSizeFloorsToPowerOfTwo(t *testing.T) {
	ctx := context.Background()

	tt := search.NewTranspositionTable(ctx, 0x1000)
	assert.Equal(t, uint64(0x1000), tt.Size())

	tt2 := search.NewTranspositionTable(ctx, 0x1f00)
	assert.Equal(t, uint64(0x1000), tt2.Size())
}

func TestTranspositionTableProbeAndStore(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 0x1000)

	hash := rand.Uint64()

	_, _, _, _, ok := tt.Probe(hash)
	assert.False(t, ok)

	m := board.NewMove(board.G4, board.G8, board.FlagQuiet)
	stored := tt.Store(hash, search.ExactBound, 2, board.Score(37), m)
	assert.True(t, stored)

	bound, depth, score, move, ok := tt.Probe(hash)
	assert.True(t, ok)
	assert.Equal(t, search.ExactBound, bound)
	assert.Equal(t, 2, depth)
	assert.Equal(t, board.Score(37), score)
	assert.Equal(t, m, move)

	_, _, _, _, ok = tt.Probe(hash ^ 0xff0000)
	assert.False(t, ok)
}

func TestTranspositionTableReplacementPrefersDepth(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTranspositionTable(ctx, 0x1000)

	hash := rand.Uint64()
	m := board.NewMove(board.A2, board.A4, board.FlagDoublePush)
	require := tt.Store(hash, search.ExactBound, 3, board.Score(5), m)
	assert.True(t, require)

	noReplace := tt.Store(hash, search.ExactBound, 2, board.Score(9), m)
	assert.False(t, noReplace)

	replace := tt.Store(hash, search.ExactBound, 4, board.Score(9), m)
	assert.True(t, replace)

	_, depth, score, _, ok := tt.Probe(hash)
	assert.True(t, ok)
	assert.Equal(t, 4, depth)
	assert.Equal(t, board.Score(9), score)
}

func TestNoTranspositionTableNeverStores(t *testing.T) {
	var tt search.NoTranspositionTable
	hash := rand.Uint64()

	stored := tt.Store(hash, search.ExactBound, 10, board.Score(1), board.NoMove)
	assert.False(t, stored)

	_, _, _, _, ok := tt.Probe(hash)
	assert.False(t, ok)
}
