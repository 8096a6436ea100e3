package search_test

import (
	"testing"

	"github.com/solskog/corvid/pkg/board"
	"github.com/solskog/corvid/pkg/board/fen"
	"github.com/solskog/corvid/pkg/movegen"
	"github.com/solskog/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderingYieldsHashMoveFirst(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	hash := board.NewMove(board.E2, board.E4, board.FlagDoublePush)
	o := search.NewOrdering(pos, 0, hash, nil, nil)

	m, ok := o.Next()
	require.True(t, ok)
	assert.Equal(t, hash, m)
}

func TestOrderingSkipsIllegalHashMove(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	bogus := board.NewMove(board.E2, board.E5, board.FlagQuiet)
	o := search.NewOrdering(pos, 0, bogus, nil, nil)

	m, ok := o.Next()
	require.True(t, ok)
	assert.NotEqual(t, bogus, m)
}

func TestOrderingYieldsEveryLegalMoveExactlyOnce(t *testing.T) {
	pos, _, _, _, err := fen.Decode("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	var buf [movegen.MaxMoves]board.Move
	want := movegen.GenerateLegal(pos, buf[:], movegen.All)

	o := search.NewOrdering(pos, 0, board.NoMove, nil, nil)
	seen := map[board.Move]bool{}
	count := 0
	for {
		m, ok := o.Next()
		if !ok {
			break
		}
		assert.False(t, seen[m], "move %v yielded twice", m)
		seen[m] = true
		count++
	}
	assert.Equal(t, want, count)
}

func TestOrderingPrefersCapturesBeforeQuietMoves(t *testing.T) {
	pos, _, _, _, err := fen.Decode("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	o := search.NewOrdering(pos, 0, board.NoMove, nil, nil)

	sawQuiet := false
	for {
		m, ok := o.Next()
		if !ok {
			break
		}
		if m.IsTactical() {
			assert.False(t, sawQuiet, "tactical move %v returned after a quiet move", m)
		} else {
			sawQuiet = true
		}
	}
}

func TestOrderingYieldsKillersBeforeOtherQuietMoves(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	killers := search.NewKillerTable(1)
	killer := board.NewMove(board.G1, board.F3, board.FlagQuiet)
	killers.Add(0, killer)

	o := search.NewOrdering(pos, 0, board.NoMove, killers, nil)

	var firstQuiet board.Move
	for {
		m, ok := o.Next()
		if !ok {
			break
		}
		if !m.IsTactical() {
			firstQuiet = m
			break
		}
	}
	assert.Equal(t, killer, firstQuiet)
}
