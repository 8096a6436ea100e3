package eval_test

import (
	"testing"

	"github.com/solskog/corvid/pkg/board"
	"github.com/solskog/corvid/pkg/board/fen"
	"github.com/solskog/corvid/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialIsZeroAtStart(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, board.Score(0), eval.Material{}.Evaluate(pos))
}

func TestMaterialFavorsExtraQueen(t *testing.T) {
	pos, _, _, _, err := fen.Decode("4k3/8/8/8/8/8/8/Q3K3 w - - 0 1")
	require.NoError(t, err)

	assert.Equal(t, board.PieceValue(board.Queen), eval.Material{}.Evaluate(pos))
}

func TestBishopPairBonus(t *testing.T) {
	withPair, _, _, _, err := fen.Decode("4k3/8/8/8/8/8/8/2BBK3 w - - 0 1")
	require.NoError(t, err)
	withoutPair, _, _, _, err := fen.Decode("4k3/8/8/8/8/8/8/3BK3 w - - 0 1")
	require.NoError(t, err)

	assert.Greater(t, eval.BishopPair{}.Evaluate(withPair), eval.BishopPair{}.Evaluate(withoutPair))
}

func TestFindPinsDetectsRookPin(t *testing.T) {
	// White king e1, white knight e3 pinned by black rook e8 along the e-file.
	pos, _, _, _, err := fen.Decode("4r1k1/8/8/8/8/4N3/8/4K3 w - - 0 1")
	require.NoError(t, err)

	pins := eval.FindPins(pos, board.White)
	require.Len(t, pins, 1)
	assert.Equal(t, board.E3, pins[0].Pinned)
	assert.Equal(t, board.E8, pins[0].Attacker)
}

func TestRingAttackersCountsPressureOnKingZone(t *testing.T) {
	pos, _, _, _, err := fen.Decode("4k3/8/8/8/8/3q4/8/4K3 w - - 0 1")
	require.NoError(t, err)

	ring := board.KingAttacks(board.E1) | board.Mask(board.E1)
	assert.Greater(t, eval.RingAttackers(pos, board.Black, ring), board.Score(0))
}

func TestCompositeUnboundedWindowMatchesEvaluate(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	c := eval.NewDefault(0, 1)
	full := c.EvaluateWindow(pos, board.NegInfScore, board.InfScore)
	assert.Equal(t, full, c.Evaluate(pos))
}

func TestRandomEvaluatorIsDeterministicPerSeed(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	a := eval.NewRandom(20, 42)
	b := eval.NewRandom(20, 42)
	assert.Equal(t, a.Evaluate(pos), b.Evaluate(pos))
}

func TestNNUEWithZeroWeightsIsConstant(t *testing.T) {
	pos, _, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, board.Score(0), eval.NNUE{}.Evaluate(pos))

	acc := eval.FromPosition(pos)
	assert.Equal(t, board.Score(0), eval.NNUE{}.Evaluate(pos), "accumulator %v rebuild should be stable", acc)
}
