package eval

import (
	"math/rand"

	"github.com/solskog/corvid/pkg/board"
)

// Random adds deterministic-per-seed noise to an evaluation, in the range
// [-limit/2, limit-1-limit/2] centipawns (e.g. [-10, 9] for limit 20). A zero-value Random (limit 0) always
// contributes nothing; composing it into an evaluator is how an engine
// varies its own play without a real opponent model.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (n Random) Evaluate(pos *board.Position) board.Score {
	if n.limit <= 0 {
		return 0
	}
	return board.Score(n.rand.Intn(n.limit) - n.limit/2)
}
