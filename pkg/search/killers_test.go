package search_test

import (
	"testing"

	"github.com/solskog/corvid/pkg/board"
	"github.com/solskog/corvid/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestKillerTableKeepsTwoMostRecent(t *testing.T) {
	k := search.NewKillerTable(4)

	m1 := board.NewMove(board.E2, board.E4, board.FlagDoublePush)
	m2 := board.NewMove(board.G1, board.F3, board.FlagQuiet)
	m3 := board.NewMove(board.B1, board.C3, board.FlagQuiet)

	k.Add(2, m1)
	k.Add(2, m2)
	k.Add(2, m3)

	killers := k.At(2)
	assert.Equal(t, m3, killers[0])
	assert.Equal(t, m2, killers[1])
}

func TestKillerTableIgnoresDuplicateOfMostRecent(t *testing.T) {
	k := search.NewKillerTable(4)
	m := board.NewMove(board.E2, board.E4, board.FlagDoublePush)

	k.Add(1, m)
	k.Add(1, m)

	killers := k.At(1)
	assert.Equal(t, m, killers[0])
	assert.Equal(t, board.NoMove, killers[1])
}

func TestKillerTableResizesBeyondInitialCapacity(t *testing.T) {
	k := search.NewKillerTable(1)
	m := board.NewMove(board.D2, board.D4, board.FlagDoublePush)

	k.Add(10, m)

	killers := k.At(10)
	assert.Equal(t, m, killers[0])
}
