package search

import "github.com/solskog/corvid/pkg/board"

// killersPerPly is how many recent quiet cutoff moves are remembered per
// search ply.
const killersPerPly = 2

// KillerTable stores up to killersPerPly distinct quiet moves that recently
// caused a beta-cutoff at each search ply. It is indexed by ply directly
// (ply 0 is always the root), so repeated iterative-deepening passes over
// the same tree shape keep sharing killers at matching plies without any
// translation.
type KillerTable struct {
	moves [][killersPerPly]board.Move
}

// NewKillerTable returns a table sized for maxPly plies; Resize grows it
// later if the search goes deeper than anticipated.
func NewKillerTable(maxPly int) *KillerTable {
	return &KillerTable{moves: make([][killersPerPly]board.Move, maxPly)}
}

// Resize grows the table to cover at least ply+1 plies, preserving
// existing entries. Called when a deeper iterative-deepening pass exceeds
// the table's current capacity.
func (k *KillerTable) Resize(ply int) {
	if ply < len(k.moves) {
		return
	}
	grown := make([][killersPerPly]board.Move, ply+1)
	copy(grown, k.moves)
	k.moves = grown
}

// Add records m as a killer at ply, if it is not already the most recent
// one there. The two killer slots are most-recent-first: a fresh killer
// evicts the older of the two.
func (k *KillerTable) Add(ply int, m board.Move) {
	k.Resize(ply)

	slot := &k.moves[ply]
	if slot[0] == m {
		return
	}
	slot[1] = slot[0]
	slot[0] = m
}

// At returns the killer moves recorded for ply, in most-recent-first order.
// Unused slots hold board.NoMove.
func (k *KillerTable) At(ply int) [killersPerPly]board.Move {
	if ply >= len(k.moves) {
		return [killersPerPly]board.Move{}
	}
	return k.moves[ply]
}
