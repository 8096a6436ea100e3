package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/solskog/corvid/pkg/board"
)

// PV is the principal variation and supporting statistics produced by one
// completed iterative-deepening pass.
type PV struct {
	Depth int           // depth of search
	Moves []board.Move  // principal variation, root move first
	Score board.Score   // evaluation at depth
	Nodes uint64        // interior/leaf nodes searched
	Time  time.Duration // time taken by search
	Hash  float64       // transposition table fill fraction [0;1]
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hash=%v%% pv=%v",
		p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), formatMoves(p.Moves))
}

func formatMoves(moves []board.Move) string {
	s := make([]string, len(moves))
	for i, m := range moves {
		s[i] = m.String()
	}
	return strings.Join(s, " ")
}
