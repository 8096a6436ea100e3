package search

import (
	"context"
	"time"

	"github.com/seekerror/logw"
	"github.com/solskog/corvid/pkg/board"
)

// IterativeDeepen runs ab at increasing depths from 1 up to maxDepth (zero
// means unbounded, stopped only by halt), reporting each completed depth's
// PV to report as it finishes. Killers and History on ab should be shared
// across the whole call so deeper passes benefit from cutoffs found by
// shallower ones.
//
// Deepening stops early when halt reports true, when a search already
// proved a forced mate within the remaining depth (deepening cannot
// improve an exact result), or when maxDepth completes.
func IterativeDeepen(ctx context.Context, pos *board.Position, ab AlphaBeta, maxDepth int, halt func() bool, report func(PV)) error {
	for depth := 1; maxDepth == 0 || depth <= maxDepth; depth++ {
		start := time.Now()

		result, err := ab.Search(ctx, pos, depth, halt)
		if err != nil {
			if err == ErrHalted {
				return nil
			}
			logw.Errorf(ctx, "Search failed on %v at depth=%v: %v", pos, depth, err)
			return err
		}

		pv := PV{
			Depth: depth,
			Moves: result.Moves,
			Score: result.Score,
			Nodes: result.Nodes,
			Time:  time.Since(start),
		}
		if ab.TT != nil {
			pv.Hash = ab.TT.Used()
		}

		logw.Debugf(ctx, "Searched %v: %v", pos, pv)
		report(pv)

		if halt != nil && halt() {
			return nil
		}
		if md, ok := result.Score.MateDistance(); ok && md <= depth {
			return nil // forced mate proven within a full-width search: exact, deepening can't change it
		}
	}
	return nil
}
