package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"github.com/solskog/corvid/pkg/board"
	"github.com/solskog/corvid/pkg/search"
	"go.uber.org/atomic"
)

// Handle manages one in-flight iterative-deepening search. The driver
// thread reports each completed depth's PV under taskMu, so Stop only ever
// has to take that one lock to read it back. stopMu serializes concurrent
// Stop calls against each other; it is never held by the search goroutine
// itself, so it cannot deadlock against taskMu.
type Handle struct {
	taskMu sync.Mutex
	pv     search.PV

	stopMu sync.Mutex

	halt  atomic.Bool
	ready iox.AsyncCloser
}

// Launch starts an iterative-deepening search of pos in the background and
// returns a Handle the caller can Stop at any time. The background search
// makes and unmakes moves on pos for as long as it runs, so the caller must
// ensure nothing else reads or mutates it concurrently (typically by
// handing Launch its own forked board's position).
func Launch(ctx context.Context, pos *board.Position, ab search.AlphaBeta, turn board.Color, opt Options) *Handle {
	h := &Handle{ready: iox.NewAsyncCloser()}

	go h.run(ctx, pos, ab, turn, opt)

	return h
}

func (h *Handle) run(ctx context.Context, pos *board.Position, ab search.AlphaBeta, turn board.Color, opt Options) {
	defer h.ready.Close()

	deadline := h.deadline(opt, turn)
	wctx := ctx
	if deadline > 0 {
		var cancel context.CancelFunc
		wctx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}

	maxDepth := 0
	if d, ok := opt.DepthLimit.V(); ok {
		maxDepth = d
	}

	var totalNodes uint64
	err := search.IterativeDeepen(wctx, pos, ab, maxDepth, h.halted, func(pv search.PV) {
		totalNodes += pv.Nodes

		h.taskMu.Lock()
		h.pv = pv
		h.taskMu.Unlock()
		h.ready.Close()

		if n, ok := opt.NodeLimit.V(); ok && totalNodes >= n {
			h.halt.Store(true)
		}
	})
	if err != nil && err != search.ErrHalted {
		logw.Errorf(ctx, "Search failed on %v: %v", pos, err)
	}
}

func (h *Handle) halted() bool {
	return h.halt.Load()
}

func (h *Handle) deadline(opt Options, turn board.Color) time.Duration {
	if opt.Infinite {
		return 0
	}
	if mt, ok := opt.MoveTime.V(); ok {
		return mt
	}
	if tc, ok := opt.TimeControl.V(); ok {
		_, hard := tc.Limits(turn)
		return hard
	}
	return 0
}

// Stop halts the search and returns the deepest fully completed PV. Safe
// to call more than once; subsequent calls return the same result.
func (h *Handle) Stop() search.PV {
	h.stopMu.Lock()
	defer h.stopMu.Unlock()

	h.halt.Store(true) // release; the running search's next node-entry check (acquire) observes it

	<-h.ready.Closed() // at least one depth (or an immediate halt) has produced a result

	h.taskMu.Lock()
	defer h.taskMu.Unlock()
	return h.pv
}
