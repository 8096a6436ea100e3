// Package searchctl drives an AlphaBeta search asynchronously: Launch
// starts iterative deepening on its own goroutine and returns a Handle the
// caller can Stop at any time to retrieve the deepest completed result.
package searchctl

import (
	"fmt"
	"strings"
	"time"

	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold dynamic per-search limits. The zero value means search
// forever (until Stop is called).
type Options struct {
	// DepthLimit, if set, stops deepening once this ply depth completes.
	DepthLimit lang.Optional[int]
	// NodeLimit, if set, stops deepening once cumulative node count
	// across completed depths reaches this total.
	NodeLimit lang.Optional[uint64]
	// MoveTime, if set, hard-caps the whole search to this duration,
	// taking precedence over TimeControl.
	MoveTime lang.Optional[time.Duration]
	// TimeControl, if set, derives soft/hard time limits from the
	// remaining clock.
	TimeControl lang.Optional[TimeControl]
	// Infinite disables every time-based limit (DepthLimit and NodeLimit
	// still apply); the caller is expected to Stop explicitly.
	Infinite bool
}

func (o Options) String() string {
	var parts []string
	if v, ok := o.DepthLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.NodeLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("nodes=%v", v))
	}
	if v, ok := o.MoveTime.V(); ok {
		parts = append(parts, fmt.Sprintf("movetime=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		parts = append(parts, fmt.Sprintf("time=%v", v))
	}
	if o.Infinite {
		parts = append(parts, "infinite")
	}
	return fmt.Sprintf("[%v]", strings.Join(parts, ", "))
}
