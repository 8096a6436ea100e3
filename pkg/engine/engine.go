package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/solskog/corvid/pkg/board"
	"github.com/solskog/corvid/pkg/board/fen"
	"github.com/solskog/corvid/pkg/eval"
	"github.com/solskog/corvid/pkg/movegen"
	"github.com/solskog/corvid/pkg/search"
	"github.com/solskog/corvid/pkg/search/searchctl"
)

var version = build.NewVersion(0, 1, 0)

// Options are search creation options.
type Options struct {
	// Depth is the search depth limit. If zero, there is no limit. Overridden by
	// an explicit searchctl.Options.DepthLimit if Analyze is called with one.
	Depth uint
	// Hash is the transposition table size in MB. If zero, the engine will not use
	// a transposition table.
	Hash uint
	// Noise adds evaluation noise, in centipawns, to the leaf evaluations.
	Noise uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v}", o.Depth, o.Hash, o.Noise)
}

// Engine encapsulates game-playing logic, search and evaluation. It owns a
// Board exclusively: all reads and mutations go through its mutex, and
// Analyze hands the background search its own Clone so the live Board stays
// safe to print or play against while a search is in flight.
type Engine struct {
	name, author string

	opts Options
	seed int64

	mu     sync.Mutex
	b      *board.Board
	tt     search.TranspositionTable
	active *searchctl.Handle
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithNoiseSeed configures the engine to use the given seed for evaluation
// noise instead of the default seed of zero.
func WithNoiseSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// New creates an engine at the initial position.
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{name: name, author: author}
	for _, fn := range opts {
		fn(e)
	}

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetHash(size uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = size
}

func (e *Engine) SetNoise(centipawns uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Noise = centipawns
}

// Board returns a clone of the current board, safe for the caller to read
// or print without racing a live search or the next Move/TakeBack.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Clone()
}

// Position returns the current position in FEN format. Convenience function.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.b.Position(), e.b.Turn(), e.b.Position().PliesSinceIrreversible(), e.b.FullMoves())
}

// Reset resets the engine to a new starting position in FEN format.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, opts=%v", position, e.opts)

	e.haltSearchIfActive(ctx)

	pos, _, _, fullmoves, err := fen.Decode(position)
	if err != nil {
		return err
	}
	e.b = board.NewBoard(pos, fullmoves)

	e.tt = search.TranspositionTable(search.NoTranspositionTable{})
	if e.opts.Hash > 0 {
		e.tt = search.NewTranspositionTable(ctx, uint64(e.opts.Hash)<<20)
	}

	logw.Infof(ctx, "New board: %v", e.b)
	return nil
}

// Move plays the given move, usually an opponent move, given in pure
// algebraic coordinate notation (e.g. "e2e4", "e7e8q").
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	e.haltSearchIfActive(ctx)

	var buf [movegen.MaxMoves]board.Move
	n := movegen.GenerateLegal(e.b.Position(), buf[:], movegen.All)
	for _, m := range buf[:n] {
		if !candidate.Matches(m) {
			continue
		}

		if !e.b.PushMove(m) {
			return fmt.Errorf("illegal move: %v", m)
		}

		logw.Infof(ctx, "Move %v: %v", m, e.b)
		return nil
	}
	return fmt.Errorf("invalid move: %v", candidate)
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)

	m, ok := e.b.PopMove()
	if !ok {
		return fmt.Errorf("no move to take back")
	}

	logw.Infof(ctx, "Takeback %v", m)
	return nil
}

// Analyze starts a background search of the current position and returns
// immediately; use Halt to stop it and retrieve the deepest completed PV.
func (e *Engine) Analyze(ctx context.Context, opt searchctl.Options) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(int(e.opts.Depth))
	}

	logw.Infof(ctx, "Analyze %v, opt=%v", e.b, opt)

	if e.active != nil {
		return fmt.Errorf("search already active")
	}

	clone := e.b.Clone()
	ab := search.AlphaBeta{
		Eval:    eval.NewDefault(int(e.opts.Noise), e.seed),
		TT:      e.tt,
		Killers: search.NewKillerTable(256),
		History: search.NewHistoryTable(),
	}
	e.active = searchctl.Launch(ctx, clone.Position(), ab, clone.Turn(), opt)
	return nil
}

// Halt halts the active search and returns the principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Halt")

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Stop()
		logw.Infof(ctx, "Search %v halted: %v", e.b, pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}
