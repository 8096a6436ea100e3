// Package console implements a line-oriented debug protocol for driving an
// engine.Engine interactively: reset/undo/print the board, start and halt
// analysis, and tweak search options, all as single-word commands over a
// pair of string channels.
package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/iox"
	"github.com/solskog/corvid/pkg/board"
	"github.com/solskog/corvid/pkg/board/fen"
	"github.com/solskog/corvid/pkg/engine"
	"github.com/solskog/corvid/pkg/search/searchctl"
	"go.uber.org/atomic"
)

const ProtocolName = "console"

// Driver implements a console driver for debugging.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out chan<- string

	active atomic.Bool // a search is in flight, awaiting "halt"/completion
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard(ctx)

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Fields(line)
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "reset", "r":
				// reset [<fenstring>] [moves ...]

				d.ensureInactive(ctx)

				pos := fen.Initial
				move := false
				var moves []string
				for i, arg := range args {
					if arg == "moves" {
						move = true
						continue
					}
					if move {
						moves = append(moves, arg)
						continue
					}
					if i < 6 {
						if i == 0 {
							pos = arg
						} else {
							pos += " " + arg
						}
					}
				}
				if err := d.e.Reset(ctx, pos); err != nil {
					logw.Errorf(ctx, "Invalid position: %v", line)
					return
				}
				for _, m := range moves {
					if err := d.e.Move(ctx, m); err != nil {
						logw.Errorf(ctx, "Invalid position move '%v': %v: %v", m, line, err)
						return
					}
				}
				d.printBoard(ctx)

			case "undo", "u":
				d.ensureInactive(ctx)

				_ = d.e.TakeBack(ctx)
				d.printBoard(ctx)

			case "print", "p":
				d.printBoard(ctx)

			case "analyze", "a":
				d.ensureInactive(ctx)

				var opt searchctl.Options
				if len(args) > 0 {
					if depth, err := strconv.Atoi(args[0]); err == nil {
						opt.DepthLimit = lang.Some(depth)
					}
				}

				if err := d.e.Analyze(ctx, opt); err != nil {
					logw.Errorf(ctx, "Analyze failed: %v", err)
					break
				}
				d.active.Store(true)

			case "depth", "d":
				if len(args) > 0 {
					depth, _ := strconv.Atoi(args[0])
					d.e.SetDepth(uint(depth))
				}

			case "hash": // size in MB
				if len(args) > 0 {
					hash, _ := strconv.Atoi(args[0])
					d.e.SetHash(uint(hash))
				}

			case "nohash":
				d.e.SetHash(0)

			case "noise": // evaluation randomness in centipawns
				if len(args) > 0 {
					noise, _ := strconv.Atoi(args[0])
					d.e.SetNoise(uint(noise))
				}

			case "nonoise":
				d.e.SetNoise(0)

			case "halt", "stop":
				d.haltAndReport(ctx)

			case "quit", "exit", "q":
				d.ensureInactive(ctx)
				return

			case "":
				// ignore empty command

			default:
				// Assume move if not a recognized command.

				d.ensureInactive(ctx)
				if err := d.e.Move(ctx, cmd); err != nil {
					d.out <- fmt.Sprintf("invalid move: '%v'", cmd)
				} else {
					d.printBoard(ctx)
				}
			}

		case <-d.Closed():
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	if d.active.Load() {
		d.haltAndReport(ctx)
	}
}

func (d *Driver) haltAndReport(ctx context.Context) {
	if !d.active.CompareAndSwap(true, false) {
		return
	}

	pv, err := d.e.Halt(ctx)
	if err != nil {
		return
	}
	if len(pv.Moves) > 0 {
		d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
	}
	d.out <- pv.String()
}

const (
	files      = "    a   b   c   d   e   f   g   h"
	horizontal = "  ---------------------------------"
	vertical   = " | "
)

func (d *Driver) printBoard(ctx context.Context) {
	b := d.e.Board()
	p := b.Position()

	d.out <- ""
	d.out <- files
	d.out <- horizontal
	var sb strings.Builder
	sb.WriteString("8" + vertical)
	for i := board.Square(0); i < board.NumSquares; i++ {
		if i != 0 && i%8 == 0 {
			d.out <- sb.String()
			d.out <- horizontal

			sb.Reset()
			sb.WriteString((7 - i.Rank()).String())
			sb.WriteString(vertical)
		}

		sq := board.NewSquare(i.File(), board.Rank8-i.Rank())
		piece := p.Piece(sq)
		if piece.IsValid() {
			sb.WriteString(printPiece(piece))
		} else {
			sb.WriteString(" ")
		}
		sb.WriteString(vertical)
	}
	d.out <- sb.String()
	d.out <- horizontal
	d.out <- files
	d.out <- ""
	d.out <- fmt.Sprintf("fen:    %v", d.e.Position())
	d.out <- fmt.Sprintf("result: %v, fullmoves: %v, hash: 0x%x", b.Result(), b.FullMoves(), p.Hash())
	d.out <- ""
}

func printPiece(p board.Piece) string {
	if p.Color() == board.White {
		return strings.ToUpper(p.String())
	}
	return strings.ToLower(p.String())
}
