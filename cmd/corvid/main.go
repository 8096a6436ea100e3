package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/seekerror/logw"
	"github.com/solskog/corvid/pkg/engine"
	"github.com/solskog/corvid/pkg/engine/console"
)

var (
	noise = flag.Int("noise", 10, "Evaluation noise in centipawns (zero if deterministic)")
	depth = flag.Uint("depth", 0, "Default search depth limit (zero if unlimited)")
	hash  = flag.Uint("hash", 32, "Transposition table size in MB (zero disables it)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corvid [options]

CORVID is a simple chess engine with a debug console protocol.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	opts := engine.Options{
		Depth: *depth,
		Hash:  *hash,
		Noise: uint(*noise),
	}
	e := engine.New(ctx, "corvid", "solskog", engine.WithOptions(opts))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
