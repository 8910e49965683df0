// Command threehalves generates seeds for, and runs, the (3/2)^n binning
// engine.
//
// Usage:
//
//	threehalves seed [<rp>] [--state=FILE]
//	threehalves run <iterations> <bins-file> <state-file>
//	threehalves merge <out> <bins-file>...
//	threehalves verify <state-file> [--dump]
//
// The bins file holds the number of steps that landed in each bin for the
// iterations run so far. When running several instances over different rp
// ranges, give each its own bins file and merge them at the end.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		kingpin.Fatalf("%s", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c := newCLI(stdout, stderr)
	command, err := c.app.Parse(args)
	if err != nil {
		return errors.Errorf("parsing arguments: %s. Try --help", err)
	}
	return c.dispatch(ctx, command)
}
