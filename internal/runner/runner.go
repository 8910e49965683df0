// Package runner steps a threehalves.State forward, binning the leading
// fractional bits of (3/2)^(rp+1) at each step and checkpointing as it goes.
package runner

import (
	"context"

	"code.cloudfoundry.org/clock"
	"github.com/pkg/errors"
	threehalves "github.com/shabbyrobe/go-threehalves"
	"go.uber.org/zap"
)

const (
	DefaultSaveEvery   = 100
	DefaultReportEvery = 100000
)

// Checkpoint persists a consistent state and the bins accumulated so far.
// The Words in the state are reused by the next step, so a Checkpoint must
// not retain them.
type Checkpoint func(state threehalves.State, bins threehalves.Bins) error

type Runner struct {
	// SaveEvery is the number of steps between checkpoints. Checkpoints are
	// taken whenever the rp reached is a multiple of SaveEvery. Zero disables
	// them.
	SaveEvery int

	// ReportEvery is the number of steps between progress log entries. Zero
	// disables them.
	ReportEvery int

	Checkpoint Checkpoint
	Clock      clock.Clock
	Logger     *zap.Logger
}

func New(logger *zap.Logger, checkpoint Checkpoint) *Runner {
	return &Runner{
		SaveEvery:   DefaultSaveEvery,
		ReportEvery: DefaultReportEvery,
		Checkpoint:  checkpoint,
		Clock:       clock.NewClock(),
		Logger:      logger,
	}
}

// Run advances state by iterations steps, adding each step's bin to bins.
// A state with no words is seeded from threehalves.SeedState first.
//
// If ctx is cancelled, Run stops between steps and returns the last
// consistent state along with the context's error.
func (r *Runner) Run(ctx context.Context, state threehalves.State, bins threehalves.Bins, iterations int) (threehalves.State, error) {
	if iterations < 0 {
		return state, errors.Errorf("runner: negative iteration count %d", iterations)
	}
	if len(bins) == 0 {
		return state, errors.New("runner: no bins")
	}

	clk := r.Clock
	if clk == nil {
		clk = clock.NewClock()
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(state.Words) == 0 {
		seeded, err := threehalves.SeedState(state.RP)
		if err != nil {
			return state, errors.Wrap(err, "runner: seed state")
		}
		logger.Info("seeded state", zap.Int("rp", seeded.RP), zap.Int("words", len(seeded.Words)))
		state = seeded
	} else if !state.Words.Valid() {
		return state, errors.Errorf("runner: state at rp %d has a word wider than %d bits", state.RP, threehalves.WordBits)
	}

	start := clk.Now()
	first, last := state.RP, state.RP+iterations
	words := state.Words.Clone()

	logger.Debug("run starting",
		zap.Int("from", first),
		zap.Int("to", last),
		zap.Int("digits", bins.Digits()))

	for rp := first; rp < last; rp++ {
		select {
		case <-ctx.Done():
			logger.Warn("run interrupted", zap.Int("rp", rp), zap.Duration("elapsed", clk.Since(start)))
			return threehalves.State{RP: rp, Words: words}, ctx.Err()
		default:
		}

		if r.ReportEvery > 0 && rp%r.ReportEvery == 0 {
			logger.Info("progress", zap.Int("rp", rp), zap.Duration("elapsed", clk.Since(start)))
		}

		bins.Add(words, rp)
		words = words.Mul3()

		if r.SaveEvery > 0 && (rp+1)%r.SaveEvery == 0 && r.Checkpoint != nil {
			if err := r.Checkpoint(threehalves.State{RP: rp + 1, Words: words}, bins); err != nil {
				return threehalves.State{RP: rp + 1, Words: words}, errors.Wrapf(err, "runner: checkpoint at rp %d", rp+1)
			}
		}
	}

	logger.Info("run complete",
		zap.Int("iterations", iterations),
		zap.Int("rp", last),
		zap.Int("words", len(words)),
		zap.Duration("elapsed", clk.Since(start)))

	return threehalves.State{RP: last, Words: words}, nil
}
