package main

import (
	"context"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	threehalves "github.com/shabbyrobe/go-threehalves"
	"github.com/shabbyrobe/go-threehalves/internal/logging"
	"github.com/shabbyrobe/go-threehalves/internal/runner"
	"go.uber.org/zap"
	"gopkg.in/alecthomas/kingpin.v2"
)

const version = "0.1.0"

type cli struct {
	app    *kingpin.Application
	stdout io.Writer
	stderr io.Writer

	logLevel  *string
	logFormat *string

	seed      *kingpin.CmdClause
	seedRP    *int
	seedState *string

	run            *kingpin.CmdClause
	runIterations  *int
	runBinsFile    *string
	runStateFile   *string
	runDigits      *int
	runSaveEvery   *int
	runReportEvery *int

	merge      *kingpin.CmdClause
	mergeOut   *string
	mergeFiles *[]string

	verify      *kingpin.CmdClause
	verifyState *string
	verifyDump  *bool
}

func newCLI(stdout, stderr io.Writer) *cli {
	c := &cli{stdout: stdout, stderr: stderr}

	app := kingpin.New("threehalves", "Seed generator and stepping engine for the (3/2)^n fractional bit histogram.")
	app.Version(version)
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	c.app = app

	c.logLevel = app.Flag("log-level", "Log level (debug, info, warn, error).").
		Envar("THREEHALVES_LOG_LEVEL").Default("info").String()
	c.logFormat = app.Flag("log-format", "Log encoding.").
		Envar("THREEHALVES_LOG_FORMAT").Default(logging.Console).
		Enum(logging.Console, logging.JSON, logging.Logfmt)

	c.seed = app.Command("seed", "Print the 63-bit words of 3^(rp+1), least significant first, one per line.")
	c.seedRP = c.seed.Arg("rp", "Exponent offset.").Default(fmt.Sprint(threehalves.DefaultRP)).Int()
	c.seedState = c.seed.Flag("state", "Also write a state file for the run command.").Short('s').String()

	c.run = app.Command("run", "Step a state file forward, accumulating bins.")
	c.runIterations = c.run.Arg("iterations", "Number of iterations from the state's rp.").Required().Int()
	c.runBinsFile = c.run.Arg("bins-file", "Bins file (written).").Required().String()
	c.runStateFile = c.run.Arg("state-file", "State file (read and written). A missing or empty file starts at rp 0.").Required().String()
	c.runDigits = c.run.Flag("digits", "Number of leading fractional bits to bin.").
		Envar("THREEHALVES_DIGITS").Default(fmt.Sprint(threehalves.DefaultDigits)).Int()
	c.runSaveEvery = c.run.Flag("save-every", "Checkpoint the state and bins every N iterations.").
		Envar("THREEHALVES_SAVE_EVERY").Default(fmt.Sprint(runner.DefaultSaveEvery)).Int()
	c.runReportEvery = c.run.Flag("report-every", "Log progress every N iterations.").
		Envar("THREEHALVES_REPORT_EVERY").Default(fmt.Sprint(runner.DefaultReportEvery)).Int()

	c.merge = app.Command("merge", "Merge bins files from separate runs.")
	c.mergeOut = c.merge.Arg("out", "Merged bins file (written).").Required().String()
	c.mergeFiles = c.merge.Arg("bins-file", "Bins files to merge.").Required().ExistingFiles()

	c.verify = app.Command("verify", "Check that a state file holds 3^(rp+1).")
	c.verifyState = c.verify.Arg("state-file", "State file.").Required().ExistingFile()
	c.verifyDump = c.verify.Flag("dump", "Log a dump of the parsed state at debug level.").Bool()

	return c
}

func (c *cli) dispatch(ctx context.Context, command string) error {
	logger, err := logging.New(logging.Config{
		Level:  *c.logLevel,
		Format: *c.logFormat,
		Writer: c.stderr,
	})
	if err != nil {
		return err
	}
	defer logger.Sync()

	switch command {
	case c.seed.FullCommand():
		return c.doSeed(logger)
	case c.run.FullCommand():
		return c.doRun(ctx, logger)
	case c.merge.FullCommand():
		return c.doMerge(logger)
	case c.verify.FullCommand():
		return c.doVerify(logger)
	default:
		return errors.Errorf("unknown command %q", command)
	}
}

func (c *cli) doSeed(logger *zap.Logger) error {
	state, err := threehalves.SeedState(*c.seedRP)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(c.stdout, state.Words); err != nil {
		return errors.Wrap(err, "write words")
	}

	if *c.seedState != "" {
		if err := writeState(*c.seedState, state); err != nil {
			return err
		}
		logger.Info("wrote state", zap.String("file", *c.seedState), zap.Int("rp", state.RP))
	}
	return nil
}

func (c *cli) doRun(ctx context.Context, logger *zap.Logger) error {
	if *c.runDigits < 1 || *c.runDigits > threehalves.MaxDigits {
		return errors.Errorf("digits must be between 1 and %d", threehalves.MaxDigits)
	}

	state, err := readState(*c.runStateFile)
	if err != nil {
		return err
	}
	bins := threehalves.NewBins(*c.runDigits)

	stateFile, binsFile := *c.runStateFile, *c.runBinsFile
	save := func(s threehalves.State, b threehalves.Bins) error {
		if err := writeState(stateFile, s); err != nil {
			return err
		}
		return writeBins(binsFile, b)
	}

	r := runner.New(logger, save)
	r.SaveEvery = *c.runSaveEvery
	r.ReportEvery = *c.runReportEvery

	final, err := r.Run(ctx, state, bins, *c.runIterations)
	if serr := save(final, bins); serr != nil && err == nil {
		err = serr
	}
	return err
}

func (c *cli) doMerge(logger *zap.Logger) error {
	var merged threehalves.Bins
	for _, file := range *c.mergeFiles {
		b, err := readBins(file)
		if err != nil {
			return err
		}
		if merged == nil {
			merged = b
			continue
		}
		if err := merged.Merge(b); err != nil {
			return errors.Wrapf(err, "merge %s", file)
		}
	}

	if err := writeBins(*c.mergeOut, merged); err != nil {
		return err
	}
	logger.Info("merged bins",
		zap.Int("files", len(*c.mergeFiles)),
		zap.Int("total", merged.Total()),
		zap.String("out", *c.mergeOut))
	return nil
}

func (c *cli) doVerify(logger *zap.Logger) error {
	state, err := readState(*c.verifyState)
	if err != nil {
		return err
	}
	if *c.verifyDump {
		logger.Debug("parsed state", zap.String("dump", spew.Sdump(state)))
	}
	if err := state.Check(); err != nil {
		return errors.Wrapf(err, "verify %s", *c.verifyState)
	}
	logger.Info("state ok",
		zap.String("file", *c.verifyState),
		zap.Int("rp", state.RP),
		zap.Int("words", len(state.Words)),
		zap.Int("bits", state.Words.BitLen()))
	return nil
}
