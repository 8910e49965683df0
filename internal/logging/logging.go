// Package logging builds the zap logger used by the threehalves command.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	zaplogfmt "github.com/sykesm/zap-logfmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Encodings understood by New.
const (
	Console = "console"
	JSON    = "json"
	Logfmt  = "logfmt"
)

// Config selects the level, encoding and destination of log output.
type Config struct {
	// Level is one of debug, info, warn or error. Empty means info.
	Level string

	// Format is one of Console, JSON or Logfmt. Empty means Console.
	Format string

	// Writer receives encoded entries. nil means os.Stderr.
	Writer io.Writer
}

// New creates a logger from c.
func New(c Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(c.Level))); err != nil {
			return nil, errors.Wrapf(err, "logging: invalid level %q", c.Level)
		}
	}

	enc, err := NewEncoder(c.Format)
	if err != nil {
		return nil, err
	}

	w := c.Writer
	if w == nil {
		w = os.Stderr
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core).Named("threehalves"), nil
}

// NewEncoder returns the zapcore.Encoder for the named format.
func NewEncoder(format string) (zapcore.Encoder, error) {
	cfg := zap.NewProductionEncoderConfig()
	cfg.NameKey = "name"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	switch strings.ToLower(format) {
	case "", Console:
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(cfg), nil
	case JSON:
		return zapcore.NewJSONEncoder(cfg), nil
	case Logfmt:
		return zaplogfmt.NewEncoder(cfg), nil
	default:
		return nil, errors.Errorf("logging: unknown format %q", format)
	}
}
