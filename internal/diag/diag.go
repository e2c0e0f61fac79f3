// Package diag implements the two-tier diagnostics model of the kernels.
//
// Every kernel trusts its caller by default. Two call-scoped flags enable
// extra work:
//
//   - Rigor: precondition checks run before the kernel touches any buffer.
//     A violation is returned as a *PreconditionError; nothing is written.
//   - Verbose: the call parameters are dumped to the Logger before computing.
//
// Advisory mismatches (for example a declared pooling output size that
// differs from the computed one) are logged as warnings and never change
// control flow.
package diag

import (
	"log/slog"
	"os"
	"sync"

	"github.com/born-ml/dlr/internal/parallel"
)

// Logger receives verbose parameter dumps and advisory warnings.
// *slog.Logger satisfies it.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}

// NopLogger discards everything.
var NopLogger Logger = nopLogger{}

var defaultLogger = sync.OnceValue(func() Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
})

// DefaultLogger returns the process-wide stderr logger used when no logger is injected.
func DefaultLogger() Logger {
	return defaultLogger()
}

// Options holds the call-scoped diagnostics and execution settings of one kernel call.
type Options struct {
	Rigor    bool            // run precondition checks
	Verbose  bool            // dump parameters before computing
	Logger   Logger          // destination of dumps and warnings
	Parallel parallel.Config // data-parallel split across independent outputs
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns the trusting, silent, sequential defaults.
func DefaultOptions() Options {
	return Options{
		Logger:   DefaultLogger(),
		Parallel: parallel.Sequential(),
	}
}

// Apply folds opts over DefaultOptions.
func Apply(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = NopLogger
	}
	return o
}

// WithRigor enables precondition checks.
func WithRigor() Option {
	return func(o *Options) { o.Rigor = true }
}

// WithRigorIf enables precondition checks when on is true.
func WithRigorIf(on bool) Option {
	return func(o *Options) { o.Rigor = on }
}

// WithVerbose enables parameter dumps.
func WithVerbose() Option {
	return func(o *Options) { o.Verbose = true }
}

// WithVerboseIf enables parameter dumps when on is true.
func WithVerboseIf(on bool) Option {
	return func(o *Options) { o.Verbose = on }
}

// WithLogger routes dumps and warnings to l. A nil l discards them.
func WithLogger(l Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithParallel sets the data-parallel configuration.
func WithParallel(cfg parallel.Config) Option {
	return func(o *Options) { o.Parallel = cfg }
}

// Dump logs the parameters of op when verbose mode is on.
func (o Options) Dump(op string, kv ...any) {
	if !o.Verbose {
		return
	}
	o.Logger.Info(op, kv...)
}

// Warn logs an advisory warning for op. Execution continues.
func (o Options) Warn(op, msg string, kv ...any) {
	o.Logger.Warn(op+": "+msg, kv...)
}
