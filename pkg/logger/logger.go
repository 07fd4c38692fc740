// Package logger provides the structured logging framework used across the
// scheduler: a package-level zerolog singleton plus a component-scoped
// wrapper for the solver pipeline's own events.
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Level is a re-export of zerolog's level type.
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config controls the global logger.
type Config struct {
	Level      string
	Format     string // json/console
	Output     string // stdout/stderr/file
	FilePath   string
	TimeFormat string
}

// DefaultConfig returns the scheduler's default logging setup.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	}
}

// Init initializes the global logger. Safe to call multiple times; only the
// first call takes effect.
func Init(cfg Config) {
	once.Do(func() {
		zerolog.SetGlobalLevel(parseLevel(cfg.Level))

		var output io.Writer
		switch cfg.Output {
		case "stderr":
			output = os.Stderr
		case "file":
			if cfg.FilePath != "" {
				if f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
					output = f
				} else {
					output = os.Stdout
				}
			} else {
				output = os.Stdout
			}
		default:
			output = os.Stdout
		}

		if cfg.Format == "console" {
			output = zerolog.ConsoleWriter{Out: output, TimeFormat: cfg.TimeFormat}
		}

		logger = zerolog.New(output).With().Timestamp().Logger()
	})
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the global logger, initializing it with defaults if needed.
func Get() *zerolog.Logger {
	if logger.GetLevel() == zerolog.Disabled {
		Init(DefaultConfig())
	}
	return &logger
}

type runIDKey struct{}

// WithRunID attaches a solve run id to a context for downstream logging.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// WithContext derives a logger carrying the context's run id, if any.
func WithContext(ctx context.Context) *zerolog.Logger {
	l := Get().With().Logger()
	if runID, ok := ctx.Value(runIDKey{}).(string); ok && runID != "" {
		l = l.With().Str("run_id", runID).Logger()
	}
	return &l
}

func Debug() *zerolog.Event { return Get().Debug() }
func Info() *zerolog.Event  { return Get().Info() }
func Warn() *zerolog.Event  { return Get().Warn() }
func Error() *zerolog.Event { return Get().Error() }
func Fatal() *zerolog.Event { return Get().Fatal() }

func WithError(err error) *zerolog.Event {
	return Get().Error().Err(err)
}

func WithField(key string, value interface{}) *zerolog.Logger {
	l := Get().With().Interface(key, value).Logger()
	return &l
}

// SolverLogger is the scheduler pipeline's component-scoped logger.
type SolverLogger struct {
	base *zerolog.Logger
}

// NewSolverLogger creates a logger scoped to the model-build/solve pipeline.
func NewSolverLogger() *SolverLogger {
	l := Get().With().Str("component", "solver").Logger()
	return &SolverLogger{base: &l}
}

// StartSolve records the beginning of a solve attempt.
func (l *SolverLogger) StartSolve(runID string, employees, departments int) {
	l.base.Info().
		Str("run_id", runID).
		Int("employees", employees).
		Int("departments", departments).
		Msg("starting schedule solve")
}

// Relaxed records a target lower-bound relaxation applied to an employee.
func (l *SolverLogger) Relaxed(employee string, before, after int, reason string) {
	l.base.Debug().
		Str("employee", employee).
		Int("before_slots", before).
		Int("after_slots", after).
		Str("reason", reason).
		Msg("relaxed target lower bound")
}

// ConstraintsBuilt records how many constraints a hard-constraint group emitted.
func (l *SolverLogger) ConstraintsBuilt(group string, count int) {
	l.base.Debug().
		Str("group", group).
		Int("count", count).
		Msg("built hard constraints")
}

// ProgressTick records a periodic progress update.
func (l *SolverLogger) ProgressTick(elapsed time.Duration, pct float64) {
	l.base.Info().
		Dur("elapsed", elapsed).
		Float64("pct", pct).
		Msg("solve progress")
}

// SolveComplete records the final outcome of a solve attempt.
func (l *SolverLogger) SolveComplete(runID string, status string, objective int, duration time.Duration) {
	l.base.Info().
		Str("run_id", runID).
		Str("status", status).
		Int("objective", objective).
		Dur("duration", duration).
		Msg("solve complete")
}

// InvariantViolation records a post-validator finding. These should be
// impossible given a correct model; their presence indicates a model bug.
func (l *SolverLogger) InvariantViolation(kind, detail string) {
	l.base.Warn().
		Str("kind", kind).
		Str("detail", detail).
		Msg("internal invariant violation")
}
