// Package telemetry wires structured query-stage logging via
// go.uber.org/zap. It is purely an
// ambient concern: nothing in pkg/eval depends on it, the REPL just logs
// around the evaluator it already calls.
package telemetry

import (
	"time"

	"go.uber.org/zap"
)

// New returns a console-friendly logger for interactive REPL use:
// level-colored output to stderr, no file sink, no sampling.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// QueryFields builds the structured fields logged around one query's
// evaluation: the raw text, its token count, how long parsing took, and
// its error, if any.
func QueryFields(query string, err error, tokenCount int, parseTime time.Duration) []zap.Field {
	fields := []zap.Field{
		zap.String("query", query),
		zap.Int("tokens", tokenCount),
		zap.Duration("parse_time", parseTime),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	return fields
}
