// Package buildlog provides the structured, leveled logger the `build`
// and `serve` commands use for internal diagnostics (§0 ambient stack:
// "the long-running serve and build commands ... need leveled, structured
// diagnostics the plain-Fprintf style can't give"). Command result text
// read by a user never goes through here - it stays on the teacher's
// plain fmt.Fprintf style in cmd/ttr/cmd.
package buildlog

import (
	"os"

	"go.uber.org/zap"
)

// New returns a sugared logger gated by the TTR_LOG environment variable.
// Unset or "off" disables logging entirely (a Nop logger); otherwise the
// value names a zap level (debug, info, warn, error).
func New() *zap.SugaredLogger {
	level := os.Getenv("TTR_LOG")
	if level == "" || level == "off" {
		return zap.NewNop().Sugar()
	}

	var lvl zap.AtomicLevel
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
