// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/retrogolib/log"
)

const (
	// DefaultCycleRate is the default number of cycles per second.
	DefaultCycleRate = 500
	// TimerRate is the frequency of host driven timer ticks.
	TimerRate = 60
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}
