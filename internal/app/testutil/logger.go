package testutil

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// NewObservedLogger returns a debug-level logger whose entries can be inspected
func NewObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

// Messages returns the messages logged at level
func Messages(logs *observer.ObservedLogs, level zapcore.Level) []string {
	var out []string
	for _, entry := range logs.All() {
		if entry.Level == level {
			out = append(out, entry.Message)
		}
	}
	return out
}
