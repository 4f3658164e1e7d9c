// Package logger holds the process-wide sugared zap logger shared by the
// API server and the provisioning CLI.
package logger

import (
	"sync"
)

// Textual levels accepted by Get and by the config file.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	global *Logger
	once   sync.Once
)

// Get returns the process-wide logger, building it on the first call with
// the given level. Later calls return the same instance; their level
// argument is ignored.
func Get(level string) *Logger {
	once.Do(func() {
		global = newZapLogger(level)
	})
	return global
}
