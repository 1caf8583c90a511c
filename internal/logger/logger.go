package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Encodings accepted by Options.Format.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options selects the level and encoding of the process logger.
type Options struct {
	Level  string
	Format string
}

var (
	globalLogger *Logger
	once         sync.Once
)

// Get returns the process-wide logger. The first call fixes its options;
// later calls return the same instance and ignore their argument.
func Get(opts Options) *Logger {
	once.Do(func() {
		globalLogger = New(opts)
	})
	return globalLogger
}
