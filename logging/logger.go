// Package logging defines the logging interface consumed by the transport
// and discovery packages. The serialization core never logs; failures
// there are returned, not observed as side effects.
package logging

import "log"

// Classification is the log entry classification.
type Classification string

// Log classifications used across the module.
const (
	Warn  Classification = "WARN"
	Debug Classification = "DEBUG"
)

// Logger is an interface for logging entries at certain classifications.
type Logger interface {
	// Logf is expected to support the standard fmt package "verbs".
	Logf(classification Classification, format string, v ...interface{})
}

// Noop is a Logger implementation that performs no logging.
type Noop struct{}

// Logf does nothing.
func (Noop) Logf(Classification, string, ...interface{}) {}

// StandardLogger delegates logging to a standard library logger.
type StandardLogger struct {
	Logger *log.Logger
}

// Logf logs the given classification and message to the underlying logger.
func (s StandardLogger) Logf(classification Classification, format string, v ...interface{}) {
	if len(classification) != 0 {
		format = string(classification) + " " + format
	}
	s.Logger.Printf(format, v...)
}
