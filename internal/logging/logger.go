// Package logging decouples the consolidator from a concrete logging framework.
// Components receive a Logger through their constructors; tests use MockLogger.
package logging

// Logger is the structured logger used by every component.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a logger carrying err as a field.
	WithError(err error) Logger

	// WithField returns a logger carrying one extra field.
	WithField(key string, value interface{}) Logger

	// WithFields returns a logger carrying the given fields.
	WithFields(fields ...Field) Logger

	// Fatal logs and exits the program.
	Fatal(msg string, fields ...Field)

	// Fatalf logs a formatted message and exits the program.
	Fatalf(msg string, args ...interface{})
}

// Field is a key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}
