package logger

// Logger is the logging surface the core packages depend on. Implementations
// live under infra/logger so the matching engine never imports a concrete
// logging library.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a message with structured fields.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
