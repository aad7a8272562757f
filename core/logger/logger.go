package logger

// Logger is the diagnostic sink injected into the engine and the service
// surfaces. Logging is fire-and-forget and never drives control flow.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a message with structured fields.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
