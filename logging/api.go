package logging

// logger is a global reference to a shared Logger (created/initialized with the
// compiler, but separated for general usage)
var logger = NewLogger("", LogLevelVerbose)

// Initialize initializes the global logger with the provided log level
func Initialize(buildPath string, loglevelname string) {
	logger = NewLogger(buildPath, ParseLogLevel(loglevelname))
}

// Default returns the global logger
func Default() *Logger {
	return logger
}

// ShouldProceed indicates whether or not the log module has encountered an errors.
func ShouldProceed() bool {
	return logger.ShouldProceed()
}

// -----------------------------------------------------------------------------
// NOTE: All log functions will only display if the appropriate log level is
// set.  Most log functions will simply fail silently if below their appropriate
// log level.

// LogCompileError logs and a compilation error (user-induced, bad code)
func LogCompileError(lctx *LogContext, message string, kind int, pos *TextPosition) {
	logger.LogCompileError(lctx, message, kind, pos)
}

// LogCompileWarning logs a compilation warning (user-induced, problematic code)
func LogCompileWarning(lctx *LogContext, message string, kind int, pos *TextPosition) {
	logger.LogCompileWarning(lctx, message, kind, pos)
}

// LogConfigError logs an error related to project or compiler configuration
func LogConfigError(kind, message string) {
	logger.LogConfigError(kind, message)
}

// LogFatal logs a fatal compilation error that was not expected: ie. the
// compiler did something it wasn't supposed to.  It does not return.
func LogFatal(message string) {
	displayFatalError(message)
	panic(message)
}
