package logging

import (
	"sync"
)

// Logger is a type that is responsible for storing and logging output from the
// compiler as necessary
type Logger struct {
	errorCount int // Total encountered errors
	LogLevel   int

	// warnings is a list of all warnings to be logged at the end of compilation
	warnings []LogMessage

	// messages records every compile message regardless of log level so that
	// callers can inspect the outcome of a compilation
	messages []*CompileMessage

	// buildPath is used to shorten display paths in errors
	buildPath string

	// m is the mutex used to synchonize the printing of error messages
	m *sync.Mutex
}

// Enumeration of the different log levels
const (
	LogLevelSilent  = iota // no output at all
	LogLevelError          // only errors and closing compilation notification (success/fail)
	LogLevelWarning        // errors, warnings, and closing message
	LogLevelVerbose        // errors, warnings, compiler version and progress summary, closing message (DEFAULT)
)

// NewLogger creates a new logger
func NewLogger(buildPath string, loglevel int) *Logger {
	return &Logger{
		buildPath: buildPath,
		LogLevel:  loglevel,
		m:         &sync.Mutex{},
	}
}

// ParseLogLevel converts a log level name into its enumerated value
func ParseLogLevel(loglevelname string) int {
	switch loglevelname {
	case "silent":
		return LogLevelSilent
	case "error":
		return LogLevelError
	case "warn", "warning":
		return LogLevelWarning
	// everything else (including invalid log levels) should default to verbose
	default:
		return LogLevelVerbose
	}
}

// LogCompileError logs a compilation error (user-induced, bad code)
func (l *Logger) LogCompileError(lctx *LogContext, message string, kind int, pos *TextPosition) {
	l.handleMsg(&CompileMessage{
		Message:  message,
		Kind:     kind,
		Position: pos,
		Context:  lctx,
		IsError:  true,
	})
}

// LogCompileWarning logs a compilation warning (user-induced, problematic code)
func (l *Logger) LogCompileWarning(lctx *LogContext, message string, kind int, pos *TextPosition) {
	l.handleMsg(&CompileMessage{
		Message:  message,
		Kind:     kind,
		Position: pos,
		Context:  lctx,
		IsError:  false,
	})
}

// LogConfigError logs an error related to project or compiler configuration
func (l *Logger) LogConfigError(kind, message string) {
	l.handleMsg(&ConfigError{Kind: kind, Message: message})
}

// ErrorCount returns the number of errors logged so far
func (l *Logger) ErrorCount() int {
	l.m.Lock()
	defer l.m.Unlock()

	return l.errorCount
}

// ShouldProceed indicates whether or not the logger has encountered any errors
func (l *Logger) ShouldProceed() bool {
	return l.ErrorCount() == 0
}

// Messages returns all the compile messages logged so far in order
func (l *Logger) Messages() []*CompileMessage {
	l.m.Lock()
	defer l.m.Unlock()

	msgs := make([]*CompileMessage, len(l.messages))
	copy(msgs, l.messages)
	return msgs
}

// Errors returns only the compile errors logged so far
func (l *Logger) Errors() []*CompileMessage {
	var errs []*CompileMessage
	for _, msg := range l.Messages() {
		if msg.IsError {
			errs = append(errs, msg)
		}
	}

	return errs
}

// Reset clears all logged state so the logger can be reused for another run
// (eg. in watch mode)
func (l *Logger) Reset() {
	l.m.Lock()
	defer l.m.Unlock()

	l.errorCount = 0
	l.warnings = nil
	l.messages = nil
}

// Finish displays the pending warnings and the closing message
func (l *Logger) Finish() {
	l.m.Lock()
	defer l.m.Unlock()

	if l.LogLevel >= LogLevelWarning {
		for _, warning := range l.warnings {
			warning.display()
		}
	}

	if l.LogLevel > LogLevelSilent {
		displayCompilationFinished(l.errorCount == 0, l.errorCount, len(l.warnings))
	}
}

// handleMsg prompts to logger to process a message -- this message could be
// coming in concurrently and so we need to make sure we are not printing multiple
// things at the same time so we there is a mutex in place for this function
func (l *Logger) handleMsg(lm LogMessage) {
	l.m.Lock()
	defer l.m.Unlock()

	if cm, ok := lm.(*CompileMessage); ok {
		l.messages = append(l.messages, cm)
	}

	if lm.isError() {
		l.errorCount++

		if l.LogLevel > LogLevelSilent {
			lm.display()
		}
	} else {
		l.warnings = append(l.warnings, lm)
	}
}
