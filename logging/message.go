package logging

import "fmt"

// TextPosition represents a positional range in the source text
type TextPosition struct {
	StartLn, StartCol int // starting line, starting 0-indexed column
	EndLn, EndCol     int // ending line, column trailing the last character
}

// String renders the starting point of the position as `line:col`
func (tp *TextPosition) String() string {
	if tp == nil {
		return "?"
	}

	return fmt.Sprintf("%d:%d", tp.StartLn, tp.StartCol+1)
}

// TextPositionFromRange takes two positions and computes the text position
// spanning them.
func TextPositionFromRange(start, end *TextPosition) *TextPosition {
	if start == nil {
		return end
	} else if end == nil {
		return start
	}

	return &TextPosition{
		StartLn:  start.StartLn,
		StartCol: start.StartCol,
		EndLn:    end.EndLn,
		EndCol:   end.EndCol,
	}
}

// LogContext identifies the source file a compile message belongs to
type LogContext struct {
	// ModuleName is the dotted name of the module the file declares
	ModuleName string

	// FilePath is the absolute path to the file
	FilePath string
}

// LogMessage is the interface for all kinds of messages the logger handles
type LogMessage interface {
	isError() bool
	display()
}

// CompileMessage is an error or warning produced from user source code
type CompileMessage struct {
	Message  string
	Kind     int
	Position *TextPosition
	Context  *LogContext
	IsError  bool
}

func (cm *CompileMessage) isError() bool {
	return cm.IsError
}

// String renders the message in the `file:line:col: message` form used when
// colour output is not wanted
func (cm *CompileMessage) String() string {
	file := "<unknown>"
	if cm.Context != nil {
		file = cm.Context.FilePath
	}

	return fmt.Sprintf("%s:%s: %s", file, cm.Position, cm.Message)
}

// ConfigError is an error in the module configuration or the environment
type ConfigError struct {
	Kind    string
	Message string
}

func (ce *ConfigError) isError() bool {
	return true
}

// Enumeration of the kinds of compile messages
const (
	LMKSyntax = iota // malformed source text
	LMKToken         // malformed token
	LMKName          // name collisions and undefined names
	LMKImport        // module imports
	LMKTyping        // type mismatches
	LMKDef           // circular and forward references
	LMKConst         // constant evaluation (overflow, precision, division)
	LMKProp          // properties such as `.max` and `.init`
	LMKUsage         // misuse of a declaration
)
