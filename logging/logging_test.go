package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nalgeon/be"
)

func TestLoggerRecordsMessages(t *testing.T) {
	l := NewLogger("", LogLevelSilent)
	ctx := &LogContext{ModuleName: "geo", FilePath: "geo.tarn"}

	l.LogCompileError(ctx, "undefined identifier `x`", LMKName, &TextPosition{StartLn: 1, StartCol: 4, EndLn: 1, EndCol: 5})
	l.LogCompileWarning(ctx, "enum `Old` is deprecated", LMKUsage, nil)
	l.LogConfigError("Module", "missing module name")

	be.Equal(t, l.ErrorCount(), 2)
	be.True(t, !l.ShouldProceed())
	be.Equal(t, len(l.Messages()), 2)
	be.Equal(t, len(l.Errors()), 1)
	be.Equal(t, l.Errors()[0].String(), "geo.tarn:1:5: undefined identifier `x`")

	l.Reset()
	be.Equal(t, l.ErrorCount(), 0)
	be.True(t, l.ShouldProceed())
	be.Equal(t, len(l.Messages()), 0)
}

func TestParseLogLevel(t *testing.T) {
	be.Equal(t, ParseLogLevel("silent"), LogLevelSilent)
	be.Equal(t, ParseLogLevel("error"), LogLevelError)
	be.Equal(t, ParseLogLevel("warn"), LogLevelWarning)
	be.Equal(t, ParseLogLevel("loud"), LogLevelVerbose)
}

func TestTextPositionFromRange(t *testing.T) {
	start := &TextPosition{StartLn: 1, StartCol: 2, EndLn: 1, EndCol: 5}
	end := &TextPosition{StartLn: 3, StartCol: 0, EndLn: 3, EndCol: 7}

	be.Equal(t, *TextPositionFromRange(start, end), TextPosition{StartLn: 1, StartCol: 2, EndLn: 3, EndCol: 7})
	be.True(t, TextPositionFromRange(nil, end) == end)
	be.Equal(t, (*TextPosition)(nil).String(), "?")
}

func TestSelectLines(t *testing.T) {
	lines := []string{
		"    enum E {",
		"        A = 1 / 0",
		"    }",
	}

	selected := selectLines(lines, &TextPosition{StartLn: 9, StartCol: 12, EndLn: 10, EndCol: 5})
	be.Equal(t, len(selected), 3)

	be.Equal(t, selected[0].number, "9  ")
	be.Equal(t, selected[0].text, "enum E {")
	be.Equal(t, selected[0].markStart, 8)

	be.Equal(t, selected[1].number, "10 ")
	be.Equal(t, selected[1].text, "    A = 1 / 0")
	be.Equal(t, selected[1].markStart, 0)
	be.Equal(t, selected[1].markEnd, len("    A = 1 / 0"))

	// the end column of the last line is before its start: one mark at least
	be.Equal(t, selected[2].markStart, 0)
	be.Equal(t, selected[2].markEnd, 1)
}

func TestReadLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.tarn")
	be.Err(t, os.WriteFile(path, []byte("enum E {\n\tA,\n\tB\n}\n"), 0644), nil)

	lines, err := readLines(path, 2, 3)
	be.Err(t, err, nil)
	be.Equal(t, lines, []string{"    A,", "    B"})

	_, err = readLines(filepath.Join(t.TempDir(), "missing.tarn"), 1, 1)
	be.True(t, os.IsNotExist(err))
}

func TestPhaseLabel(t *testing.T) {
	be.Equal(t, len(phaseLabel("Parsing")), phaseLabelWidth)
	be.Equal(t, len(phaseLabel("Resolving...")), phaseLabelWidth)
	be.Equal(t, phaseLabel("A very long phase name"), "A very long phase name ")
}
