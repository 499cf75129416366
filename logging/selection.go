package logging

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// selectedLine is a source line of a code selection ready for display
type selectedLine struct {
	// number is the padded line number
	number string

	// text is the line with its common indentation removed
	text string

	// markStart and markEnd delimit the highlighted columns of text
	markStart, markEnd int
}

// readLines reads the lines startLn through endLn (1-indexed, inclusive) of a
// file.  Tabs are expanded to four spaces.
func readLines(path string, startLn, endLn int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines := make([]string, 0, endLn-startLn+1)

	sc := bufio.NewScanner(f)
	for lineNumber := 1; sc.Scan() && lineNumber <= endLn; lineNumber++ {
		if lineNumber >= startLn {
			lines = append(lines, strings.ReplaceAll(sc.Text(), "\t", "    "))
		}
	}

	return lines, sc.Err()
}

// selectLines lays out the lines spanned by a position: the indentation common
// to every line is trimmed and each line gets the columns the position covers
// on it
func selectLines(lines []string, pos *TextPosition) []selectedLine {
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if lead := len(line) - len(strings.TrimLeft(line, " ")); indent == -1 || lead < indent {
			indent = lead
		}
	}

	if indent == -1 {
		indent = 0
	}

	width := len(strconv.Itoa(pos.StartLn+len(lines)-1)) + 1

	selected := make([]selectedLine, len(lines))
	for i, line := range lines {
		if len(line) >= indent {
			line = line[indent:]
		}

		sl := selectedLine{
			number:  strconv.Itoa(pos.StartLn+i) + strings.Repeat(" ", width-len(strconv.Itoa(pos.StartLn+i))),
			text:    line,
			markEnd: len(line),
		}

		if i == 0 {
			sl.markStart = pos.StartCol - indent
		}

		if i == len(lines)-1 {
			sl.markEnd = pos.EndCol - indent
		}

		if sl.markStart < 0 {
			sl.markStart = 0
		}

		if sl.markEnd <= sl.markStart {
			sl.markEnd = sl.markStart + 1
		}

		selected[i] = sl
	}

	return selected
}
