package syntax

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"tarn/logging"
)

// Scanner works like an io.Reader for a source file (outputting tokens)
type Scanner struct {
	lctx *logging.LogContext

	file *bufio.Reader

	line, col           int
	startLine, startCol int

	tokBuilder strings.Builder
}

// NewScanner creates a scanner reading from the given source
func NewScanner(r io.Reader, lctx *logging.LogContext) *Scanner {
	return &Scanner{
		lctx: lctx,
		file: bufio.NewReader(r),
		line: 1,
	}
}

// Context returns the log context of the file being scanned
func (s *Scanner) Context() *logging.LogContext {
	return s.lctx
}

// ReadToken reads a single token from the stream.  If the file has ended, this
// will be an EOF token.  False indicates a malformed token or an I/O failure,
// both of which have already been reported.
func (s *Scanner) ReadToken() (*Token, bool) {
	for {
		c, ok := s.peek()
		if !ok {
			return nil, false
		} else if c == -1 {
			break
		}

		switch c {
		// ignore non-meaningful characters (eg. BOM, form-feeds etc.)
		case '\n', '\t', ' ', '\r', '\v', '\f', 65279:
			s.skip()
		case '/':
			if tok, ok := s.readCommentOrDivide(); tok != nil || !ok {
				return tok, ok
			}
		default:
			if IsDigit(c) {
				return s.readNumberLiteral()
			} else if isFirstIdentChar(c) {
				return s.readWord()
			}

			return s.readSymbol()
		}
	}

	s.mark()
	return s.makeToken(EOF), true
}

// -----------------------------------------------------------------------------

// readWord reads an identifier or a keyword
func (s *Scanner) readWord() (*Token, bool) {
	s.mark()
	s.eat()

	for {
		c, ok := s.peek()
		if !ok {
			return nil, false
		} else if !isFirstIdentChar(c) && !IsDigit(c) {
			break
		}

		s.eat()
	}

	if kind, ok := keywordPatterns[s.tokBuilder.String()]; ok {
		return s.makeToken(kind), true
	}

	return s.makeToken(IDENTIFIER), true
}

// readSymbol reads a punctuation or operator symbol
func (s *Scanner) readSymbol() (*Token, bool) {
	s.mark()
	s.eat()

	kind, ok := symbolPatterns[s.tokBuilder.String()]
	if !ok {
		s.reportMalformed("unknown character")
		return nil, false
	}

	for {
		c, ok := s.peek()
		if !ok {
			return nil, false
		} else if c == -1 {
			break
		}

		if longer, ok := symbolPatterns[s.tokBuilder.String()+string(c)]; ok {
			s.eat()
			kind = longer
		} else {
			break
		}
	}

	return s.makeToken(kind), true
}

// readNumberLiteral reads an integer or floating literal.  Underscores are
// dropped from the token value; suffixes are kept.
func (s *Scanner) readNumberLiteral() (*Token, bool) {
	s.mark()
	c := s.eat()

	base := 10
	mustHaveDigit := false
	if c == '0' {
		ahead, ok := s.peek()
		if !ok {
			return nil, false
		}

		switch ahead {
		case 'x', 'X':
			base = 16
			s.eat()
			mustHaveDigit = true
		case 'b', 'B':
			base = 2
			s.eat()
			mustHaveDigit = true
		}
	}

	var isFloat, hasExp, expectSign bool

loop:
	for {
		ahead, ok := s.peek()
		if !ok {
			return nil, false
		} else if ahead == -1 {
			break
		} else if ahead == '_' {
			s.skip()
			continue
		}

		switch {
		case base == 2 && (ahead == '0' || ahead == '1'):
			s.eat()
		case base == 16 && isHexDigit(ahead):
			s.eat()
		case base == 10 && IsDigit(ahead):
			s.eat()
		case base == 10 && ahead == '.' && !isFloat && !hasExp && !mustHaveDigit:
			// `1.max` is a property access, not a float
			if next, ok := s.peekSecond(); !ok || !IsDigit(next) {
				break loop
			}

			s.eat()
			isFloat = true
			mustHaveDigit = true
			continue
		case base == 10 && (ahead == 'e' || ahead == 'E') && !hasExp && !mustHaveDigit:
			s.eat()
			isFloat = true
			hasExp = true
			expectSign = true
			mustHaveDigit = true
			continue
		case (ahead == '-' || ahead == '+') && expectSign:
			s.eat()
			expectSign = false
			continue
		default:
			break loop
		}

		expectSign = false
		mustHaveDigit = false
	}

	if mustHaveDigit {
		s.reportMalformed("incomplete numeric literal")
		return nil, false
	}

	if !s.readSuffix(isFloat, base) {
		return nil, false
	}

	// a suffix of `f` makes any decimal literal floating
	value := s.tokBuilder.String()
	if isFloat || (base == 10 && strings.HasSuffix(value, "f")) {
		return s.makeToken(FLOATLIT), true
	}

	return s.makeToken(INTLIT), true
}

// readSuffix consumes the type suffix of a numeric literal (if any): `u`, `L`,
// `uL` and `Lu` for integers, `f` for floats.
func (s *Scanner) readSuffix(isFloat bool, base int) bool {
	var unsigned, long bool

	for {
		ahead, ok := s.peek()
		if !ok {
			return false
		}

		switch ahead {
		case 'f', 'F':
			if base != 10 || unsigned || long {
				s.reportMalformed("invalid numeric literal suffix")
				return false
			}

			s.eat()
			return s.rejectTrailingIdent()
		case 'u', 'U':
			if isFloat || unsigned {
				s.reportMalformed("invalid numeric literal suffix")
				return false
			}

			s.eat()
			unsigned = true
		case 'L':
			if isFloat || long {
				s.reportMalformed("invalid numeric literal suffix")
				return false
			}

			s.eat()
			long = true
		default:
			return s.rejectTrailingIdent()
		}
	}
}

// rejectTrailingIdent reports a malformed literal if it runs into an
// identifier character (eg. `12abc`)
func (s *Scanner) rejectTrailingIdent() bool {
	ahead, ok := s.peek()
	if !ok {
		return false
	}

	if ahead != -1 && (isFirstIdentChar(ahead) || IsDigit(ahead)) {
		s.eat()
		s.reportMalformed("malformed numeric literal")
		return false
	}

	return true
}

// readCommentOrDivide skips a comment or produces a division token
func (s *Scanner) readCommentOrDivide() (*Token, bool) {
	s.mark()
	s.eat()

	c, ok := s.peek()
	if !ok {
		return nil, false
	}

	switch c {
	case '/':
		for c != '\n' && c != -1 {
			c = s.skip()
		}
	case '*':
		s.skip()
		for {
			c = s.skip()
			if c == -1 {
				s.reportMalformed("unterminated block comment")
				return nil, false
			}

			if c == '*' {
				if ahead, _ := s.peek(); ahead == '/' {
					s.skip()
					break
				}
			}
		}
	default:
		return s.makeToken(DIVIDE), true
	}

	s.tokBuilder.Reset()
	return nil, true
}

// -----------------------------------------------------------------------------

// mark sets the scanner's stored start line and column to its current position
func (s *Scanner) mark() {
	s.startLine = s.line
	s.startCol = s.col
}

// makeToken produces a new token of the given kind from the scanner's state
// and resets the scanner to begin building the next token
func (s *Scanner) makeToken(kind int) *Token {
	value := s.tokBuilder.String()
	s.tokBuilder.Reset()

	return &Token{
		Kind:     kind,
		Value:    value,
		Position: s.currentPosition(),
	}
}

func (s *Scanner) currentPosition() *logging.TextPosition {
	return &logging.TextPosition{
		StartLn:  s.startLine,
		StartCol: s.startCol,
		EndLn:    s.line,
		EndCol:   s.col,
	}
}

func (s *Scanner) reportMalformed(msg string) {
	logging.LogCompileError(
		s.lctx,
		fmt.Sprintf("%s: `%s`", msg, s.tokBuilder.String()),
		logging.LMKToken,
		s.currentPosition(),
	)

	s.tokBuilder.Reset()
}

// eat moves the scanner forward one rune and writes it to the token builder.
// It returns -1 at the end of the file.
func (s *Scanner) eat() rune {
	c := s.skip()
	if c != -1 {
		s.tokBuilder.WriteRune(c)
	}

	return c
}

// skip moves the scanner forward one rune without recording it.  It returns -1
// at the end of the file.  Read errors are caught by the preceding peek.
func (s *Scanner) skip() rune {
	c, _, err := s.file.ReadRune()
	if err != nil {
		return -1
	}

	switch c {
	case '\n':
		s.line++
		s.col = 0
	case '\t':
		// tabs count as four columns for display purposes
		s.col += 4
	default:
		s.col++
	}

	return c
}

// peek returns the next rune without consuming it: -1 at the end of the file.
// False indicates an I/O failure which has already been reported.
func (s *Scanner) peek() (rune, bool) {
	c, _, err := s.file.ReadRune()
	if err != nil {
		if err == io.EOF {
			return -1, true
		}

		logging.LogConfigError("File", fmt.Sprintf("error reading %s: %s", s.lctx.FilePath, err.Error()))
		return 0, false
	}

	s.file.UnreadRune()
	return c, true
}

// peekSecond returns the byte after the next rune (ASCII lookahead only)
func (s *Scanner) peekSecond() (rune, bool) {
	buf, err := s.file.Peek(2)
	if err != nil || len(buf) < 2 {
		return 0, false
	}

	return rune(buf[1]), true
}

// IsDigit tests if a rune is an ASCII digit
func IsDigit(r rune) bool {
	return r > '/' && r < ':'
}

func isHexDigit(c rune) bool {
	return IsDigit(c) || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func isFirstIdentChar(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}
