package syntax

import "tarn/logging"

// Token represents a token read in by the scanner
type Token struct {
	Kind  int
	Value string

	Position *logging.TextPosition
}

// The various kinds of a tokens supported by the scanner
const (
	// declarations
	MODULE = iota
	IMPORT
	ENUM

	// attributes
	PUBLIC
	PRIVATE
	PACKAGE
	STATIC
	DEPRECATED

	// expression keywords
	CAST
	TRUE
	FALSE

	// type keywords
	BOOL
	BYTE
	UBYTE
	SHORT
	USHORT
	INT
	UINT
	LONG
	ULONG
	FLOAT
	DOUBLE
	VOID

	// arithmetic operators
	PLUS
	MINUS
	STAR
	DIVIDE
	MOD

	// boolean operators
	LT
	GT
	LTEQ
	GTEQ
	EQ
	NEQ
	NOT
	AND
	OR

	// bitwise operators
	AMP
	PIPE
	BXOR
	LSHIFT
	RSHIFT
	COMPL

	// punctuation
	ASSIGN
	DOT
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	COMMA
	SEMICOLON
	COLON

	// literals (and identifiers)
	IDENTIFIER
	INTLIT
	FLOATLIT

	EOF
)

// token patterns (matching strings) for keywords
var keywordPatterns = map[string]int{
	"module":     MODULE,
	"import":     IMPORT,
	"enum":       ENUM,
	"public":     PUBLIC,
	"private":    PRIVATE,
	"package":    PACKAGE,
	"static":     STATIC,
	"deprecated": DEPRECATED,
	"cast":       CAST,
	"true":       TRUE,
	"false":      FALSE,
	"bool":       BOOL,
	"byte":       BYTE,
	"ubyte":      UBYTE,
	"short":      SHORT,
	"ushort":     USHORT,
	"int":        INT,
	"uint":       UINT,
	"long":       LONG,
	"ulong":      ULONG,
	"float":      FLOAT,
	"double":     DOUBLE,
	"void":       VOID,
}

// token patterns for symbolic items - longest match wins
var symbolPatterns = map[string]int{
	"+":  PLUS,
	"-":  MINUS,
	"*":  STAR,
	"%":  MOD,
	"<":  LT,
	">":  GT,
	"<=": LTEQ,
	">=": GTEQ,
	"==": EQ,
	"!=": NEQ,
	"!":  NOT,
	"&&": AND,
	"||": OR,
	"&":  AMP,
	"|":  PIPE,
	"^":  BXOR,
	"<<": LSHIFT,
	">>": RSHIFT,
	"~":  COMPL,
	"=":  ASSIGN,
	".":  DOT,
	"(":  LPAREN,
	")":  RPAREN,
	"{":  LBRACE,
	"}":  RBRACE,
	",":  COMMA,
	";":  SEMICOLON,
	":":  COLON,
	// division is handled with the comment logic
}

// IsTypeKeyword returns whether a token kind names a builtin type
func IsTypeKeyword(kind int) bool {
	return BOOL <= kind && kind <= VOID
}

// IsAttribute returns whether a token kind is a declaration attribute
func IsAttribute(kind int) bool {
	return PUBLIC <= kind && kind <= DEPRECATED
}

// OperatorString returns the source text of an operator token kind
func OperatorString(kind int) string {
	if kind == DIVIDE {
		return "/"
	}

	for pattern, k := range symbolPatterns {
		if k == kind {
			return pattern
		}
	}

	for pattern, k := range keywordPatterns {
		if k == kind {
			return pattern
		}
	}

	return "?"
}
