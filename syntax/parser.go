package syntax

import (
	"fmt"
	"io"
	"os"
	"strings"

	"tarn/logging"
)

// NOTE: All parsing functions (that are not utility/API functions) are
// commented with the EBNF notation of the grammar they parse.

// Parser is a recursive descent parser for a Tarn source file.  All parsing
// functions assume that they begin with the parser centered on the first token
// of their production and must consume all tokens of their production, leaving
// the parser on the next token.  Parsing stops at the first syntax error.
type Parser struct {
	lctx *logging.LogContext
	sc   *Scanner

	// tok is the current token the parser is positioned on
	tok *Token

	// prev is the token the parser was positioned on before tok
	prev *Token
}

// NewParser creates a new parser reading from the given scanner
func NewParser(sc *Scanner) *Parser {
	return &Parser{sc: sc, lctx: sc.Context()}
}

// ParseFile parses the source file at the given path
func ParseFile(fpath string, lctx *logging.LogContext) (*File, bool) {
	f, err := os.Open(fpath)
	if err != nil {
		logging.LogConfigError("File", "error opening file: "+err.Error())
		return nil, false
	}
	defer f.Close()

	return ParseReader(f, lctx)
}

// ParseString parses source text held in memory
func ParseString(src string, lctx *logging.LogContext) (*File, bool) {
	return ParseReader(strings.NewReader(src), lctx)
}

// ParseReader parses source text read from r
func ParseReader(r io.Reader, lctx *logging.LogContext) (*File, bool) {
	return NewParser(NewScanner(r, lctx)).Parse()
}

// Parse runs the parser over the whole file
func (p *Parser) Parse() (*File, bool) {
	if !p.next() {
		return nil, false
	}

	return p.parseFile()
}

// -----------------------------------------------------------------------------

// file = ['module' qname ';'] {decl}
func (p *Parser) parseFile() (*File, bool) {
	file := &File{Context: p.lctx}

	if p.got(MODULE) {
		if !p.next() {
			return nil, false
		}

		names, pos, ok := p.parseQualifiedName()
		if !ok || !p.assertAndNext(SEMICOLON) {
			return nil, false
		}

		file.ModuleName = names
		file.ModulePos = pos
	}

	for !p.got(EOF) {
		decl, ok := p.parseDecl()
		if !ok {
			return nil, false
		}

		file.Decls = append(file.Decls, decl)
	}

	return file, true
}

// decl = {attr} (import | enum)
func (p *Parser) parseDecl() (Decl, bool) {
	attrs := Attributes{Visibility: -1}

	for IsAttribute(p.tok.Kind) {
		switch p.tok.Kind {
		case STATIC:
			attrs.Static = true
		case DEPRECATED:
			attrs.Deprecated = true
		default:
			if attrs.Visibility != -1 && attrs.Visibility != p.tok.Kind {
				p.rejectWithMsg("conflicting visibility attributes")
				return nil, false
			}

			attrs.Visibility = p.tok.Kind
		}

		if !p.next() {
			return nil, false
		}
	}

	switch p.tok.Kind {
	case IMPORT:
		return p.parseImport(attrs)
	case ENUM:
		return p.parseEnum(attrs)
	}

	p.reject()
	return nil, false
}

// import = 'import' [IDENT '='] qname [':' bind {',' bind}] ';'
func (p *Parser) parseImport(attrs Attributes) (Decl, bool) {
	id := &ImportDecl{DeclBase: DeclBase{Attributes: attrs, Pos: p.tok.Position}}

	if !p.want(IDENTIFIER) {
		return nil, false
	}

	names, pos, ok := p.parseQualifiedName()
	if !ok {
		return nil, false
	}

	if p.got(ASSIGN) {
		if len(names) != 1 {
			p.rejectWithMsg("import alias must be a single identifier")
			return nil, false
		}

		id.Alias = names[0]

		if !p.next() {
			return nil, false
		}

		names, pos, ok = p.parseQualifiedName()
		if !ok {
			return nil, false
		}
	}

	id.Packages = names[:len(names)-1]
	id.Module = names[len(names)-1]
	id.PathPos = pos

	if p.got(COLON) {
		for {
			if !p.wantAndNext(IDENTIFIER) {
				return nil, false
			}

			bind, ok := p.parseImportBind()
			if !ok {
				return nil, false
			}

			id.Binds = append(id.Binds, bind)

			if !p.got(COMMA) {
				break
			}
		}
	}

	if !p.assertAndNext(SEMICOLON) {
		return nil, false
	}

	id.Pos = logging.TextPositionFromRange(id.Pos, id.PathPos)
	return id, true
}

// bind = IDENT ['=' IDENT]
func (p *Parser) parseImportBind() (*ImportBind, bool) {
	// the parser has already moved past the first identifier
	first := p.prev

	if p.got(ASSIGN) {
		if !p.want(IDENTIFIER) {
			return nil, false
		}

		bind := &ImportBind{
			Alias: first.Value,
			Name:  p.tok.Value,
			Pos:   logging.TextPositionFromRange(first.Position, p.tok.Position),
		}

		return bind, p.next()
	}

	return &ImportBind{Name: first.Value, Alias: first.Value, Pos: first.Position}, true
}

// enum = 'enum' [IDENT] [':' type] (';' | '{' [member {',' member} [',']] '}')
func (p *Parser) parseEnum(attrs Attributes) (Decl, bool) {
	ed := &EnumDecl{DeclBase: DeclBase{Attributes: attrs, Pos: p.tok.Position}}

	if !p.next() {
		return nil, false
	}

	if p.got(IDENTIFIER) {
		ed.Name = p.tok.Value
		ed.Pos = logging.TextPositionFromRange(ed.Pos, p.tok.Position)

		if !p.next() {
			return nil, false
		}
	}

	if p.got(COLON) {
		if !p.next() {
			return nil, false
		}

		baseType, ok := p.parseTypeLabel()
		if !ok {
			return nil, false
		}

		ed.BaseType = baseType
	}

	if p.got(SEMICOLON) {
		if ed.Name == "" {
			p.rejectWithMsg("anonymous enum must have a body")
			return nil, false
		}

		return ed, p.next()
	}

	if !p.assertAndNext(LBRACE) {
		return nil, false
	}

	ed.HasBody = true
	ed.Members = []*EnumMember{}

	for !p.got(RBRACE) {
		member, ok := p.parseEnumMember()
		if !ok {
			return nil, false
		}

		ed.Members = append(ed.Members, member)

		if p.got(COMMA) {
			if !p.next() {
				return nil, false
			}
		} else if !p.assert(RBRACE) {
			return nil, false
		}
	}

	return ed, p.next()
}

// member = [type] IDENT ['=' expr]
func (p *Parser) parseEnumMember() (*EnumMember, bool) {
	em := &EnumMember{}

	if IsTypeKeyword(p.tok.Kind) {
		typ, ok := p.parseTypeLabel()
		if !ok {
			return nil, false
		}

		em.Type = typ
	} else if p.assert(IDENTIFIER) {
		names, pos, ok := p.parseQualifiedName()
		if !ok {
			return nil, false
		}

		// a name followed by another name is a type label
		if p.got(IDENTIFIER) {
			em.Type = &NamedType{Names: names, Pos: pos}
		} else if len(names) == 1 {
			em.Name = names[0]
			em.Pos = pos
		} else {
			p.reject()
			return nil, false
		}
	} else {
		return nil, false
	}

	if em.Name == "" {
		if !p.assert(IDENTIFIER) {
			return nil, false
		}

		em.Name = p.tok.Value
		em.Pos = p.tok.Position

		if !p.next() {
			return nil, false
		}
	}

	if p.got(ASSIGN) {
		if !p.next() {
			return nil, false
		}

		init, ok := p.parseExpr()
		if !ok {
			return nil, false
		}

		em.Init = init
	}

	return em, true
}

// type = type_keyword | qname
func (p *Parser) parseTypeLabel() (TypeExpr, bool) {
	if IsTypeKeyword(p.tok.Kind) {
		bt := &BuiltinType{Kind: p.tok.Kind, Pos: p.tok.Position}
		return bt, p.next()
	}

	if !p.assert(IDENTIFIER) {
		return nil, false
	}

	names, pos, ok := p.parseQualifiedName()
	if !ok {
		return nil, false
	}

	return &NamedType{Names: names, Pos: pos}, true
}

// qname = IDENT {'.' IDENT}
func (p *Parser) parseQualifiedName() ([]string, *logging.TextPosition, bool) {
	if !p.assert(IDENTIFIER) {
		return nil, nil, false
	}

	names := []string{p.tok.Value}
	start, end := p.tok.Position, p.tok.Position

	if !p.next() {
		return nil, nil, false
	}

	for p.got(DOT) {
		if !p.want(IDENTIFIER) {
			return nil, nil, false
		}

		names = append(names, p.tok.Value)
		end = p.tok.Position

		if !p.next() {
			return nil, nil, false
		}
	}

	return names, logging.TextPositionFromRange(start, end), true
}

// -----------------------------------------------------------------------------

// next moves the parser forward one token
func (p *Parser) next() bool {
	if tok, ok := p.sc.ReadToken(); ok {
		p.prev = p.tok
		p.tok = tok
		return true
	}

	return false
}

// got returns true if the parser is on a token of a given kind
func (p *Parser) got(kind int) bool {
	return p.tok.Kind == kind
}

// gotOneOf returns if the parser's current token kind is one of given kinds
func (p *Parser) gotOneOf(kinds ...int) bool {
	for _, kind := range kinds {
		if p.tok.Kind == kind {
			return true
		}
	}

	return false
}

// assert checks if the parser is on a token of a given kind and rejects the
// token if not
func (p *Parser) assert(kind int) bool {
	if p.got(kind) {
		return true
	}

	p.reject()
	return false
}

// assertAndNext performs an assert operation and moves the parser forward
func (p *Parser) assertAndNext(kind int) bool {
	return p.assert(kind) && p.next()
}

// want moves the parser forward one and then asserts that the token the parser
// has moved to its of a given kind
func (p *Parser) want(kind int) bool {
	return p.next() && p.assert(kind)
}

// wantAndNext performs a want operation and moves the parser forward
func (p *Parser) wantAndNext(kind int) bool {
	return p.want(kind) && p.next()
}

// reject reports an unexpected token error on the current token
func (p *Parser) reject() {
	if p.tok.Kind == EOF {
		p.rejectWithMsg("unexpected end of file")
	} else {
		p.rejectWithMsg("unexpected token: `%s`", p.tok.Value)
	}
}

// rejectWithMsg rejects the current token with a specific message
func (p *Parser) rejectWithMsg(msg string, a ...interface{}) {
	logging.LogCompileError(
		p.lctx,
		fmt.Sprintf(msg, a...),
		logging.LMKSyntax,
		p.tok.Position,
	)
}
