package syntax

// expr = unary {binop unary}
func (p *Parser) parseExpr() (Expr, bool) {
	return p.parseBinaryExpr(0)
}

// precTable is the operator precedence table for binary operators.  The table
// is ordered lowest to highest precedence.
var precTable = [][]int{
	{OR},
	{AND},
	{PIPE},
	{BXOR},
	{AMP},
	{EQ, NEQ},
	{LT, GT, LTEQ, GTEQ},
	{LSHIFT, RSHIFT},
	{PLUS, MINUS},
	{STAR, DIVIDE, MOD},
}

// operatorPrec returns the precedence of the current token or -1 if it is not
// a binary operator
func (p *Parser) operatorPrec() int {
	for prec, level := range precTable {
		if p.gotOneOf(level...) {
			return prec
		}
	}

	return -1
}

// parseBinaryExpr performs precedence climbing over left associative binary
// operators binding at least as tightly as minPrec
func (p *Parser) parseBinaryExpr(minPrec int) (Expr, bool) {
	lhs, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}

	for {
		prec := p.operatorPrec()
		if prec < minPrec {
			break
		}

		op := p.tok.Kind
		if !p.next() {
			return nil, false
		}

		rhs, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return nil, false
		}

		lhs = &BinaryExpr{Op: op, Lhs: lhs, Rhs: rhs}
	}

	return lhs, true
}

// unary = ('-' | '+' | '~' | '!') unary | 'cast' '(' type ')' unary | postfix
func (p *Parser) parseUnaryExpr() (Expr, bool) {
	switch p.tok.Kind {
	case MINUS, PLUS, COMPL, NOT:
		op, opPos := p.tok.Kind, p.tok.Position
		if !p.next() {
			return nil, false
		}

		operand, ok := p.parseUnaryExpr()
		if !ok {
			return nil, false
		}

		return &UnaryExpr{Op: op, OpPos: opPos, Operand: operand}, true
	case CAST:
		pos := p.tok.Position
		if !p.wantAndNext(LPAREN) {
			return nil, false
		}

		typ, ok := p.parseTypeLabel()
		if !ok || !p.assertAndNext(RPAREN) {
			return nil, false
		}

		operand, ok := p.parseUnaryExpr()
		if !ok {
			return nil, false
		}

		return &CastExpr{Type: typ, Operand: operand, Pos: pos}, true
	}

	return p.parsePostfixExpr()
}

// postfix = primary {'.' IDENT}
func (p *Parser) parsePostfixExpr() (Expr, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return nil, false
	}

	for p.got(DOT) {
		if !p.want(IDENTIFIER) {
			return nil, false
		}

		expr = &DotExpr{Root: expr, Field: p.tok.Value, FieldPos: p.tok.Position}

		if !p.next() {
			return nil, false
		}
	}

	return expr, true
}

// primary = INTLIT | FLOATLIT | 'true' | 'false' | IDENT | type_keyword | '(' expr ')'
func (p *Parser) parsePrimaryExpr() (Expr, bool) {
	tok := p.tok

	var expr Expr
	switch tok.Kind {
	case INTLIT:
		expr = &IntLit{Value: tok.Value, Pos: tok.Position}
	case FLOATLIT:
		expr = &FloatLit{Value: tok.Value, Pos: tok.Position}
	case TRUE, FALSE:
		expr = &BoolLit{Value: tok.Kind == TRUE, Pos: tok.Position}
	case IDENTIFIER:
		expr = &Identifier{Name: tok.Value, Pos: tok.Position}
	case LPAREN:
		if !p.next() {
			return nil, false
		}

		inner, ok := p.parseExpr()
		if !ok || !p.assert(RPAREN) {
			return nil, false
		}

		expr = inner
	default:
		if !IsTypeKeyword(tok.Kind) {
			p.reject()
			return nil, false
		}

		expr = &BuiltinType{Kind: tok.Kind, Pos: tok.Position}
	}

	return expr, p.next()
}
