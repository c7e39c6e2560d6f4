package sylph

type parser struct {
	l *lexer

	curToken  Token
	peekToken Token

	// First error wins; parsing is fail-fast and the partial tree is
	// discarded once err is set.
	err error

	depth     int // block nesting, any construct
	funcDepth int // function body nesting

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

func newParser(input string) *parser {
	p := &parser{l: newLexer(input)}

	p.prefixFns = map[TokenType]prefixParseFn{
		tokenIdent:  p.parseIdentifier,
		tokenInt:    p.parseIntegerLiteral,
		tokenString: p.parseStringLiteral,
		tokenLParen: p.parseGroupedExpression,
		tokenMinus:  p.parsePrefixExpression,
	}

	p.infixFns = map[TokenType]infixParseFn{
		tokenPlus:     p.parseInfixExpression,
		tokenMinus:    p.parseInfixExpression,
		tokenAsterisk: p.parseInfixExpression,
		tokenSlash:    p.parseInfixExpression,
		tokenPercent:  p.parseInfixExpression,
		tokenEQ:       p.parseInfixExpression,
		tokenNotEQ:    p.parseInfixExpression,
		tokenLT:       p.parseInfixExpression,
		tokenLTE:      p.parseInfixExpression,
		tokenGT:       p.parseInfixExpression,
		tokenGTE:      p.parseInfixExpression,
	}

	p.nextToken()
	p.nextToken()

	return p
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
	if p.peekToken.Type == tokenIllegal && p.err == nil {
		p.err = &LexError{Reason: p.peekToken.Literal, Pos: p.peekToken.Pos}
	}
}

// ParseProgram parses the whole source. The first lexical or syntactic error
// aborts the parse; no partial program is returned.
func (p *parser) ParseProgram() (*Program, error) {
	program := &Program{}

	p.skipNewlines()
	for p.curToken.Type != tokenEOF && p.err == nil {
		stmt := p.parseStatement()
		if p.err != nil {
			return nil, p.err
		}
		program.Statements = append(program.Statements, stmt)
		p.endStatement()
	}

	if p.err != nil {
		return nil, p.err
	}
	return program, nil
}

func (p *parser) skipNewlines() {
	for p.curToken.Type == tokenNewline {
		p.nextToken()
	}
}

// endStatement moves past the statement's last token and requires a newline
// (or end of input) there, then skips blank lines. On return curToken is the
// first token of whatever comes next.
func (p *parser) endStatement() {
	if p.err != nil {
		return
	}
	p.nextToken()
	if p.curToken.Type != tokenNewline && p.curToken.Type != tokenEOF {
		p.errorExpected(p.curToken, "newline")
		return
	}
	p.skipNewlines()
}

func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case tokenDef:
		return p.parseFunctionStatement()
	case tokenReturn:
		return p.parseReturnStatement()
	case tokenIf:
		return p.parseIfStatement()
	case tokenWhile:
		return p.parseWhileStatement()
	case tokenOut:
		return p.parseOutStatement()
	case tokenIdent:
		return p.parseIdentStatement()
	default:
		p.errorExpected(p.curToken, "statement")
		return nil
	}
}

func (p *parser) parseFunctionStatement() Statement {
	pos := p.curToken.Pos
	if p.depth > 0 {
		p.errorAt(pos, "function definitions are only allowed at the top level")
		return nil
	}

	if !p.expectPeek(tokenIdent, "function name") {
		return nil
	}
	name := p.curToken.Literal

	if !p.expectPeek(tokenLParen, "(") {
		return nil
	}

	params := []string{}
	if p.peekToken.Type == tokenRParen {
		p.nextToken()
	} else {
		p.nextToken()
		if p.curToken.Type != tokenIdent {
			p.errorExpected(p.curToken, "parameter name")
			return nil
		}
		params = append(params, p.curToken.Literal)
		for p.peekToken.Type == tokenComma {
			p.nextToken()
			p.nextToken()
			if p.curToken.Type != tokenIdent {
				p.errorExpected(p.curToken, "parameter name")
				return nil
			}
			params = append(params, p.curToken.Literal)
		}
		if !p.expectPeek(tokenRParen, ")") {
			return nil
		}
	}

	p.endStatement()

	p.depth++
	p.funcDepth++
	body := p.parseBlock(tokenEnd)
	p.funcDepth--
	p.depth--

	if p.err != nil {
		return nil
	}
	if p.curToken.Type != tokenEnd {
		p.errorExpected(p.curToken, "end")
		return nil
	}

	return &FunctionStmt{Name: name, Params: params, Body: body, position: pos}
}

func (p *parser) parseReturnStatement() Statement {
	pos := p.curToken.Pos
	if p.funcDepth == 0 {
		p.errorAt(pos, "return outside a function body")
		return nil
	}

	if p.peekToken.Type == tokenNewline || p.peekToken.Type == tokenEOF {
		return &ReturnStmt{position: pos}
	}

	p.nextToken()
	value := p.parseCallableExpression()
	return &ReturnStmt{Value: value, position: pos}
}

func (p *parser) parseIfStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	condition := p.parseCallableExpression()

	p.endStatement()
	p.depth++
	consequent := p.parseBlock(tokenEnd, tokenElse)
	p.depth--

	var alternate []Statement
	if p.curToken.Type == tokenElse {
		p.endStatement()
		p.depth++
		alternate = p.parseBlock(tokenEnd)
		p.depth--
	}

	if p.err != nil {
		return nil
	}
	if p.curToken.Type != tokenEnd {
		p.errorExpected(p.curToken, "end")
		return nil
	}

	return &IfStmt{Condition: condition, Consequent: consequent, Alternate: alternate, position: pos}
}

func (p *parser) parseWhileStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	condition := p.parseCallableExpression()

	p.endStatement()
	p.depth++
	body := p.parseBlock(tokenEnd)
	p.depth--

	if p.err != nil {
		return nil
	}
	if p.curToken.Type != tokenEnd {
		p.errorExpected(p.curToken, "end")
		return nil
	}

	return &WhileStmt{Condition: condition, Body: body, position: pos}
}

func (p *parser) parseOutStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	value := p.parseCallableExpression()
	return &OutStmt{Value: value, position: pos}
}

// parseIdentStatement handles the three statement forms that begin with an
// identifier: assignment, compound assignment, and a call (or bare name).
func (p *parser) parseIdentStatement() Statement {
	pos := p.curToken.Pos
	name := p.curToken.Literal

	switch p.peekToken.Type {
	case tokenAssign:
		p.nextToken()
		p.nextToken()
		value := p.parseCallableExpression()
		return &AssignStmt{Name: name, Value: value, position: pos}
	case tokenPlusAssign, tokenMinusAssign, tokenStarAssign, tokenPercentAssign:
		op := compoundOps[p.peekToken.Type]
		p.nextToken()
		p.nextToken()
		value := p.parseCallableExpression()
		return &CompoundAssignStmt{Name: name, Op: op, Value: value, position: pos}
	case tokenNewline, tokenEOF:
		// Bare name: a zero-argument call if the name is a registered
		// function, otherwise a variable read.
		return &ExprStmt{Expr: &Identifier{Name: name, position: pos}, position: pos}
	default:
		if startsArgument(p.peekToken.Type) {
			call := p.parseBareCall()
			return &ExprStmt{Expr: call, position: pos}
		}
		p.errorExpected(p.peekToken, "assignment or call arguments")
		return nil
	}
}

var compoundOps = map[TokenType]TokenType{
	tokenPlusAssign:    tokenPlus,
	tokenMinusAssign:   tokenMinus,
	tokenStarAssign:    tokenAsterisk,
	tokenPercentAssign: tokenPercent,
}

func (p *parser) parseBlock(stop ...TokenType) []Statement {
	stmts := []Statement{}
	stopSet := make(map[TokenType]struct{}, len(stop))
	for _, tt := range stop {
		stopSet[tt] = struct{}{}
	}

	for p.err == nil {
		if _, ok := stopSet[p.curToken.Type]; ok || p.curToken.Type == tokenEOF {
			return stmts
		}
		stmt := p.parseStatement()
		if p.err != nil {
			return stmts
		}
		stmts = append(stmts, stmt)
		p.endStatement()
	}
	return stmts
}
