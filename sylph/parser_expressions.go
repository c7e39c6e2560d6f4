package sylph

import (
	"fmt"
	"math/big"
	"strings"
)

type (
	prefixParseFn func() Expression
	infixParseFn  func(Expression) Expression
)

const (
	lowestPrec = iota
	precComparison
	precSum
	precProduct
	precPrefix
)

var precedences = map[TokenType]int{
	tokenEQ:       precComparison,
	tokenNotEQ:    precComparison,
	tokenLT:       precComparison,
	tokenLTE:      precComparison,
	tokenGT:       precComparison,
	tokenGTE:      precComparison,
	tokenPlus:     precSum,
	tokenMinus:    precSum,
	tokenAsterisk: precProduct,
	tokenSlash:    precProduct,
	tokenPercent:  precProduct,
}

// startsArgument reports whether a token can begin a call argument. Operator
// tokens are excluded so that an identifier followed by one keeps extending
// the current expression instead of opening a call.
func startsArgument(tt TokenType) bool {
	switch tt {
	case tokenInt, tokenString, tokenIdent, tokenLParen:
		return true
	}
	return false
}

// parseCallableExpression parses an expression slot that may open a
// parenthesis-free call: statement heads, assignment right-hand sides,
// out/return values, conditions, and grouped sub-expressions. Inside
// arguments and operands identifiers stay plain, which keeps `add x y`
// flat rather than nesting x over y.
func (p *parser) parseCallableExpression() Expression {
	if p.curToken.Type == tokenIdent && startsArgument(p.peekToken.Type) {
		return p.parseBareCall()
	}
	return p.parseExpression(lowestPrec)
}

// parseBareCall parses `callee arg (,? arg)*` with the comma optional
// between arguments. The current token is the callee identifier and the peek
// token is known to start an argument.
func (p *parser) parseBareCall() Expression {
	pos := p.curToken.Pos
	callee := p.curToken.Literal
	args := []Expression{}

	p.nextToken()
	first := p.parseExpression(lowestPrec)
	if p.err != nil {
		return nil
	}
	args = append(args, first)

	for p.err == nil {
		if p.peekToken.Type == tokenComma {
			p.nextToken()
			p.nextToken()
			args = append(args, p.parseExpression(lowestPrec))
			continue
		}
		if startsArgument(p.peekToken.Type) {
			p.nextToken()
			args = append(args, p.parseExpression(lowestPrec))
			continue
		}
		break
	}
	if p.err != nil {
		return nil
	}

	return &CallExpr{Callee: callee, Args: args, position: pos}
}

func (p *parser) parseExpression(precedence int) Expression {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorExpected(p.curToken, "expression")
		return nil
	}

	left := prefix()

	for p.err == nil && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}

	return left
}

func (p *parser) parseIdentifier() Expression {
	return &Identifier{Name: p.curToken.Literal, position: p.curToken.Pos}
}

// parseIntegerLiteral splits the lexeme into digits and width suffix. A
// suffixed literal that does not fit its declared width is rejected here,
// before anything runs.
func (p *parser) parseIntegerLiteral() Expression {
	lexeme := p.curToken.Literal
	digits := lexeme
	width := WidthUnset

	if i := strings.IndexFunc(lexeme, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		digits = lexeme[:i]
		width, _ = widthForSuffix(lexeme[i:])
	}

	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		p.errorAt(p.curToken.Pos, fmt.Sprintf("malformed integer literal %q", lexeme))
		return nil
	}

	if width != WidthUnset && !width.fits(value) {
		p.errorAt(p.curToken.Pos, fmt.Sprintf("integer literal %s out of range for %s", digits, width))
		return nil
	}

	return &IntegerLiteral{Value: value, Width: width, position: p.curToken.Pos}
}

func (p *parser) parseStringLiteral() Expression {
	return &StringLiteral{Value: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseGroupedExpression() Expression {
	p.nextToken()
	expr := p.parseCallableExpression()
	if !p.expectPeek(tokenRParen, ")") {
		return nil
	}
	return expr
}

func (p *parser) parsePrefixExpression() Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	p.nextToken()
	right := p.parseExpression(precPrefix)
	return &UnaryExpr{Operator: operator, Right: right, position: pos}
}

func (p *parser) parseInfixExpression(left Expression) Expression {
	pos := p.curToken.Pos
	operator := p.curToken.Type
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return &BinaryExpr{Left: left, Operator: operator, Right: right, position: pos}
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) expectPeek(tt TokenType, expected string) bool {
	if p.peekToken.Type == tt {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, expected)
	return false
}
