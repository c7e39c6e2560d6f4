package sylph

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch rune
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

// readRune advances to the next rune. The line counter ticks over when the
// lexer moves past a newline, so a '\n' is positioned at the end of the line
// it terminates rather than at the start of the next one.
func (l *lexer) readRune() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w
	l.column++
	l.ch = r
}

func (l *lexer) peekRune() rune {
	if l.offset >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])
	return r
}

func (l *lexer) NextToken() Token {
	l.skipSpacesAndComments()

	tok := Token{Pos: Position{Line: l.line, Column: l.column}}

	switch l.ch {
	case 0:
		tok.Type = tokenEOF
		tok.Literal = ""
	case '\n':
		tok = l.makeToken(tokenNewline, "\n")
		l.readRune()
	case '+':
		tok = l.makeOpToken(tokenPlus, tokenPlusAssign)
	case '-':
		tok = l.makeOpToken(tokenMinus, tokenMinusAssign)
	case '*':
		tok = l.makeOpToken(tokenAsterisk, tokenStarAssign)
	case '%':
		tok = l.makeOpToken(tokenPercent, tokenPercentAssign)
	case '/':
		// Comments are handled by skipSpacesAndComments, so a slash here
		// is always the division operator.
		tok = l.makeToken(tokenSlash, "/")
		l.readRune()
	case '(':
		tok = l.makeToken(tokenLParen, "(")
		l.readRune()
	case ')':
		tok = l.makeToken(tokenRParen, ")")
		l.readRune()
	case ',':
		tok = l.makeToken(tokenComma, ",")
		l.readRune()
	case '=':
		tok = l.makeOpToken(tokenAssign, tokenEQ)
	case '<':
		tok = l.makeOpToken(tokenLT, tokenLTE)
	case '>':
		tok = l.makeOpToken(tokenGT, tokenGTE)
	case '!':
		if l.peekRune() == '=' {
			first := l.ch
			l.readRune()
			tok = l.makeToken(tokenNotEQ, string(first)+string(l.ch))
			l.readRune()
		} else {
			tok.Type = tokenIllegal
			tok.Literal = "unexpected character '!'"
			l.readRune()
		}
	case '"':
		literal, errMsg := l.readString()
		if errMsg != "" {
			tok.Type = tokenIllegal
			tok.Literal = errMsg
		} else {
			tok.Type = tokenString
			tok.Literal = literal
		}
	default:
		switch {
		case isIdentifierStart(l.ch):
			literal := l.readIdentifier()
			tok.Type = lookupIdent(literal)
			tok.Literal = literal
		case unicode.IsDigit(l.ch):
			literal, errMsg := l.readNumber()
			if errMsg != "" {
				tok.Type = tokenIllegal
				tok.Literal = errMsg
			} else {
				tok.Type = tokenInt
				tok.Literal = literal
			}
		default:
			tok.Type = tokenIllegal
			tok.Literal = fmt.Sprintf("unexpected character %q", l.ch)
			l.readRune()
		}
	}

	return tok
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) makeToken(tt TokenType, literal string) Token {
	return Token{Type: tt, Literal: literal, Pos: Position{Line: l.line, Column: l.column}}
}

// makeOpToken handles the maximal-munch pairs that share a '=' second rune:
// the single-rune operator and its two-rune form ("+" and "+=", "<" and "<=").
func (l *lexer) makeOpToken(single, withEq TokenType) Token {
	if l.peekRune() == '=' {
		first := l.ch
		l.readRune()
		tok := l.makeToken(withEq, string(first)+string(l.ch))
		l.readRune()
		return tok
	}
	tok := l.makeToken(single, string(l.ch))
	l.readRune()
	return tok
}

// skipSpacesAndComments consumes horizontal whitespace and // comments.
// Newlines are statement terminators and pass through as tokens.
func (l *lexer) skipSpacesAndComments() {
	for {
		switch l.ch {
		case ' ', '\t', '\r':
			l.readRune()
			continue
		case '/':
			if l.peekRune() != '/' {
				return
			}
			l.skipComment()
			continue
		default:
			return
		}
	}
}

func (l *lexer) skipComment() {
	for l.ch != 0 && l.ch != '\n' {
		l.readRune()
	}
}

func (l *lexer) readIdentifier() string {
	start := l.currentOffset()
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

// readNumber consumes a digit run plus any identifier characters glued to it.
// Trailing characters must spell exactly one of the width suffixes; anything
// else makes the whole lexeme malformed.
func (l *lexer) readNumber() (string, string) {
	start := l.currentOffset()
	for unicode.IsDigit(l.peekRune()) {
		l.readRune()
	}
	suffixStart := l.offset
	for isIdentifierRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	suffix := l.input[suffixStart:l.offset]
	l.readRune()

	if suffix != "" {
		if _, ok := widthForSuffix(suffix); !ok {
			return "", fmt.Sprintf("malformed integer literal %q", literal)
		}
	}
	return literal, ""
}

// readString consumes a double-quoted literal. No escape sequences exist;
// a backslash is an ordinary character. The literal must close before the
// end of its line.
func (l *lexer) readString() (string, string) {
	start := l.offset
	for {
		l.readRune()
		switch l.ch {
		case 0, '\n':
			return "", "unterminated string"
		case '"':
			literal := l.input[start:l.currentOffset()]
			l.readRune()
			return literal, ""
		}
	}
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// Tokenize scans the whole source and returns its tokens, ending with an EOF
// token. The first malformed construct aborts the scan with a LexError.
func Tokenize(source string) ([]Token, error) {
	l := newLexer(source)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == tokenIllegal {
			return nil, &LexError{Reason: tok.Literal, Pos: tok.Pos}
		}
		tokens = append(tokens, tok)
		if tok.Type == tokenEOF {
			return tokens, nil
		}
	}
}
