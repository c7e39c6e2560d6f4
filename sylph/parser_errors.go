package sylph

import "fmt"

// LexError reports a malformed construct in the source text.
type LexError struct {
	Reason string
	Pos    Position
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Reason)
}

// SyntaxError reports the first structural violation the parser hits.
// Expected is empty for violations that are not expectation failures
// (return outside a function, an out-of-range literal); Found then carries
// the whole message.
type SyntaxError struct {
	Expected string
	Found    string
	Pos      Position
}

func (e *SyntaxError) Error() string {
	if e.Expected == "" {
		return fmt.Sprintf("syntax error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Found)
	}
	return fmt.Sprintf("syntax error at %d:%d: expected %s, found %s", e.Pos.Line, e.Pos.Column, e.Expected, e.Found)
}

func (p *parser) errorExpected(tok Token, expected string) {
	if p.err != nil {
		return
	}
	p.err = &SyntaxError{Expected: expected, Found: describeToken(tok), Pos: tok.Pos}
}

func (p *parser) errorAt(pos Position, msg string) {
	if p.err != nil {
		return
	}
	p.err = &SyntaxError{Found: msg, Pos: pos}
}

func describeToken(tok Token) string {
	switch tok.Type {
	case tokenEOF:
		return "end of input"
	case tokenNewline:
		return "newline"
	case tokenIdent:
		return fmt.Sprintf("identifier %q", tok.Literal)
	case tokenInt:
		return fmt.Sprintf("integer literal %q", tok.Literal)
	case tokenString:
		return "string literal"
	default:
		if tok.Literal != "" {
			return fmt.Sprintf("%q", tok.Literal)
		}
		return fmt.Sprintf("%q", string(tok.Type))
	}
}
