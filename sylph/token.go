package sylph

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenIdent  TokenType = "IDENT"
	tokenInt    TokenType = "INT"
	tokenString TokenType = "STRING"

	tokenAssign        TokenType = "="
	tokenPlus          TokenType = "+"
	tokenMinus         TokenType = "-"
	tokenAsterisk      TokenType = "*"
	tokenSlash         TokenType = "/"
	tokenPercent       TokenType = "%"
	tokenPlusAssign    TokenType = "+="
	tokenMinusAssign   TokenType = "-="
	tokenStarAssign    TokenType = "*="
	tokenPercentAssign TokenType = "%="
	tokenLT            TokenType = "<"
	tokenGT            TokenType = ">"
	tokenLTE           TokenType = "<="
	tokenGTE           TokenType = ">="
	tokenEQ            TokenType = "=="
	tokenNotEQ         TokenType = "!="

	tokenComma   TokenType = ","
	tokenLParen  TokenType = "("
	tokenRParen  TokenType = ")"
	tokenNewline TokenType = "NEWLINE"

	tokenOut    TokenType = "OUT"
	tokenDef    TokenType = "DEF"
	tokenEnd    TokenType = "END"
	tokenIf     TokenType = "IF"
	tokenElse   TokenType = "ELSE"
	tokenWhile  TokenType = "WHILE"
	tokenReturn TokenType = "RETURN"
)

// Token captures lexical information for the parser. Integer tokens keep the
// width suffix attached to the literal when one is present ("10i64").
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position identifies a line and column in the source text, both 1-based.
type Position struct {
	Line   int
	Column int
}

func lookupIdent(ident string) TokenType {
	switch ident {
	case "out":
		return tokenOut
	case "def":
		return tokenDef
	case "end":
		return tokenEnd
	case "if":
		return tokenIf
	case "else":
		return tokenElse
	case "while":
		return tokenWhile
	case "return":
		return tokenReturn
	}
	return tokenIdent
}
