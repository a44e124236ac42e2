package syntax

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenNumber  TokenType = "NUMBER"
	tokenKeyword TokenType = "KEYWORD"
	tokenIdent   TokenType = "IDENT"

	tokenPlus     TokenType = "+"
	tokenMinus    TokenType = "-"
	tokenAsterisk TokenType = "*"
	tokenSlash    TokenType = "/"
	tokenPercent  TokenType = "%"

	tokenLParen TokenType = "("
	tokenRParen TokenType = ")"
	tokenLBrace TokenType = "{"
	tokenRBrace TokenType = "}"
)

// Token captures lexical information for the parser.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position identifies a rune position in the source, 1-based.
type Position struct {
	Line   int
	Column int
}

// Keywords lists the named operators the grammar recognizes.
var Keywords = []string{"list", "head", "tail", "join", "eval"}

// Operators lists the single-character operators the grammar recognizes.
var Operators = []string{"+", "-", "*", "/", "%"}

func lookupWord(word string) TokenType {
	for _, kw := range Keywords {
		if kw == word {
			return tokenKeyword
		}
	}
	return tokenIdent
}

func isOperator(tt TokenType) bool {
	switch tt {
	case tokenPlus, tokenMinus, tokenAsterisk, tokenSlash, tokenPercent:
		return true
	default:
		return false
	}
}
