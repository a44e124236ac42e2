package syntax

import (
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch  rune
	eof bool
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		l.eof = true
		// keep the column moving so EOF reports the position after the last rune
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}

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
	l.skipWhitespace()

	tok := Token{Pos: Position{Line: l.line, Column: l.column}}
	if l.eof {
		tok.Type = tokenEOF
		return tok
	}

	switch l.ch {
	case '+':
		tok = l.makeToken(tokenPlus, "+")
		l.readRune()
	case '-':
		if isDigit(l.peekRune()) {
			tok.Type = tokenNumber
			tok.Literal = l.readNumber()
			return tok
		}
		tok = l.makeToken(tokenMinus, "-")
		l.readRune()
	case '*':
		tok = l.makeToken(tokenAsterisk, "*")
		l.readRune()
	case '/':
		tok = l.makeToken(tokenSlash, "/")
		l.readRune()
	case '%':
		tok = l.makeToken(tokenPercent, "%")
		l.readRune()
	case '(':
		tok = l.makeToken(tokenLParen, "(")
		l.readRune()
	case ')':
		tok = l.makeToken(tokenRParen, ")")
		l.readRune()
	case '{':
		tok = l.makeToken(tokenLBrace, "{")
		l.readRune()
	case '}':
		tok = l.makeToken(tokenRBrace, "}")
		l.readRune()
	default:
		switch {
		case isDigit(l.ch):
			tok.Type = tokenNumber
			tok.Literal = l.readNumber()
			return tok
		case isWordStart(l.ch):
			literal := l.readWord()
			tok.Type = lookupWord(literal)
			tok.Literal = literal
			return tok
		default:
			tok = l.makeToken(tokenIllegal, string(l.ch))
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

func (l *lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.readRune()
	}
}

// readNumber consumes an optional leading '-' and a run of ASCII digits.
func (l *lexer) readNumber() string {
	start := l.currentOffset()
	for isDigit(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

func (l *lexer) readWord() string {
	start := l.currentOffset()
	for isWordRune(l.peekRune()) {
		l.readRune()
	}
	literal := l.input[start:l.offset]
	l.readRune()
	return literal
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWordStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '?' || r == '!'
}
