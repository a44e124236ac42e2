package syntax

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error is a single parse failure at a source position.
type Error struct {
	Pos        Position
	Msg        string
	source     string
	incomplete bool
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
	if frame := formatCodeFrame(e.source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

// ErrorList collects every parse failure found in one input.
type ErrorList []*Error

func (l ErrorList) Error() string {
	parts := make([]string, len(l))
	for i, err := range l {
		parts[i] = err.Error()
	}
	return strings.Join(parts, "\n")
}

// IsIncomplete reports whether err only complains about input that ended
// inside an open list, so more input could complete it.
func IsIncomplete(err error) bool {
	var list ErrorList
	if errors.As(err, &list) {
		if len(list) == 0 {
			return false
		}
		for _, e := range list {
			if !e.incomplete {
				return false
			}
		}
		return true
	}
	var single *Error
	if errors.As(err, &single) {
		return single.incomplete
	}
	return false
}

func (p *parser) errorExpected(tok Token, expected string) {
	p.addError(tok.Pos, fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok)), tok.Type == tokenEOF)
}

func (p *parser) errorUnexpected(tok Token) {
	p.addError(tok.Pos, fmt.Sprintf("unexpected %s", tokenLabel(tok)), false)
}

func (p *parser) addError(pos Position, msg string, incomplete bool) {
	p.errors = append(p.errors, &Error{Pos: pos, Msg: msg, source: p.l.input, incomplete: incomplete})
}

func tokenLabel(tok Token) string {
	switch tok.Type {
	case tokenEOF:
		return "end of input"
	case tokenIllegal:
		return fmt.Sprintf("invalid character %q", tok.Literal)
	case tokenIdent:
		return fmt.Sprintf("unknown symbol %q", tok.Literal)
	case tokenNumber:
		return "number"
	case tokenKeyword:
		return fmt.Sprintf("'%s'", tok.Literal)
	default:
		return fmt.Sprintf("%q", string(tok.Type))
	}
}

func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := lines[pos.Line-1]
	lineRunes := []rune(lineText)

	column := pos.Column
	if column <= 0 {
		column = 1
	}
	if column > len(lineRunes)+1 {
		column = len(lineRunes) + 1
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}
