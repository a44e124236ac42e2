package syntax

import (
	"strings"
	"unicode"
)

// Format renders a parse tree as canonical source: list elements separated by
// single spaces and no padding inside delimiters. Top-level expressions are
// separated by a single space.
func Format(root *Node) string {
	var b strings.Builder
	for i, expr := range root.Exprs() {
		if i > 0 {
			b.WriteByte(' ')
		}
		formatNode(&b, expr)
	}
	return b.String()
}

func formatNode(b *strings.Builder, n *Node) {
	switch {
	case strings.Contains(n.Tag, TagSExprChild):
		formatList(b, n, '(', ')')
	case strings.Contains(n.Tag, TagQExprChild):
		formatList(b, n, '{', '}')
	default:
		b.WriteString(n.Contents)
	}
}

func formatList(b *strings.Builder, n *Node, open, close byte) {
	b.WriteByte(open)
	for i, child := range n.Exprs() {
		if i > 0 {
			b.WriteByte(' ')
		}
		formatNode(b, child)
	}
	b.WriteByte(close)
}

// FormatSource formats every line of source independently, preserving blank
// lines. Lines that continue an open list are joined with the following lines
// until the expression is complete.
func FormatSource(source string) (string, error) {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	var out []string
	var pending strings.Builder
	for _, line := range strings.Split(strings.TrimRightFunc(normalized, unicode.IsSpace), "\n") {
		if pending.Len() == 0 && strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}
		if pending.Len() > 0 {
			pending.WriteByte('\n')
		}
		pending.WriteString(line)

		root, err := Parse(pending.String())
		if err != nil {
			if IsIncomplete(err) {
				continue
			}
			return "", err
		}
		out = append(out, Format(root))
		pending.Reset()
	}
	if pending.Len() > 0 {
		_, err := Parse(pending.String())
		return "", err
	}
	return strings.Join(out, "\n") + "\n", nil
}
