package bisp

import (
	"strconv"
	"strings"

	"github.com/mgomes/bisp/syntax"
)

// Read converts a parse tree into a Value tree allocated from h. It never
// evaluates; an out-of-range number literal becomes a SyntaxError value in
// place of the Number.
func Read(h *Heap, n *syntax.Node) *Value {
	if strings.Contains(n.Tag, "number") {
		return readNumber(h, n)
	}
	if strings.Contains(n.Tag, "symbol") {
		return h.Symbol(n.Contents)
	}

	var x *Value
	switch {
	case n.Tag == syntax.TagRoot, strings.Contains(n.Tag, syntax.TagSExprChild):
		x = h.SExpr()
	case strings.Contains(n.Tag, syntax.TagQExprChild):
		x = h.QExpr()
	default:
		return h.Errorf(SyntaxError, "unexpected node %q", n.Tag)
	}

	for _, child := range n.Children {
		if child.IsDelimiter() || child.Tag == syntax.TagAnchor {
			continue
		}
		x.Append(Read(h, child))
	}
	return x
}

func readNumber(h *Heap, n *syntax.Node) *Value {
	num, err := strconv.ParseInt(n.Contents, 10, 64)
	if err != nil {
		return h.Error(SyntaxError, "invalid number")
	}
	return h.Number(num)
}
