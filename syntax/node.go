// Package syntax turns Bisp source text into a generic, tagged parse tree.
//
// Tags follow the combinator-library convention the evaluator's reader
// understands: a node's tag is the '|'-joined chain of rules that matched it
// (for example "expr|number|regex"), the root is tagged ">", delimiters are
// "char" nodes and the start/end anchors are "regex" nodes with empty contents.
package syntax

const (
	TagRoot       = ">"
	TagAnchor     = "regex"
	TagDelimiter  = "char"
	TagNumber     = "expr|number|regex"
	TagKeyword    = "expr|symbol|string"
	TagOperator   = "expr|symbol|char"
	TagSExpr      = "expr|sexpr|>"
	TagQExpr      = "expr|qexpr|>"
	TagSExprChild = "sexpr"
	TagQExprChild = "qexpr"
)

// Node is one parse-tree node. The tree is read-only once Parse returns.
type Node struct {
	Tag      string
	Contents string
	Pos      Position
	Children []*Node
}

// IsDelimiter reports whether n is one of the bracket characters.
func (n *Node) IsDelimiter() bool {
	switch n.Contents {
	case "(", ")", "{", "}":
		return true
	default:
		return false
	}
}

// Exprs returns the expression children of a root or list node, skipping
// delimiters and anchors.
func (n *Node) Exprs() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, child := range n.Children {
		if child.IsDelimiter() || child.Tag == TagAnchor {
			continue
		}
		out = append(out, child)
	}
	return out
}
