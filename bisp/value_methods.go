package bisp

import (
	"io"
	"strconv"
	"strings"
)

// String renders v the way the REPL prints it: numbers in decimal, symbols
// raw, errors as "Error: <message>", S-expressions in ( ) and Q-expressions
// in { } with single spaces between cells.
func (v *Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v *Value) write(b *strings.Builder) {
	switch v.kind {
	case KindNumber:
		b.WriteString(strconv.FormatInt(v.num, 10))
	case KindSymbol:
		b.WriteString(v.str)
	case KindError:
		b.WriteString("Error: ")
		b.WriteString(v.str)
	case KindSExpr:
		v.writeCells(b, '(', ')')
	case KindQExpr:
		v.writeCells(b, '{', '}')
	default:
		panic(contractViolation("print of unknown value kind"))
	}
}

func (v *Value) writeCells(b *strings.Builder, open, close byte) {
	b.WriteByte(open)
	for i, cell := range v.cells {
		if i > 0 {
			b.WriteByte(' ')
		}
		cell.write(b)
	}
	b.WriteByte(close)
}

// Print writes the printed form of v to w.
func Print(w io.Writer, v *Value) error {
	_, err := io.WriteString(w, v.String())
	return err
}

// Println writes the printed form of v followed by a newline.
func Println(w io.Writer, v *Value) error {
	_, err := io.WriteString(w, v.String()+"\n")
	return err
}

// Equal reports whether v and other are structurally identical.
func (v *Value) Equal(other *Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == other.num
	case KindSymbol:
		return v.str == other.str
	case KindError:
		return v.errKind == other.errKind && v.str == other.str
	case KindSExpr, KindQExpr:
		if len(v.cells) != len(other.cells) {
			return false
		}
		for i := range v.cells {
			if !v.cells[i].Equal(other.cells[i]) {
				return false
			}
		}
		return true
	default:
		panic(contractViolation("compare of unknown value kind"))
	}
}
