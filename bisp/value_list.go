package bisp

import "fmt"

// Append moves child to the end of v's cells and returns v. v must be a
// SExpr or QExpr and child must not already belong to a container.
func (v *Value) Append(child *Value) *Value {
	v.mustBeList("append")
	v.mustBeLive("append")
	child.mustBeLive("append")
	if child == v {
		panic(contractViolation("append of a list to itself"))
	}
	if child.owned {
		panic(contractViolation("append of a value already owned by a container"))
	}
	child.owned = true
	v.cells = append(v.cells, child)
	return v
}

// Pop removes the i-th cell, shifts the following cells down by one and
// returns the removed cell to the caller, who now owns it.
func (v *Value) Pop(i int) *Value {
	v.mustBeList("pop")
	v.mustBeLive("pop")
	n := len(v.cells)
	if i < 0 || i >= n {
		panic(contractViolation(fmt.Sprintf("pop index %d out of range [0,%d)", i, n)))
	}
	x := v.cells[i]
	copy(v.cells[i:], v.cells[i+1:])
	v.cells[n-1] = nil
	v.cells = v.cells[:n-1]
	x.owned = false
	return x
}

func (v *Value) retag(kind ValueKind) {
	if kind != KindSExpr && kind != KindQExpr {
		panic(contractViolation("retag to a non-list kind"))
	}
	v.mustBeList("retag")
	v.kind = kind
}

func (v *Value) mustBeList(op string) {
	if v.kind != KindSExpr && v.kind != KindQExpr {
		panic(contractViolation(fmt.Sprintf("%s on %s value", op, v.kind)))
	}
}

func (v *Value) mustBeLive(op string) {
	if v.released {
		panic(contractViolation(op + " on a released value"))
	}
}
