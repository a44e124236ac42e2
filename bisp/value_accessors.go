package bisp

func (v *Value) Kind() ValueKind { return v.kind }

func (v *Value) IsError() bool { return v.kind == KindError }

func (v *Value) IsList() bool { return v.kind == KindSExpr || v.kind == KindQExpr }

// Number returns the integer payload, or 0 for other kinds.
func (v *Value) Number() int64 {
	if v.kind != KindNumber {
		return 0
	}
	return v.num
}

// Symbol returns the operator name, or "" for other kinds.
func (v *Value) Symbol() string {
	if v.kind != KindSymbol {
		return ""
	}
	return v.str
}

// ErrorKind returns the error classification of an Error value, or NoError
// for other kinds.
func (v *Value) ErrorKind() ErrorKind {
	if v.kind != KindError {
		return NoError
	}
	return v.errKind
}

// Message returns the human-readable message of an Error value.
func (v *Value) Message() string {
	if v.kind != KindError {
		return ""
	}
	return v.str
}

// Len returns the number of cells in a list, or 0 for other kinds.
func (v *Value) Len() int {
	return len(v.cells)
}

// Cell returns the i-th cell without transferring ownership. The caller must
// not retain it past the next mutation of v.
func (v *Value) Cell(i int) *Value {
	v.mustBeList("cell")
	return v.cells[i]
}
