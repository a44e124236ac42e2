package bisp

// ValueKind tags the variant a Value holds.
type ValueKind int

const (
	KindNumber ValueKind = iota
	KindSymbol
	KindError
	KindSExpr
	KindQExpr
)

// Value is the single recursive node type: both the read tree and the
// evaluation result. A SExpr or QExpr exclusively owns its cells; a cell
// belongs to at most one container at a time.
type Value struct {
	kind    ValueKind
	num     int64
	str     string
	errKind ErrorKind
	cells   []*Value

	owned    bool
	released bool
}

func (k ValueKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindSymbol:
		return "symbol"
	case KindError:
		return "error"
	case KindSExpr:
		return "sexpr"
	case KindQExpr:
		return "qexpr"
	default:
		panic(contractViolation("unknown value kind"))
	}
}
