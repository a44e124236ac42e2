package bisp

import "fmt"

// kindHalted marks the Error value an evaluator unwinds with after a bound
// is exceeded. It never reaches callers: the Engine swaps it for a Go error.
const kindHalted ErrorKind = -1

type evaluator struct {
	heap *Heap

	stepQuota      int
	recursionLimit int
	valueQuota     int64

	steps int
	depth int
	halt  error
}

// Eval reduces v to a single value with no bounds on steps or depth. It takes
// ownership of v; the caller owns the returned value.
func Eval(h *Heap, v *Value) *Value {
	ev := &evaluator{heap: h}
	return ev.eval(v)
}

func (ev *evaluator) eval(v *Value) *Value {
	if err := ev.step(); err != nil {
		return ev.abort(v, err)
	}
	if v.kind == KindSExpr {
		return ev.evalSExpr(v)
	}
	return v
}

func (ev *evaluator) evalSExpr(v *Value) *Value {
	ev.depth++
	defer func() { ev.depth-- }()
	if ev.recursionLimit > 0 && ev.depth > ev.recursionLimit {
		return ev.abort(v, fmt.Errorf("%w (%d)", ErrRecursionLimit, ev.recursionLimit))
	}

	for i, cell := range v.cells {
		cell.owned = false
		v.cells[i] = nil
		result := ev.eval(cell)
		result.owned = true
		v.cells[i] = result
	}

	for i, cell := range v.cells {
		if cell.kind == KindError {
			return ev.heap.Take(v, i)
		}
	}

	switch len(v.cells) {
	case 0:
		return v
	case 1:
		return ev.heap.Take(v, 0)
	}

	f := v.Pop(0)
	if f.kind != KindSymbol {
		ev.heap.ReleaseAll(f, v)
		return ev.heap.Error(TypeError, "S-expression does not start with symbol")
	}

	result := ev.call(f.str, v)
	ev.heap.Release(f)
	return result
}

func (ev *evaluator) step() error {
	if ev.halt != nil {
		return ev.halt
	}
	ev.steps++
	if ev.stepQuota > 0 && ev.steps > ev.stepQuota {
		return fmt.Errorf("%w (%d)", ErrStepQuotaExceeded, ev.stepQuota)
	}
	// the first step sees everything Read allocated
	if ev.valueQuota > 0 && ev.heap.Live() > ev.valueQuota {
		return fmt.Errorf("%w (%d)", ErrValueQuotaExceeded, ev.valueQuota)
	}
	return nil
}

// abort records the first bound violation, releases v and returns the halt
// marker so enclosing expressions unwind through the normal error path.
func (ev *evaluator) abort(v *Value, err error) *Value {
	if ev.halt == nil {
		ev.halt = err
	}
	ev.heap.Release(v)
	return ev.heap.Error(kindHalted, err.Error())
}
