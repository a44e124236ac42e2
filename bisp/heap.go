package bisp

import (
	"fmt"
	"sync/atomic"
)

// Heap is the ownership ledger every Value is allocated from. It counts
// allocations and releases so that leaks and double releases are observable;
// Go's collector reclaims the memory itself.
type Heap struct {
	allocated atomic.Int64
	released  atomic.Int64
}

// HeapStats is a snapshot of a Heap's counters.
type HeapStats struct {
	Allocated int64
	Released  int64
	Live      int64
}

func NewHeap() *Heap {
	return &Heap{}
}

// Stats returns the current allocation counters.
func (h *Heap) Stats() HeapStats {
	allocated := h.allocated.Load()
	released := h.released.Load()
	return HeapStats{Allocated: allocated, Released: released, Live: allocated - released}
}

// Live returns the number of values allocated and not yet released.
func (h *Heap) Live() int64 {
	return h.allocated.Load() - h.released.Load()
}

func (h *Heap) alloc(v *Value) *Value {
	h.allocated.Add(1)
	return v
}

func (h *Heap) Number(n int64) *Value {
	return h.alloc(&Value{kind: KindNumber, num: n})
}

func (h *Heap) Symbol(name string) *Value {
	return h.alloc(&Value{kind: KindSymbol, str: name})
}

func (h *Heap) Error(kind ErrorKind, message string) *Value {
	return h.alloc(&Value{kind: KindError, errKind: kind, str: message})
}

func (h *Heap) Errorf(kind ErrorKind, format string, args ...any) *Value {
	return h.Error(kind, fmt.Sprintf(format, args...))
}

// SExpr returns a new, empty S-expression.
func (h *Heap) SExpr() *Value {
	return h.alloc(&Value{kind: KindSExpr})
}

// QExpr returns a new, empty Q-expression.
func (h *Heap) QExpr() *Value {
	return h.alloc(&Value{kind: KindQExpr})
}

// Release destroys v and, for lists, every cell it still owns. v must not be
// owned by a container and must not have been released already.
func (h *Heap) Release(v *Value) {
	if v.owned {
		panic(contractViolation("release of a value owned by a container"))
	}
	h.release(v)
}

func (h *Heap) release(v *Value) {
	if v.released {
		panic(contractViolation("value released twice"))
	}
	for i, cell := range v.cells {
		cell.owned = false
		h.release(cell)
		v.cells[i] = nil
	}
	v.cells = nil
	v.released = true
	h.released.Add(1)
}

// Take pops the i-th cell out of container and releases the container.
func (h *Heap) Take(container *Value, i int) *Value {
	x := container.Pop(i)
	h.Release(container)
	return x
}

// ReleaseAll releases each value in turn.
func (h *Heap) ReleaseAll(values ...*Value) {
	for _, v := range values {
		h.Release(v)
	}
}
