package bisp

import "slices"

var builtinNames = []string{"+", "-", "*", "/", "%", "list", "head", "tail", "join", "eval"}

// BuiltinNames returns the fixed set of operator names the evaluator
// dispatches on.
func BuiltinNames() []string {
	return slices.Clone(builtinNames)
}

// IsBuiltin reports whether name is one of the dispatchable operators.
func IsBuiltin(name string) bool {
	return slices.Contains(builtinNames, name)
}

// call dispatches name on args. args is the S-expression of evaluated
// arguments with the operator already popped; call owns it.
func (ev *evaluator) call(name string, args *Value) *Value {
	switch name {
	case "list":
		return ev.builtinList(args)
	case "head":
		return ev.builtinHead(args)
	case "tail":
		return ev.builtinTail(args)
	case "join":
		return ev.builtinJoin(args)
	case "eval":
		return ev.builtinEval(args)
	case "+", "-", "*", "/", "%":
		return ev.builtinOp(args, name)
	default:
		ev.heap.Release(args)
		return ev.heap.Error(UnknownFunction, "unknown function")
	}
}

// check releases args and returns an Error value when cond is false.
func (ev *evaluator) check(args *Value, cond bool, kind ErrorKind, format string, a ...any) *Value {
	if cond {
		return nil
	}
	ev.heap.Release(args)
	return ev.heap.Errorf(kind, format, a...)
}
