package bisp

// builtinList turns the argument list itself into a Q-expression.
func (ev *evaluator) builtinList(args *Value) *Value {
	args.retag(KindQExpr)
	return args
}

func (ev *evaluator) builtinHead(args *Value) *Value {
	if errVal := ev.checkSingleList(args, "head"); errVal != nil {
		return errVal
	}
	if errVal := ev.check(args, args.cells[0].Len() != 0, ArityError, "function 'head' passed {}"); errVal != nil {
		return errVal
	}

	v := ev.heap.Take(args, 0)
	for v.Len() > 1 {
		ev.heap.Release(v.Pop(1))
	}
	return v
}

func (ev *evaluator) builtinTail(args *Value) *Value {
	if errVal := ev.checkSingleList(args, "tail"); errVal != nil {
		return errVal
	}
	if errVal := ev.check(args, args.cells[0].Len() != 0, ArityError, "function 'tail' passed {}"); errVal != nil {
		return errVal
	}

	v := ev.heap.Take(args, 0)
	ev.heap.Release(v.Pop(0))
	return v
}

func (ev *evaluator) builtinEval(args *Value) *Value {
	if errVal := ev.checkSingleList(args, "eval"); errVal != nil {
		return errVal
	}

	x := ev.heap.Take(args, 0)
	x.retag(KindSExpr)
	return ev.eval(x)
}

func (ev *evaluator) builtinJoin(args *Value) *Value {
	if errVal := ev.check(args, args.Len() > 0, ArityError, "function 'join' expects at least 1 argument"); errVal != nil {
		return errVal
	}
	for _, cell := range args.cells {
		if errVal := ev.check(args, cell.kind == KindQExpr, TypeError, "function 'join' passed incorrect type"); errVal != nil {
			return errVal
		}
	}

	x := args.Pop(0)
	for args.Len() > 0 {
		y := args.Pop(0)
		for y.Len() > 0 {
			x.Append(y.Pop(0))
		}
		ev.heap.Release(y)
	}
	ev.heap.Release(args)
	return x
}

// checkSingleList requires exactly one argument and that it is a Q-expression.
func (ev *evaluator) checkSingleList(args *Value, name string) *Value {
	if errVal := ev.check(args, args.Len() == 1, ArityError, "function '%s' expects 1 argument, got %d", name, args.Len()); errVal != nil {
		return errVal
	}
	return ev.check(args, args.cells[0].kind == KindQExpr, TypeError, "function '%s' passed incorrect type", name)
}
