package bisp

func (ev *evaluator) builtinOp(args *Value, op string) *Value {
	if errVal := ev.check(args, args.Len() > 0, ArityError, "function '%s' expects at least 1 argument", op); errVal != nil {
		return errVal
	}
	for _, cell := range args.cells {
		if cell.kind != KindNumber {
			ev.heap.Release(args)
			return ev.heap.Error(TypeError, "cannot operate on non-number")
		}
	}

	x := args.Pop(0)
	if op == "-" && args.Len() == 0 {
		x.num = -x.num
	}

	for args.Len() > 0 {
		y := args.Pop(0)
		switch op {
		case "+":
			x.num += y.num
		case "-":
			x.num -= y.num
		case "*":
			x.num *= y.num
		case "/":
			if y.num == 0 {
				ev.heap.ReleaseAll(x, y, args)
				return ev.heap.Error(DivisionByZero, "Division By Zero")
			}
			x.num /= y.num
		case "%":
			if y.num == 0 {
				ev.heap.ReleaseAll(x, y, args)
				return ev.heap.Error(ModuloByZero, "Modulo By Zero")
			}
			x.num %= y.num
		}
		ev.heap.Release(y)
	}

	ev.heap.Release(args)
	return x
}
