package vm

import "strconv"

// ---------------------------------------------------------------------------
// Integer Primitives
// ---------------------------------------------------------------------------

func (ct *ClassTable) registerIntegerPrimitives() {
	c := ct.classes[ClassInteger]

	// Arithmetic. The argument must carry an integer; anything else is a
	// bad operand, not a doesNotUnderstand.
	c.addNative1("plus:", func(_ *Interp, recv, arg *Object) (*Object, error) {
		if arg.Kind() != KindInteger {
			return nil, Errorf(CodeBadOperand, "plus: needs an Integer argument, got %s", arg.ClassName())
		}
		return NewInteger(recv.Int() + arg.Int()), nil
	})

	c.addNative1("minus:", func(_ *Interp, recv, arg *Object) (*Object, error) {
		if arg.Kind() != KindInteger {
			return nil, Errorf(CodeBadOperand, "minus: needs an Integer argument, got %s", arg.ClassName())
		}
		return NewInteger(recv.Int() - arg.Int()), nil
	})

	c.addNative1("multiplyBy:", func(_ *Interp, recv, arg *Object) (*Object, error) {
		if arg.Kind() != KindInteger {
			return nil, Errorf(CodeBadOperand, "multiplyBy: needs an Integer argument, got %s", arg.ClassName())
		}
		return NewInteger(recv.Int() * arg.Int()), nil
	})

	// divBy: truncates toward zero. Division by zero is a bad operand.
	c.addNative1("divBy:", func(_ *Interp, recv, arg *Object) (*Object, error) {
		if arg.Kind() != KindInteger {
			return nil, Errorf(CodeBadOperand, "divBy: needs an Integer argument, got %s", arg.ClassName())
		}
		if arg.Int() == 0 {
			return nil, Errorf(CodeBadOperand, "division by zero")
		}
		return NewInteger(recv.Int() / arg.Int()), nil
	})

	c.addNative1("greaterThan:", func(_ *Interp, recv, arg *Object) (*Object, error) {
		if arg.Kind() != KindInteger {
			return nil, Errorf(CodeBadOperand, "greaterThan: needs an Integer argument, got %s", arg.ClassName())
		}
		return FromBool(recv.Int() > arg.Int()), nil
	})

	// Equality never fails: a non-integer argument simply is not equal.
	c.addNative1("equalTo:", func(_ *Interp, recv, arg *Object) (*Object, error) {
		if arg.Kind() != KindInteger {
			return False, nil
		}
		return FromBool(recv.Int() == arg.Int()), nil
	})

	c.addNative0("asString", func(_ *Interp, recv *Object) (*Object, error) {
		return NewString(strconv.FormatInt(recv.Int(), 10)), nil
	})

	c.addNative0("asInteger", func(_ *Interp, recv *Object) (*Object, error) {
		return recv, nil
	})

	// timesRepeat: runs the argument once per count with the 1-based
	// iteration number. A non-positive receiver runs it zero times.
	// Answers the receiver.
	c.addNative1("timesRepeat:", func(in *Interp, recv, arg *Object) (*Object, error) {
		n := recv.Int()
		for i := int64(1); i <= n; i++ {
			_, err := in.dispatch(objReceiver(arg), "value:", []*Object{NewInteger(i)}, false)
			if err != nil {
				return nil, err
			}
		}
		return recv, nil
	})

	c.addNative0("isNumber", func(_ *Interp, recv *Object) (*Object, error) {
		return True, nil
	})
}
