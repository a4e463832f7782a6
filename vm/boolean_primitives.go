package vm

// ---------------------------------------------------------------------------
// Boolean Primitives (True, False)
// ---------------------------------------------------------------------------
//
// and: and or: short-circuit by sending value to their argument only when
// the receiver requires it, so the argument is normally a parameterless
// block. A non-block argument fails inside the nested value send.

func (ct *ClassTable) registerBooleanPrimitives() {
	t := ct.classes[ClassTrue]
	f := ct.classes[ClassFalse]

	t.addNative0("not", func(_ *Interp, recv *Object) (*Object, error) {
		return False, nil
	})

	f.addNative0("not", func(_ *Interp, recv *Object) (*Object, error) {
		return True, nil
	})

	t.addNative1("and:", func(in *Interp, recv, arg *Object) (*Object, error) {
		return in.dispatch(objReceiver(arg), "value", nil, false)
	})

	f.addNative1("and:", func(_ *Interp, recv, arg *Object) (*Object, error) {
		return recv, nil
	})

	t.addNative1("or:", func(_ *Interp, recv, arg *Object) (*Object, error) {
		return recv, nil
	})

	f.addNative1("or:", func(in *Interp, recv, arg *Object) (*Object, error) {
		return in.dispatch(objReceiver(arg), "value", nil, false)
	})

	t.addNative2("ifTrue:ifFalse:", func(in *Interp, recv, whenTrue, whenFalse *Object) (*Object, error) {
		return in.dispatch(objReceiver(whenTrue), "value", nil, false)
	})

	f.addNative2("ifTrue:ifFalse:", func(in *Interp, recv, whenTrue, whenFalse *Object) (*Object, error) {
		return in.dispatch(objReceiver(whenFalse), "value", nil, false)
	})
}
