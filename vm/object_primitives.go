package vm

// ---------------------------------------------------------------------------
// Object Primitives
// ---------------------------------------------------------------------------
//
// These are the defaults every object inherits. The literal classes
// override the conversions and the type predicates that concern them.

func (ct *ClassTable) registerObjectPrimitives() {
	c := ct.classes[ClassObject]

	c.addNative1("identicalTo:", func(_ *Interp, recv, arg *Object) (*Object, error) {
		return FromBool(recv == arg), nil
	})

	// Default equality is identity. Integer and String override it with
	// carrier comparison.
	c.addNative1("equalTo:", func(_ *Interp, recv, arg *Object) (*Object, error) {
		return FromBool(recv == arg), nil
	})

	c.addNative0("asString", func(_ *Interp, recv *Object) (*Object, error) {
		return NewString(""), nil
	})

	c.addNative0("isNumber", func(_ *Interp, recv *Object) (*Object, error) {
		return False, nil
	})

	c.addNative0("isString", func(_ *Interp, recv *Object) (*Object, error) {
		return False, nil
	})

	c.addNative0("isBlock", func(_ *Interp, recv *Object) (*Object, error) {
		return False, nil
	})

	c.addNative0("isNil", func(_ *Interp, recv *Object) (*Object, error) {
		return False, nil
	})
}
