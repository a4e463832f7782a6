package vm

// ---------------------------------------------------------------------------
// Nil Primitives
// ---------------------------------------------------------------------------

func (ct *ClassTable) registerNilPrimitives() {
	c := ct.classes[ClassNil]

	c.addNative0("asString", func(_ *Interp, recv *Object) (*Object, error) {
		return NewString("nil"), nil
	})

	c.addNative0("isNil", func(_ *Interp, recv *Object) (*Object, error) {
		return True, nil
	})
}
