package vm

// ---------------------------------------------------------------------------
// Block Primitives
// ---------------------------------------------------------------------------
//
// The value selector family is not registered here: block invocation sits
// above method resolution in the dispatch order, keyed on the receiver's
// kind and the selector's colon count.

func (ct *ClassTable) registerBlockPrimitives() {
	c := ct.classes[ClassBlock]

	c.addNative0("isBlock", func(_ *Interp, recv *Object) (*Object, error) {
		return True, nil
	})
}
