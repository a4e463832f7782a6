package vm

import "strings"

// Receiver is a message target: either a runtime object or the bare class
// name produced by a class literal. Exactly one field is set.
type Receiver struct {
	Obj   *Object
	Class string
}

func objReceiver(o *Object) Receiver { return Receiver{Obj: o} }

func classReceiver(name string) Receiver { return Receiver{Class: name} }

// IsClass reports whether the receiver is a bare class name.
func (r Receiver) IsClass() bool { return r.Obj == nil }

// dispatch routes one message send. The precedence order is fixed:
//
//  1. class messages (new, from:, String read)
//  2. the whileTrue: loop
//  3. block invocation via the value selectors
//  4. user-defined methods, resolved along the parent chain
//  5. built-in natives, resolved along the parent chain
//  6. attribute read (no arguments, attribute exists)
//  7. attribute write (one argument, single trailing colon)
//  8. doesNotUnderstand
//
// superSend restarts method resolution at the receiver's parent class.
func (in *Interp) dispatch(recv Receiver, selector string, args []*Object, superSend bool) (*Object, error) {
	if recv.IsClass() {
		return in.classMessage(recv.Class, selector, args)
	}
	obj := recv.Obj

	if selector == "whileTrue:" && len(args) == 1 {
		return in.whileTrue(obj, args[0])
	}

	if obj.Kind() == KindBlock && strings.HasPrefix(selector, "value") {
		return in.invokeBlock(obj, selector, args)
	}

	start := obj.ClassName()
	if superSend {
		parent, ok := in.classes.ParentOf(start)
		if !ok || parent == "" {
			return nil, notUnderstood(start, selector)
		}
		start = parent
	}

	if body, ok := in.classes.FindMethod(start, selector); ok {
		return in.executeBlock(body, obj, args, obj.ClassName())
	}

	if fn, ok := in.classes.FindNative(start, selector); ok {
		return fn(in, obj, args)
	}

	if len(args) == 0 && isAttrName(selector) {
		if v, ok := obj.Attr(selector); ok {
			return v, nil
		}
	}

	if len(args) == 1 && isSetterSelector(selector) {
		if obj.SetAttr(strings.TrimSuffix(selector, ":"), args[0]) {
			return obj, nil
		}
	}

	return nil, notUnderstood(obj.ClassName(), selector)
}

// classMessage handles sends whose receiver is a class name: the two
// constructors plus String read. Everything else a class name receives is
// not understood.
func (in *Interp) classMessage(name, selector string, args []*Object) (*Object, error) {
	if !in.classes.Has(name) {
		return nil, internalf("send to unknown class %s", name)
	}
	switch selector {
	case "new":
		return in.instantiate(name)
	case "from:":
		if len(args) != 1 {
			return nil, internalf("from: needs one argument, got %d", len(args))
		}
		return in.constructFrom(name, args[0])
	case "read":
		if name == ClassString {
			return in.readLine(), nil
		}
	}
	return nil, notUnderstood(name, selector)
}

// instantiate builds the new instance of a class. The built-in ancestor
// decides the carrier: descendants of Nil, True and False collapse to the
// singletons, Integer and String descendants start from their zero value,
// and Block descendants cannot be instantiated this way.
func (in *Interp) instantiate(name string) (*Object, error) {
	root, ok := in.classes.BuiltinAncestorOf(name)
	if !ok {
		return nil, internalf("class %s has no registered ancestry", name)
	}
	switch root {
	case ClassNil:
		return Nil, nil
	case ClassTrue:
		return True, nil
	case ClassFalse:
		return False, nil
	case ClassInteger:
		return newIntegerAs(name, 0), nil
	case ClassString:
		return newStringAs(name, ""), nil
	case ClassBlock:
		return nil, notUnderstood(name, "new")
	default:
		return newInstanceAs(name), nil
	}
}

// constructFrom builds an instance of name from an existing object. The
// argument's class must be name itself, an ancestor or a descendant. The
// new object copies the argument's carrier when the target's built-in
// ancestor calls for one, copies all attributes, and takes name as its
// dynamic class.
func (in *Interp) constructFrom(name string, arg *Object) (*Object, error) {
	if !in.classes.Related(name, arg.ClassName()) {
		return nil, Errorf(CodeBadOperand, "from: argument of class %s is unrelated to %s", arg.ClassName(), name)
	}
	root, ok := in.classes.BuiltinAncestorOf(name)
	if !ok {
		return nil, internalf("class %s has no registered ancestry", name)
	}

	var obj *Object
	switch root {
	case ClassNil:
		return Nil, nil
	case ClassTrue:
		return True, nil
	case ClassFalse:
		return False, nil
	case ClassInteger:
		var n int64
		if arg.Kind() == KindInteger {
			n = arg.Int()
		}
		obj = newIntegerAs(name, n)
	case ClassString:
		var s string
		if arg.Kind() == KindString {
			s = arg.Str()
		}
		obj = newStringAs(name, s)
	case ClassBlock:
		if arg.Kind() != KindBlock {
			return nil, Errorf(CodeBadOperand, "from: cannot build a block out of %s", arg.ClassName())
		}
		obj = newBlockAs(name, arg.Block())
	default:
		obj = newInstanceAs(name)
	}
	obj.copyAttrsFrom(arg)
	return obj, nil
}

// invokeBlock handles the value selector family on block receivers. The
// selector's colon count, the argument count and the block's declared arity
// must all agree.
func (in *Interp) invokeBlock(obj *Object, selector string, args []*Object) (*Object, error) {
	bv := obj.Block()
	colons := strings.Count(selector, ":")
	if colons != len(args) || colons != bv.Node.Arity {
		return nil, notUnderstood(obj.ClassName(), selector)
	}
	return in.executeBlock(bv.Node, bv.Self, args, obj.ClassName())
}

// whileTrue repeatedly sends value to the receiver and, while the answer is
// the True singleton, value to the body. Any receiver is allowed; one that
// does not understand value fails the usual way. Always answers Nil.
func (in *Interp) whileTrue(cond, body *Object) (*Object, error) {
	for {
		c, err := in.dispatch(objReceiver(cond), "value", nil, false)
		if err != nil {
			return nil, err
		}
		if c != True {
			return Nil, nil
		}
		if _, err := in.dispatch(objReceiver(body), "value", nil, false); err != nil {
			return nil, err
		}
	}
}

// reservedNames cannot name variables or attributes.
var reservedNames = map[string]bool{
	"class": true,
	"self":  true,
	"super": true,
	"nil":   true,
	"true":  true,
	"false": true,
}

// isAttrName reports whether s is a valid attribute name: a lowercase
// letter or underscore followed by ASCII letters, digits or underscores,
// and not a reserved word.
func isAttrName(s string) bool {
	if s == "" || reservedNames[s] {
		return false
	}
	c := s[0]
	if c != '_' && (c < 'a' || c > 'z') {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_':
		default:
			return false
		}
	}
	return true
}

// isSetterSelector reports whether s is an attribute-write selector: a
// valid attribute name followed by exactly one colon.
func isSetterSelector(s string) bool {
	return strings.Count(s, ":") == 1 && strings.HasSuffix(s, ":") && isAttrName(s[:len(s)-1])
}

// valueSelector synthesizes the block invocation selector for n arguments.
func valueSelector(n int) string {
	if n == 0 {
		return "value"
	}
	return strings.Repeat("value:", n)
}
