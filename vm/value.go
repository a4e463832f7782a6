package vm

import (
	"fmt"
	"sort"

	"github.com/chazu/sol25/pkg/ast"
)

// Kind discriminates the carrier stored in an Object.
type Kind uint8

const (
	KindNil Kind = iota
	KindTrue
	KindFalse
	KindInteger
	KindString
	KindBlock
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "Nil"
	case KindTrue:
		return "True"
	case KindFalse:
		return "False"
	case KindInteger:
		return "Integer"
	case KindString:
		return "String"
	case KindBlock:
		return "Block"
	case KindInstance:
		return "Instance"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// BlockValue is the carrier payload of a block object: the block node from
// the program tree plus the receiver captured when the literal was
// evaluated. Self is nil only for blocks created outside any method body.
type BlockValue struct {
	Node *ast.Block
	Self *Object
}

// Object is a SOL25 runtime object. All objects are handled by pointer and
// identity comparison is pointer comparison. The class field may name a
// user-defined subclass of the built-in carrier class; fresh values produced
// by built-in routines always carry the plain built-in name.
type Object struct {
	kind  Kind
	class string

	intVal int64
	strVal string
	block  *BlockValue

	attrs map[string]*Object
}

// The three singletons. Every nil, true and false in a program resolves to
// these pointers, so identity comparison doubles as equality for them.
// Singletons never carry attributes.
var (
	Nil   = &Object{kind: KindNil, class: ClassNil}
	True  = &Object{kind: KindTrue, class: ClassTrue}
	False = &Object{kind: KindFalse, class: ClassFalse}
)

// FromBool maps a Go bool onto the boolean singletons.
func FromBool(b bool) *Object {
	if b {
		return True
	}
	return False
}

// NewInteger creates a plain Integer object.
func NewInteger(n int64) *Object {
	return &Object{kind: KindInteger, class: ClassInteger, intVal: n}
}

// NewString creates a plain String object. The text is stored exactly as
// given; escape sequences are decoded only when printing.
func NewString(s string) *Object {
	return &Object{kind: KindString, class: ClassString, strVal: s}
}

// NewBlock creates a block object capturing self from the defining frame.
func NewBlock(node *ast.Block, self *Object) *Object {
	return &Object{kind: KindBlock, class: ClassBlock, block: &BlockValue{Node: node, Self: self}}
}

// NewInstance creates an empty instance of a user class rooted at Object.
func NewInstance(class string) *Object {
	return &Object{kind: KindInstance, class: class}
}

func newIntegerAs(class string, n int64) *Object {
	return &Object{kind: KindInteger, class: class, intVal: n}
}

func newStringAs(class string, s string) *Object {
	return &Object{kind: KindString, class: class, strVal: s}
}

func newBlockAs(class string, bv *BlockValue) *Object {
	return &Object{kind: KindBlock, class: class, block: &BlockValue{Node: bv.Node, Self: bv.Self}}
}

func newInstanceAs(class string) *Object {
	return &Object{kind: KindInstance, class: class}
}

// Kind returns the carrier kind.
func (o *Object) Kind() Kind { return o.kind }

// ClassName returns the dynamic class name.
func (o *Object) ClassName() string { return o.class }

// IsSingleton reports whether o is one of Nil, True or False.
func (o *Object) IsSingleton() bool {
	return o.kind == KindNil || o.kind == KindTrue || o.kind == KindFalse
}

// Int returns the integer carrier. Zero for other kinds.
func (o *Object) Int() int64 { return o.intVal }

// Str returns the string carrier. Empty for other kinds.
func (o *Object) Str() string { return o.strVal }

// Block returns the block carrier. Nil for other kinds.
func (o *Object) Block() *BlockValue { return o.block }

// Attr reads an attribute by name.
func (o *Object) Attr(name string) (*Object, bool) {
	v, ok := o.attrs[name]
	return v, ok
}

// SetAttr writes an attribute, creating it on first write. Returns false
// when the object cannot carry attributes (the singletons).
func (o *Object) SetAttr(name string, v *Object) bool {
	if o.IsSingleton() {
		return false
	}
	if o.attrs == nil {
		o.attrs = make(map[string]*Object)
	}
	o.attrs[name] = v
	return true
}

// AttrNames returns the attribute names in sorted order.
func (o *Object) AttrNames() []string {
	names := make([]string, 0, len(o.attrs))
	for n := range o.attrs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// copyAttrsFrom shallow-copies every attribute of src into o. Attribute
// values keep their identity; only the name table is duplicated.
func (o *Object) copyAttrsFrom(src *Object) {
	if len(src.attrs) == 0 || o.IsSingleton() {
		return
	}
	if o.attrs == nil {
		o.attrs = make(map[string]*Object, len(src.attrs))
	}
	for n, v := range src.attrs {
		o.attrs[n] = v
	}
}

// String renders a short debug form. Not the SOL25 asString conversion.
func (o *Object) String() string {
	switch o.kind {
	case KindNil:
		return "nil"
	case KindTrue:
		return "true"
	case KindFalse:
		return "false"
	case KindInteger:
		return fmt.Sprintf("%d", o.intVal)
	case KindString:
		return fmt.Sprintf("'%s'", o.strVal)
	case KindBlock:
		return fmt.Sprintf("a %s/%d", o.class, o.block.Node.Arity)
	default:
		return "a " + o.class
	}
}
