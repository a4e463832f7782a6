package vm

import (
	"sort"

	"github.com/chazu/sol25/pkg/ast"
)

// Built-in class names known to every program.
const (
	ClassObject  = "Object"
	ClassNil     = "Nil"
	ClassTrue    = "True"
	ClassFalse   = "False"
	ClassInteger = "Integer"
	ClassString  = "String"
	ClassBlock   = "Block"
	ClassMain    = "Main"
)

// NativeFunc is the Go implementation of a built-in method. Natives receive
// the interpreter so they can run nested sends and reach the streams.
type NativeFunc func(in *Interp, recv *Object, args []*Object) (*Object, error)

// ClassDef is one entry in the class table. User classes carry method bodies
// from the program tree; built-in classes carry native routines. A class can
// hold both when a user class is later extended in place.
type ClassDef struct {
	Name    string
	Parent  string // empty only for Object
	Builtin bool

	methods   map[string]*ast.Block
	selectors []string // user method selectors in registration order
	natives   map[string]NativeFunc
}

func newClassDef(name, parent string, builtin bool) *ClassDef {
	return &ClassDef{
		Name:    name,
		Parent:  parent,
		Builtin: builtin,
		methods: make(map[string]*ast.Block),
		natives: make(map[string]NativeFunc),
	}
}

// Method returns the user-defined body for selector, if any.
func (c *ClassDef) Method(selector string) (*ast.Block, bool) {
	b, ok := c.methods[selector]
	return b, ok
}

// Selectors returns the user method selectors in definition order.
func (c *ClassDef) Selectors() []string {
	out := make([]string, len(c.selectors))
	copy(out, c.selectors)
	return out
}

// NativeSelectors returns the native selectors in sorted order.
func (c *ClassDef) NativeSelectors() []string {
	out := make([]string, 0, len(c.natives))
	for sel := range c.natives {
		out = append(out, sel)
	}
	sort.Strings(out)
	return out
}

func (c *ClassDef) addMethod(selector string, body *ast.Block) error {
	if _, dup := c.methods[selector]; dup {
		return internalf("class %s defines %s twice", c.Name, selector)
	}
	c.methods[selector] = body
	c.selectors = append(c.selectors, selector)
	return nil
}

func (c *ClassDef) addNative(selector string, fn NativeFunc) {
	c.natives[selector] = fn
}

// addNative0, addNative1 and addNative2 register fixed-arity natives. The
// selector's colon count already fixes the argument count at every call
// site, so a mismatch here means the dispatcher broke.

func (c *ClassDef) addNative0(selector string, fn func(*Interp, *Object) (*Object, error)) {
	c.addNative(selector, func(in *Interp, recv *Object, args []*Object) (*Object, error) {
		if len(args) != 0 {
			return nil, internalf("%s>>%s: got %d arguments, want 0", c.Name, selector, len(args))
		}
		return fn(in, recv)
	})
}

func (c *ClassDef) addNative1(selector string, fn func(*Interp, *Object, *Object) (*Object, error)) {
	c.addNative(selector, func(in *Interp, recv *Object, args []*Object) (*Object, error) {
		if len(args) != 1 {
			return nil, internalf("%s>>%s: got %d arguments, want 1", c.Name, selector, len(args))
		}
		return fn(in, recv, args[0])
	})
}

func (c *ClassDef) addNative2(selector string, fn func(*Interp, *Object, *Object, *Object) (*Object, error)) {
	c.addNative(selector, func(in *Interp, recv *Object, args []*Object) (*Object, error) {
		if len(args) != 2 {
			return nil, internalf("%s>>%s: got %d arguments, want 2", c.Name, selector, len(args))
		}
		return fn(in, recv, args[0], args[1])
	})
}

// ClassTable maps class names to definitions and resolves methods along the
// parent chain. A fresh table holds the seven built-in classes; LoadProgram
// adds the user classes of one program.
type ClassTable struct {
	classes     map[string]*ClassDef
	description string
}

// NewClassTable creates a table with the built-in classes and their native
// methods registered.
func NewClassTable() *ClassTable {
	ct := &ClassTable{classes: make(map[string]*ClassDef)}
	ct.defineBuiltin(ClassObject, "")
	ct.defineBuiltin(ClassNil, ClassObject)
	ct.defineBuiltin(ClassTrue, ClassObject)
	ct.defineBuiltin(ClassFalse, ClassObject)
	ct.defineBuiltin(ClassInteger, ClassObject)
	ct.defineBuiltin(ClassString, ClassObject)
	ct.defineBuiltin(ClassBlock, ClassObject)
	ct.registerObjectPrimitives()
	ct.registerNilPrimitives()
	ct.registerBooleanPrimitives()
	ct.registerIntegerPrimitives()
	ct.registerStringPrimitives()
	ct.registerBlockPrimitives()
	return ct
}

func (ct *ClassTable) defineBuiltin(name, parent string) *ClassDef {
	def := newClassDef(name, parent, true)
	ct.classes[name] = def
	return def
}

// Lookup returns the definition for name.
func (ct *ClassTable) Lookup(name string) (*ClassDef, bool) {
	def, ok := ct.classes[name]
	return def, ok
}

// Has reports whether name is a registered class.
func (ct *ClassTable) Has(name string) bool {
	_, ok := ct.classes[name]
	return ok
}

// All returns every definition sorted by class name.
func (ct *ClassTable) All() []*ClassDef {
	defs := make([]*ClassDef, 0, len(ct.classes))
	for _, def := range ct.classes {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// Len returns the number of registered classes.
func (ct *ClassTable) Len() int { return len(ct.classes) }

// Description returns the program description comment, if the program
// carried one.
func (ct *ClassTable) Description() string { return ct.description }

// ParentOf returns the parent class name. The empty string with ok=true is
// Object's root position.
func (ct *ClassTable) ParentOf(name string) (string, bool) {
	def, ok := ct.classes[name]
	if !ok {
		return "", false
	}
	return def.Parent, true
}

// FindMethod resolves a user-defined method by walking the parent chain
// from class toward Object. Built-in natives are not considered.
func (ct *ClassTable) FindMethod(class, selector string) (*ast.Block, bool) {
	for cur := class; cur != ""; {
		def, ok := ct.classes[cur]
		if !ok {
			return nil, false
		}
		if body, ok := def.methods[selector]; ok {
			return body, true
		}
		cur = def.Parent
	}
	return nil, false
}

// FindNative resolves a native routine by walking the parent chain from
// class toward Object.
func (ct *ClassTable) FindNative(class, selector string) (NativeFunc, bool) {
	for cur := class; cur != ""; {
		def, ok := ct.classes[cur]
		if !ok {
			return nil, false
		}
		if fn, ok := def.natives[selector]; ok {
			return fn, true
		}
		cur = def.Parent
	}
	return nil, false
}

// BuiltinAncestorOf walks the parent chain until it reaches a built-in
// class. The result decides which carrier instances of class use.
func (ct *ClassTable) BuiltinAncestorOf(class string) (string, bool) {
	for cur := class; cur != ""; {
		def, ok := ct.classes[cur]
		if !ok {
			return "", false
		}
		if def.Builtin {
			return def.Name, true
		}
		cur = def.Parent
	}
	return "", false
}

// isAncestorOrSelf reports whether anc appears on class's parent chain,
// class itself included.
func (ct *ClassTable) isAncestorOrSelf(anc, class string) bool {
	for cur := class; cur != ""; {
		if cur == anc {
			return true
		}
		def, ok := ct.classes[cur]
		if !ok {
			return false
		}
		cur = def.Parent
	}
	return false
}

// Related reports whether one class is an ancestor of the other, in either
// direction. This is the compatibility rule for from:.
func (ct *ClassTable) Related(a, b string) bool {
	return ct.isAncestorOrSelf(a, b) || ct.isAncestorOrSelf(b, a)
}

// LoadProgram registers every class of a parsed program. The parser already
// validated the tree, so shape violations found here are internal errors:
// duplicate or built-in class names, duplicate selectors, unknown parents
// and parent cycles.
func (ct *ClassTable) LoadProgram(prog *ast.Program) error {
	ct.description = prog.Description

	for _, c := range prog.Classes {
		if ct.Has(c.Name) {
			return internalf("class %s defined twice", c.Name)
		}
		def := newClassDef(c.Name, c.Parent, false)
		for _, m := range c.Methods {
			if m.Body == nil {
				return internalf("class %s: method %s has no body", c.Name, m.Selector)
			}
			if err := def.addMethod(m.Selector, m.Body); err != nil {
				return err
			}
		}
		ct.classes[c.Name] = def
	}

	for _, c := range prog.Classes {
		if err := ct.checkChain(c.Name); err != nil {
			return err
		}
	}
	return nil
}

// checkChain verifies that the parent chain from name reaches Object
// without missing links or cycles.
func (ct *ClassTable) checkChain(name string) error {
	seen := make(map[string]bool)
	for cur := name; cur != ""; {
		if seen[cur] {
			return internalf("class hierarchy cycle through %s", cur)
		}
		seen[cur] = true
		def, ok := ct.classes[cur]
		if !ok {
			return internalf("class %s inherits from unknown class %s", name, cur)
		}
		cur = def.Parent
	}
	return nil
}
