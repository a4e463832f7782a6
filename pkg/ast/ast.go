// Package ast defines the SOL25 program tree as emitted by the parser front
// end. The parser writes XML with explicit order attributes on parameters,
// statements and arguments; the helpers here restore source order and expose
// the shape queries the interpreter needs.
package ast

import (
	"encoding/xml"
	"sort"
)

// Language is the value of the program element's language attribute.
const Language = "SOL25"

// Program is the root of a parsed SOL25 program.
type Program struct {
	XMLName     xml.Name `xml:"program" cbor:"-"`
	Language    string   `xml:"language,attr" cbor:"1,keyasint"`
	Description string   `xml:"description,attr,omitempty" cbor:"2,keyasint,omitempty"`
	Classes     []*Class `xml:"class" cbor:"3,keyasint"`
}

// Class is one class definition with its methods.
type Class struct {
	Name    string    `xml:"name,attr" cbor:"1,keyasint"`
	Parent  string    `xml:"parent,attr" cbor:"2,keyasint"`
	Methods []*Method `xml:"method" cbor:"3,keyasint,omitempty"`
}

// Method binds a selector to its body block.
type Method struct {
	Selector string `xml:"selector,attr" cbor:"1,keyasint"`
	Body     *Block `xml:"block" cbor:"2,keyasint"`
}

// Block is a parameter list plus an ordered sequence of assignments. Blocks
// appear as method bodies and as block literals inside expressions.
type Block struct {
	Arity      int          `xml:"arity,attr" cbor:"1,keyasint"`
	Parameters []*Parameter `xml:"parameter" cbor:"2,keyasint,omitempty"`
	Assigns    []*Assign    `xml:"assign" cbor:"3,keyasint,omitempty"`
}

// Parameter declares one block parameter at a 1-based position.
type Parameter struct {
	Order int    `xml:"order,attr" cbor:"1,keyasint"`
	Name  string `xml:"name,attr" cbor:"2,keyasint"`
}

// Assign is one statement: evaluate the expression, bind the variable.
type Assign struct {
	Order int   `xml:"order,attr" cbor:"1,keyasint"`
	Var   *Var  `xml:"var" cbor:"2,keyasint"`
	Expr  *Expr `xml:"expr" cbor:"3,keyasint"`
}

// Var references a variable by name. The names self and super are resolved
// by the interpreter, not stored in frames.
type Var struct {
	Name string `xml:"name,attr" cbor:"1,keyasint"`
}

// Expr wraps exactly one of the four expression forms.
type Expr struct {
	Literal *Literal `xml:"literal" cbor:"1,keyasint,omitempty"`
	Var     *Var     `xml:"var" cbor:"2,keyasint,omitempty"`
	Block   *Block   `xml:"block" cbor:"3,keyasint,omitempty"`
	Send    *Send    `xml:"send" cbor:"4,keyasint,omitempty"`
}

// Literal is a literal token. Class is one of Integer, String, Nil, True,
// False or class; Value holds the token text. String values keep their
// escape sequences exactly as written in the source.
type Literal struct {
	Class string `xml:"class,attr" cbor:"1,keyasint"`
	Value string `xml:"value,attr" cbor:"2,keyasint"`
}

// Send is a message send: a receiver expression, a selector and ordered
// arguments. The selector's colon count always equals the argument count.
type Send struct {
	Selector string `xml:"selector,attr" cbor:"1,keyasint"`
	Receiver *Expr  `xml:"expr" cbor:"2,keyasint"`
	Args     []*Arg `xml:"arg" cbor:"3,keyasint,omitempty"`
}

// Arg is one send argument at a 1-based position.
type Arg struct {
	Order int   `xml:"order,attr" cbor:"1,keyasint"`
	Expr  *Expr `xml:"expr" cbor:"2,keyasint"`
}

// ParamNames returns the block's parameter names in declared order.
func (b *Block) ParamNames() []string {
	params := make([]*Parameter, len(b.Parameters))
	copy(params, b.Parameters)
	sort.SliceStable(params, func(i, j int) bool { return params[i].Order < params[j].Order })
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

// SortedAssigns returns the block's statements in source order.
func (b *Block) SortedAssigns() []*Assign {
	assigns := make([]*Assign, len(b.Assigns))
	copy(assigns, b.Assigns)
	sort.SliceStable(assigns, func(i, j int) bool { return assigns[i].Order < assigns[j].Order })
	return assigns
}

// SortedArgs returns the send's argument expressions in source order.
func (s *Send) SortedArgs() []*Expr {
	args := make([]*Arg, len(s.Args))
	copy(args, s.Args)
	sort.SliceStable(args, func(i, j int) bool { return args[i].Order < args[j].Order })
	exprs := make([]*Expr, len(args))
	for i, a := range args {
		exprs[i] = a.Expr
	}
	return exprs
}
