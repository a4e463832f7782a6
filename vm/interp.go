package vm

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/chazu/sol25/pkg/ast"
)

// Interp executes a loaded program tree against a class table. One Interp
// serves one program run; it is not safe for concurrent use.
type Interp struct {
	classes *ClassTable
	stack   *FrameStack
	input   *bufio.Reader
	output  io.Writer
}

// NewInterp creates an interpreter. A nil input reads as immediate end of
// file; a nil output discards everything printed.
func NewInterp(classes *ClassTable, input io.Reader, output io.Writer) *Interp {
	if input == nil {
		input = bytes.NewReader(nil)
	}
	if output == nil {
		output = io.Discard
	}
	return &Interp{
		classes: classes,
		stack:   NewFrameStack(),
		input:   bufio.NewReader(input),
		output:  output,
	}
}

// Classes returns the table the interpreter runs against.
func (in *Interp) Classes() *ClassTable { return in.classes }

// Run locates Main and its run method, instantiates Main and executes run.
// The returned error, if any, carries the classified exit code.
func (in *Interp) Run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(*Error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()

	if !in.classes.Has(ClassMain) {
		return Errorf(CodeNoEntry, "program has no Main class")
	}
	body, ok := in.classes.FindMethod(ClassMain, "run")
	if !ok {
		return Errorf(CodeNoEntry, "Main has no run method")
	}
	if body.Arity != 0 {
		return Errorf(CodeNoEntry, "Main run must take no parameters")
	}

	self, err := in.instantiate(ClassMain)
	if err != nil {
		return err
	}
	_, err = in.executeBlock(body, self, nil, ClassMain)
	return err
}

// executeBlock runs a block body in a fresh frame with self bound to the
// given receiver. dynClass names the receiver's class for the error raised
// when the block's declared arity does not match the argument count.
func (in *Interp) executeBlock(node *ast.Block, self *Object, args []*Object, dynClass string) (*Object, error) {
	if node.Arity != len(args) {
		return nil, notUnderstood(dynClass, valueSelector(len(args)))
	}
	f, err := newFrame(self, node.ParamNames(), args)
	if err != nil {
		return nil, err
	}
	if err := in.stack.Push(f); err != nil {
		return nil, err
	}
	defer in.stack.Pop()
	return in.runBody(node)
}

// runBody evaluates the statements of a block in the current frame. The
// block's value is the last assigned value, or Nil for an empty body.
func (in *Interp) runBody(node *ast.Block) (*Object, error) {
	result := Nil
	for _, a := range node.SortedAssigns() {
		if a.Var == nil || a.Expr == nil {
			return nil, internalf("assign node missing its variable or expression")
		}
		v, err := in.evaluateValue(a.Expr)
		if err != nil {
			return nil, err
		}
		top, err := in.stack.Top()
		if err != nil {
			return nil, err
		}
		if err := top.Bind(a.Var.Name, v); err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// evaluateExpr evaluates one expression node. The result is either an
// object or a bare class token; only a send receiver position may hold the
// latter.
func (in *Interp) evaluateExpr(e *ast.Expr) (Receiver, error) {
	switch {
	case e == nil:
		return Receiver{}, internalf("empty expression node")
	case e.Literal != nil:
		return in.evaluateLiteral(e.Literal)
	case e.Var != nil:
		v, err := in.lookupVar(e.Var.Name)
		if err != nil {
			return Receiver{}, err
		}
		return objReceiver(v), nil
	case e.Block != nil:
		self := in.currentSelf()
		return objReceiver(NewBlock(e.Block, self)), nil
	case e.Send != nil:
		return in.evaluateSend(e.Send)
	default:
		return Receiver{}, internalf("expression node has no content")
	}
}

// evaluateValue evaluates an expression that must produce an object. A bare
// class token in a value position is a bad operand.
func (in *Interp) evaluateValue(e *ast.Expr) (*Object, error) {
	r, err := in.evaluateExpr(e)
	if err != nil {
		return nil, err
	}
	if r.IsClass() {
		return nil, Errorf(CodeBadOperand, "class %s used as a value", r.Class)
	}
	return r.Obj, nil
}

func (in *Interp) evaluateLiteral(l *ast.Literal) (Receiver, error) {
	switch l.Class {
	case "Integer":
		n, err := strconv.ParseInt(l.Value, 10, 64)
		if err != nil {
			return Receiver{}, internalf("bad integer literal %q", l.Value)
		}
		return objReceiver(NewInteger(n)), nil
	case "String":
		return objReceiver(NewString(l.Value)), nil
	case "Nil":
		return objReceiver(Nil), nil
	case "True":
		return objReceiver(True), nil
	case "False":
		return objReceiver(False), nil
	case "class":
		return classReceiver(l.Value), nil
	default:
		return Receiver{}, internalf("unknown literal class %q", l.Class)
	}
}

// lookupVar resolves a variable name in the current frame. The pseudo
// variables nil, true and false name the singletons; self and super name
// the frame receiver.
func (in *Interp) lookupVar(name string) (*Object, error) {
	switch name {
	case "nil":
		return Nil, nil
	case "true":
		return True, nil
	case "false":
		return False, nil
	case "self", "super":
		top, err := in.stack.Top()
		if err != nil {
			return nil, err
		}
		self, ok := top.Self()
		if !ok {
			return nil, undefinedVar(name)
		}
		return self, nil
	}
	top, err := in.stack.Top()
	if err != nil {
		return nil, err
	}
	return top.Lookup(name)
}

// currentSelf returns the receiver a block literal captures, or nil when
// evaluation happens outside any method.
func (in *Interp) currentSelf() *Object {
	top, err := in.stack.Top()
	if err != nil {
		return nil
	}
	self, _ := top.Self()
	return self
}

func (in *Interp) evaluateSend(s *ast.Send) (Receiver, error) {
	if s.Receiver == nil {
		return Receiver{}, internalf("send %s has no receiver", s.Selector)
	}
	superSend := s.Receiver.Var != nil && s.Receiver.Var.Name == "super"
	recv, err := in.evaluateExpr(s.Receiver)
	if err != nil {
		return Receiver{}, err
	}
	exprs := s.SortedArgs()
	args := make([]*Object, 0, len(exprs))
	for _, ae := range exprs {
		v, err := in.evaluateValue(ae)
		if err != nil {
			return Receiver{}, err
		}
		args = append(args, v)
	}
	res, err := in.dispatch(recv, s.Selector, args, superSend)
	if err != nil {
		return Receiver{}, err
	}
	return objReceiver(res), nil
}

// readLine consumes one input line for String read. The trailing newline is
// stripped. End of input, or a final line without a newline once it has
// been returned, reads as Nil.
func (in *Interp) readLine() *Object {
	line, err := in.input.ReadString('\n')
	if err != nil && line == "" {
		return Nil
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return NewString(line)
}

// write sends printed text to the program output.
func (in *Interp) write(s string) error {
	if _, err := io.WriteString(in.output, s); err != nil {
		return internalf("write output: %v", err)
	}
	return nil
}
