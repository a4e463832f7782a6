package vm

// Frame is one activation record: the receiver bound to self plus the
// parameter and local bindings of a running block. Parameters are fixed at
// construction and the two name sets stay disjoint, so rebinding a
// parameter is detectable forever.
type Frame struct {
	self   *Object // nil for blocks defined outside any method
	params map[string]*Object
	locals map[string]*Object
}

func newFrame(self *Object, names []string, args []*Object) (*Frame, error) {
	if len(names) != len(args) {
		return nil, internalf("frame: %d parameters for %d arguments", len(names), len(args))
	}
	params := make(map[string]*Object, len(names))
	for i, n := range names {
		params[n] = args[i]
	}
	return &Frame{
		self:   self,
		params: params,
		locals: make(map[string]*Object),
	}, nil
}

// Self returns the receiver bound in this frame.
func (f *Frame) Self() (*Object, bool) {
	return f.self, f.self != nil
}

// Lookup resolves a parameter or local variable.
func (f *Frame) Lookup(name string) (*Object, error) {
	if v, ok := f.params[name]; ok {
		return v, nil
	}
	if v, ok := f.locals[name]; ok {
		return v, nil
	}
	return nil, undefinedVar(name)
}

// Bind assigns a local variable, creating it on first assignment.
// Parameters cannot be assigned.
func (f *Frame) Bind(name string, v *Object) error {
	if _, isParam := f.params[name]; isParam {
		return paramAssign(name)
	}
	f.locals[name] = v
	return nil
}

// defaultMaxDepth caps the call stack so runaway recursion surfaces as a
// classified error instead of a Go stack overflow.
const defaultMaxDepth = 10000

// FrameStack is the interpreter call stack.
type FrameStack struct {
	frames []*Frame
	max    int
}

// NewFrameStack creates an empty stack with the default depth cap.
func NewFrameStack() *FrameStack {
	return &FrameStack{max: defaultMaxDepth}
}

// Push adds a frame. Exceeding the depth cap is a classified internal
// error.
func (s *FrameStack) Push(f *Frame) error {
	if len(s.frames) >= s.max {
		return internalf("call depth exceeds %d frames", s.max)
	}
	s.frames = append(s.frames, f)
	return nil
}

// Pop removes the top frame. Every Pop pairs with a Push, so an empty pop
// can only mean the interpreter lost track; it panics with a classified
// error that Run recovers into a normal error return.
func (s *FrameStack) Pop() {
	if len(s.frames) == 0 {
		panic(internalf("frame stack underflow"))
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// Top returns the current frame.
func (s *FrameStack) Top() (*Frame, error) {
	if len(s.frames) == 0 {
		return nil, internalf("no active frame")
	}
	return s.frames[len(s.frames)-1], nil
}

// Depth returns the number of active frames.
func (s *FrameStack) Depth() int { return len(s.frames) }
