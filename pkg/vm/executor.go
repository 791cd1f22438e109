package vm

import (
	"image/color"

	"github.com/charmbracelet/log"

	"turtle/pkg/raster"
	"turtle/pkg/stack"
)

// phase tracks how far program construction has progressed
type phase int

const (
	phaseSize phase = iota
	phaseBackground
	phasePosition
	phaseBody
	phaseSealed
)

// DefaultPenColor is the pen color before any COLOR instruction.
var DefaultPenColor = color.RGBA{A: 0xff}

// Executor builds a turtle program and runs it against a raster buffer.
type Executor struct {
	functions map[string]*Function // function table, entry included
	order     []*Function          // functions in definition order, entry first
	entry     *Function            // top-level instructions
	building  *Function            // function receiving new instructions
	phase     phase

	calls  *stack.Stack[*StackFrame] // call stack
	global *StackFrame               // activation of the entry function
	pc     int                       // index into the top frame's instructions

	canvas  *raster.Buffer
	x, y    float64    // logical pen position
	heading int        // degrees in [0, 360), 0 is east
	raised  bool       // cloaked: move without drawing
	pen     color.RGBA // current pen color
	width   int        // brush width

	log *log.Logger

	maxSteps int // maximum instructions executed (0 = unlimited)
	steps    int // instructions executed
}

type Option func(*Executor)

// WithLogger sets the logger used for tracing and warnings
func WithLogger(l *log.Logger) Option {
	return func(e *Executor) { e.log = l }
}

// WithMaxSteps bounds the number of executed instructions; Run returns
// ErrMaxStepsExceeded once the bound is hit
func WithMaxSteps(n int) Option {
	return func(e *Executor) { e.maxSteps = n }
}

// NewExecutor creates an Executor with an empty entry function
func NewExecutor(opts ...Option) *Executor {
	entry := &Function{Name: EntryName}

	e := &Executor{
		functions: map[string]*Function{EntryName: entry},
		order:     []*Function{entry},
		entry:     entry,
		building:  entry,
		phase:     phaseSize,
		calls:     stack.NewStack[*StackFrame](),
		canvas:    raster.New(0, 0),
		pen:       DefaultPenColor,
		width:     1,
	}

	for _, o := range opts {
		o(e)
	}

	if e.log == nil {
		e.log = log.Default()
	}

	return e
}

// Canvas returns the raster buffer drawn into
func (e *Executor) Canvas() *raster.Buffer {
	return e.canvas
}

// Position returns the logical pen position
func (e *Executor) Position() (x, y float64) {
	return e.x, e.y
}

// Heading returns the pen heading in degrees
func (e *Executor) Heading() int {
	return e.heading
}

// Raised reports whether the pen is cloaked
func (e *Executor) Raised() bool {
	return e.raised
}

// PenColor returns the current pen color
func (e *Executor) PenColor() color.RGBA {
	return e.pen
}

// PenWidth returns the current brush width
func (e *Executor) PenWidth() int {
	return e.width
}

// PC returns the program counter
func (e *Executor) PC() int {
	return e.pc
}

// Depth returns the number of active call frames
func (e *Executor) Depth() int {
	return e.calls.Size()
}

// Steps returns the number of instructions executed so far
func (e *Executor) Steps() int {
	return e.steps
}

// Globals returns the values of the variables defined at top level. It
// stays valid after Run has emptied the call stack.
func (e *Executor) Globals() map[string]int {
	vars := make(map[string]int)
	if e.global == nil {
		return vars
	}

	for name, v := range e.global.Locals {
		vars[name] = v.Value
	}
	return vars
}

// Entry returns the function holding the top-level instructions
func (e *Executor) Entry() *Function {
	return e.entry
}

// Function looks up a function by name
func (e *Executor) Function(name string) (*Function, bool) {
	f, ok := e.functions[name]
	return f, ok
}

// Functions returns every function in definition order, entry first
func (e *Executor) Functions() []*Function {
	return e.order
}

// DrawPixel paints the brush at (x, y) in the current pen color. Pixels
// outside the canvas are discarded.
func (e *Executor) DrawPixel(x, y int) {
	e.canvas.Stamp(x, y, e.width, e.pen)
}

// Step executes a single instruction, returning (halted, error)
func (e *Executor) Step() (bool, error) {
	if e.phase != phaseSealed {
		return false, ErrNotSealed
	}

	frame, ok := e.calls.Peek()
	if !ok {
		return true, nil
	}

	ops := frame.Function.Ops
	if e.pc >= len(ops) {
		// falling off the end of a body is the only way to return
		e.calls.Pop()
		if e.calls.Empty() {
			return true, nil
		}

		e.pc = frame.ReturnPC + 1
		caller, _ := e.calls.Peek()
		e.log.Debug("Return", "from", frame.Function.Name, "to", caller.Function.Name, "pc", e.pc)
		return false, nil
	}

	if e.maxSteps > 0 && e.steps >= e.maxSteps {
		return false, ErrMaxStepsExceeded
	}

	e.steps++
	return false, e.exec(frame, &ops[e.pc])
}

// Run executes until the call stack is empty or an error occurs
func (e *Executor) Run() error {
	for {
		halted, err := e.Step()
		if err != nil {
			return err
		}

		if halted {
			return nil
		}
	}
}
