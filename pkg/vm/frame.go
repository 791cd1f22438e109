package vm

// EntryName names the function holding top-level instructions. It is not a
// valid identifier, so scripts cannot call it.
const EntryName = "<main>"

// Function is a named instruction sequence with its formal parameters.
type Function struct {
	Name   string   `cbor:"name"`
	Params []string `cbor:"params,omitempty"`
	Ops    []Op     `cbor:"ops"`
	Line   int      `cbor:"line,omitempty"` // line of the FUNC header
}

// StackFrame represents one active function invocation.
type StackFrame struct {
	Function *Function            // function being executed
	ReturnPC int                  // caller's pc at the CALL instruction
	Locals   map[string]*Variable // variables defined in this activation

	// remaining iterations per active loop, keyed by the LOOP index
	loops map[int]int
}

func newFrame(fn *Function, returnPC int) *StackFrame {
	return &StackFrame{
		Function: fn,
		ReturnPC: returnPC,
		Locals:   make(map[string]*Variable),
		loops:    make(map[int]int),
	}
}
