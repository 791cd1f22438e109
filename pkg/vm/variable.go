package vm

import "strconv"

// Variable is a named integer bound in a call frame.
type Variable struct {
	Name  string
	Value int
}

// Operand is either an integer constant or a reference to a variable by
// name. References are resolved each time the owning instruction executes.
type Operand struct {
	Name  string `cbor:"name,omitempty"`
	Value int    `cbor:"value,omitempty"`
	IsRef bool   `cbor:"ref,omitempty"`
}

// Const returns a literal operand.
func Const(v int) Operand {
	return Operand{Value: v}
}

// Ref returns an operand naming a variable.
func Ref(name string) Operand {
	return Operand{Name: name, IsRef: true}
}

// String renders the operand as it appears in source.
func (o Operand) String() string {
	if o.IsRef {
		return o.Name
	}

	return strconv.Itoa(o.Value)
}

// Lookup walks the call stack from the innermost frame outward and returns
// the first variable called name, or nil when none is visible.
func (e *Executor) Lookup(name string) *Variable {
	frames := e.calls.Array()
	for i := len(frames) - 1; i >= 0; i-- {
		if v, ok := frames[i].Locals[name]; ok {
			return v
		}
	}

	return nil
}

// resolve turns an operand into its current integer value. A reference to
// a variable that is not visible resolves to 0.
func (e *Executor) resolve(o Operand, line int) int {
	if !o.IsRef {
		return o.Value
	}

	v := e.Lookup(o.Name)
	if v == nil {
		e.log.Warn("Undefined variable, using 0", "name", o.Name, "line", line)
		return 0
	}

	return v.Value
}
