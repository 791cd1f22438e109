package vm

import (
	"image/color"

	"turtle/pkg/raster"
)

// SetSize allocates the canvas. It must be the first declaration.
func (e *Executor) SetSize(width, height, line int) error {
	if e.phase != phaseSize {
		return errorf(line, ErrSetupOrder, "canvas size must be declared first and only once")
	}
	if width <= 0 || height <= 0 {
		return errorf(line, ErrSetupOrder, "invalid canvas size %dx%d", width, height)
	}
	if width > raster.MaxPixels/height {
		return errorf(line, ErrSetupOrder, "canvas size %dx%d exceeds %d pixels", width, height, raster.MaxPixels)
	}

	e.canvas.Reset(width, height)
	e.phase = phaseBackground
	return nil
}

// SetBackground paints the whole canvas. It must follow SetSize.
func (e *Executor) SetBackground(r, g, b, line int) error {
	if e.phase != phaseBackground {
		return errorf(line, ErrSetupOrder, "background must be declared right after the canvas size")
	}

	e.canvas.Clear(color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff})
	e.phase = phasePosition
	return nil
}

// SetPenPosition places the pen. It must follow SetBackground and
// completes the setup.
func (e *Executor) SetPenPosition(x, y, line int) error {
	if e.phase != phasePosition {
		return errorf(line, ErrSetupOrder, "pen position must be declared right after the background")
	}

	e.x, e.y = float64(x), float64(y)
	e.phase = phaseBody
	return nil
}

// Def appends a variable definition
func (e *Executor) Def(name string, value Operand, line int) error {
	return e.emit(Op{Kind: OpDef, Line: line, Name: name, Args: []Operand{value}})
}

// Add appends an in-place increment of a variable
func (e *Executor) Add(target string, value Operand, line int) error {
	return e.emit(Op{Kind: OpAdd, Line: line, Name: target, Args: []Operand{value}})
}

// Move appends a pen move
func (e *Executor) Move(steps Operand, line int) error {
	return e.emit(Op{Kind: OpMove, Line: line, Args: []Operand{steps}})
}

// Turn appends a clockwise rotation
func (e *Executor) Turn(degrees Operand, line int) error {
	return e.emit(Op{Kind: OpTurn, Line: line, Args: []Operand{degrees}})
}

// Cloak appends a pen raise
func (e *Executor) Cloak(line int) error {
	return e.emit(Op{Kind: OpCloak, Line: line})
}

// SetPenColor appends a color change, which also lowers the pen
func (e *Executor) SetPenColor(r, g, b Operand, line int) error {
	return e.emit(Op{Kind: OpColor, Line: line, Args: []Operand{r, g, b}})
}

// SetPenWidth appends a brush width change
func (e *Executor) SetPenWidth(width Operand, line int) error {
	return e.emit(Op{Kind: OpPenWidth, Line: line, Args: []Operand{width}})
}

// Fill appends a flood fill at the pen position
func (e *Executor) Fill(line int) error {
	return e.emit(Op{Kind: OpFill, Line: line})
}

// Loop opens a loop body repeated count times
func (e *Executor) Loop(count Operand, line int) error {
	if !count.IsRef && count.Value < 0 {
		return errorf(line, ErrNegativeLoop, "loop value should be non-negative, got %d", count.Value)
	}

	return e.emit(Op{Kind: OpStartLoop, Line: line, Args: []Operand{count}, Pair: -1})
}

// EndLoop closes the innermost open loop of the function being built
func (e *Executor) EndLoop(line int) error {
	start := -1
	depth := 1
	ops := e.building.Ops
	for i := len(ops) - 1; i >= 0; i-- {
		switch ops[i].Kind {
		case OpEndLoop:
			depth++
		case OpStartLoop:
			depth--
		}

		if depth == 0 {
			start = i
			break
		}
	}

	if start < 0 {
		return errorf(line, ErrLoopNesting, "unexpected END LOOP")
	}

	end := len(ops)
	if err := e.emit(Op{Kind: OpEndLoop, Line: line, Pair: start}); err != nil {
		return err
	}

	e.building.Ops[start].Pair = end
	return nil
}

// StartFuncDef routes subsequent instructions into a new function
func (e *Executor) StartFuncDef(name string, params []string, line int) error {
	if e.phase != phaseBody {
		return errorf(line, ErrSetupOrder, "function %s defined before setup is complete", name)
	}
	if e.building != e.entry {
		return errorf(line, ErrFunctionDef, "nested definition of %s inside %s", name, e.building.Name)
	}
	if _, exists := e.functions[name]; exists {
		return errorf(line, ErrFunctionDef, "function %s is already defined", name)
	}

	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p] {
			return errorf(line, ErrFunctionDef, "duplicate parameter %s in %s", p, name)
		}
		seen[p] = true
	}

	f := &Function{Name: name, Params: append([]string(nil), params...), Line: line}
	e.functions[name] = f
	e.order = append(e.order, f)
	e.building = f
	return nil
}

// EndFuncDef closes the function being built and returns to top level
func (e *Executor) EndFuncDef(line int) error {
	if e.building == e.entry {
		return errorf(line, ErrFunctionDef, "unexpected END FUNC")
	}
	if err := openLoop(e.building); err != nil {
		return err
	}

	e.building = e.entry
	return nil
}

// Call appends an invocation of a function, which may be defined later
func (e *Executor) Call(name string, args []Operand, line int) error {
	return e.emit(Op{Kind: OpCall, Line: line, Name: name, Args: append([]Operand(nil), args...)})
}

// Seal checks the finished program and prepares it to run. Calls are
// linked here so functions may be used before their definition.
func (e *Executor) Seal() error {
	switch e.phase {
	case phaseSize:
		return errorf(0, ErrSetupOrder, "missing canvas size declaration")
	case phaseBackground:
		return errorf(0, ErrSetupOrder, "missing background declaration")
	case phasePosition:
		return errorf(0, ErrSetupOrder, "missing pen position declaration")
	case phaseSealed:
		return ErrSealed
	}

	if e.building != e.entry {
		return errorf(e.building.Line, ErrFunctionDef,
			"end of file in function definition, did you miss \"END FUNC\" for %s()?", e.building.Name)
	}
	if err := openLoop(e.entry); err != nil {
		return err
	}

	for _, f := range e.order {
		for _, op := range f.Ops {
			if op.Kind != OpCall {
				continue
			}

			callee, ok := e.functions[op.Name]
			if !ok || callee == e.entry {
				return errorf(op.Line, ErrUndefinedFunction, "undefined function %s", op.Name)
			}
			if len(op.Args) != len(callee.Params) {
				return errorf(op.Line, ErrArity, "%s expects %d arguments, got %d",
					op.Name, len(callee.Params), len(op.Args))
			}
		}
	}

	e.global = newFrame(e.entry, 0)
	e.calls.Reset()
	e.calls.Push(e.global)
	e.pc = 0
	e.steps = 0
	e.phase = phaseSealed
	return nil
}

// emit appends op to the function being built
func (e *Executor) emit(op Op) error {
	switch e.phase {
	case phaseBody:
	case phaseSealed:
		return errorf(op.Line, ErrSealed, "cannot add %s to a sealed program", op.Kind)
	default:
		return errorf(op.Line, ErrSetupOrder, "%s before setup is complete", op.Kind)
	}

	e.building.Ops = append(e.building.Ops, op)
	return nil
}

// openLoop reports the first LOOP of f that has no matching END LOOP
func openLoop(f *Function) error {
	for _, op := range f.Ops {
		if op.Kind == OpStartLoop && op.Pair < 0 {
			return errorf(op.Line, ErrLoopNesting, "missing END LOOP in %s", f.Name)
		}
	}

	return nil
}
