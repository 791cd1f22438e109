package vm

import (
	"image/color"
	"math"
)

// exec runs one instruction of frame's function and advances the program
// counter
func (e *Executor) exec(frame *StackFrame, op *Op) error {
	pc := e.pc
	e.log.Debug("Exec", "fn", frame.Function.Name, "pc", pc, "op", op.String())

	switch op.Kind {
	case OpCloak:
		e.raised = true
		e.pc = pc + 1

	case OpMove:
		e.move(e.resolve(op.Args[0], op.Line))
		e.pc = pc + 1

	case OpTurn:
		e.turn(e.resolve(op.Args[0], op.Line))
		e.pc = pc + 1

	case OpColor:
		e.pen = color.RGBA{
			R: uint8(e.resolve(op.Args[0], op.Line)),
			G: uint8(e.resolve(op.Args[1], op.Line)),
			B: uint8(e.resolve(op.Args[2], op.Line)),
			A: 0xff,
		}
		e.raised = false
		e.pc = pc + 1

	case OpPenWidth:
		e.width = e.resolve(op.Args[0], op.Line)
		e.pc = pc + 1

	case OpFill:
		n := e.canvas.FloodFill(int(e.x), int(e.y), e.pen)
		e.log.Debug("Fill", "pixels", n)
		e.pc = pc + 1

	case OpDef:
		if e.Lookup(op.Name) != nil {
			return errorf(op.Line, ErrRedefined, "Variable %s is already defined", op.Name)
		}
		frame.Locals[op.Name] = &Variable{Name: op.Name, Value: e.resolve(op.Args[0], op.Line)}
		e.pc = pc + 1

	case OpAdd:
		// adding to an unknown variable is deliberately a no-op
		if v := e.Lookup(op.Name); v != nil {
			v.Value += e.resolve(op.Args[0], op.Line)
		}
		e.pc = pc + 1

	case OpStartLoop:
		n := e.resolve(op.Args[0], op.Line)
		switch {
		case n < 0:
			return errorf(op.Line, ErrNegativeLoop, "loop value should be non-negative, got %d", n)
		case n == 0:
			e.pc = op.Pair + 1
		default:
			frame.loops[pc] = n - 1
			e.pc = pc + 1
		}

	case OpEndLoop:
		start := op.Pair
		if frame.loops[start] > 0 {
			frame.loops[start]--
			e.pc = start + 1
		} else {
			delete(frame.loops, start)
			e.pc = pc + 1
		}

	case OpCall:
		callee, ok := e.functions[op.Name]
		if !ok || callee == e.entry {
			return errorf(op.Line, ErrUndefinedFunction, "undefined function %s", op.Name)
		}
		if len(op.Args) != len(callee.Params) {
			return errorf(op.Line, ErrArity, "%s expects %d arguments, got %d", op.Name, len(callee.Params), len(op.Args))
		}

		next := newFrame(callee, pc)
		for i, param := range callee.Params {
			next.Locals[param] = &Variable{Name: param, Value: e.resolve(op.Args[i], op.Line)}
		}

		e.calls.Push(next)
		e.pc = 0
		e.log.Debug("Execute", "fn", callee.Name, "depth", e.calls.Size())

	default:
		return errorf(op.Line, nil, "unknown instruction %s", op.Kind)
	}

	return nil
}

// move advances the pen l units along the heading, painting one pixel per
// unit unless the pen is raised. Negative l goes backward.
func (e *Executor) move(l int) {
	dx, dy := unitVector(e.heading)

	if e.raised {
		e.x += float64(l) * dx
		e.y += float64(l) * dy
		return
	}

	if l < 0 {
		// -math.MinInt overflows
		l, dx, dy = -max(l, -math.MaxInt), -dx, -dy
	}

	sx, sy := e.x, e.y
	for range l {
		if e.beyondCanvas(dx, dy) {
			e.x, e.y = sx+float64(l)*dx, sy+float64(l)*dy
			return
		}

		e.DrawPixel(int(e.x), int(e.y))
		e.x += dx
		e.y += dy
	}
}

// beyondCanvas reports whether the brush has left the canvas and moving
// along (dx, dy) can never bring it back
func (e *Executor) beyondCanvas(dx, dy float64) bool {
	size := max(e.width, 1)
	lo := -(size - 1) / 2
	hi := lo + size

	x, y := int(e.x), int(e.y)
	w, h := e.canvas.Width(), e.canvas.Height()

	return (x+hi <= 0 && dx <= 0) || (x+lo >= w && dx >= 0) ||
		(y+hi <= 0 && dy <= 0) || (y+lo >= h && dy >= 0)
}

// turn rotates the heading clockwise by d degrees
func (e *Executor) turn(d int) {
	e.heading = ((e.heading-d)%360 + 360) % 360
}

// unitVector returns (cos, sin) of the heading with rounding noise on the
// axes removed, so axis-aligned moves stay on integer coordinates
func unitVector(degrees int) (float64, float64) {
	const eps = 1e-12

	rad := float64(degrees) * math.Pi / 180.0
	dx, dy := math.Cos(rad), math.Sin(rad)
	if math.Abs(dx) < eps {
		dx = 0
	}
	if math.Abs(dy) < eps {
		dy = 0
	}

	return dx, dy
}
