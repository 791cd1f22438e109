package vm

import (
	"fmt"
	"strings"
)

type Kind int

// List of instruction kinds
const (
	OpCloak     Kind = iota // raise the pen
	OpMove                  // Args[0] = steps
	OpTurn                  // Args[0] = degrees, clockwise
	OpColor                 // Args = r, g, b
	OpPenWidth              // Args[0] = width
	OpFill                  // flood fill at the pen
	OpDef                   // Name, Args[0] = initial value
	OpAdd                   // Name, Args[0] = increment
	OpStartLoop             // Args[0] = count, Pair = index of END LOOP
	OpEndLoop               // Pair = index of LOOP
	OpCall                  // Name, Args = arguments
)

var kindNames = map[Kind]string{
	OpCloak:     "CLOAK",
	OpMove:      "MOVE",
	OpTurn:      "TURN",
	OpColor:     "COLOR",
	OpPenWidth:  "PENWIDTH",
	OpFill:      "FILL",
	OpDef:       "DEF",
	OpAdd:       "ADD",
	OpStartLoop: "LOOP",
	OpEndLoop:   "END LOOP",
	OpCall:      "CALL",
}

// String returns the source keyword of the kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(k))
}

// Op is a single instruction. Loop markers reference each other by index
// into the owning function's instruction slice.
type Op struct {
	Kind Kind      `cbor:"kind"`
	Line int       `cbor:"line"`
	Name string    `cbor:"name,omitempty"`
	Args []Operand `cbor:"args,omitempty"`
	Pair int       `cbor:"pair,omitempty"`
}

// String returns a source-like rendering of the instruction
func (o Op) String() string {
	args := make([]string, len(o.Args))
	for i, a := range o.Args {
		args[i] = a.String()
	}

	switch o.Kind {
	case OpDef, OpAdd:
		return fmt.Sprintf("%s %s %s", o.Kind, o.Name, strings.Join(args, " "))
	case OpCall:
		return fmt.Sprintf("%s %s(%s)", o.Kind, o.Name, strings.Join(args, ", "))
	case OpStartLoop:
		return fmt.Sprintf("%s %s -> %d", o.Kind, strings.Join(args, " "), o.Pair)
	case OpEndLoop:
		return fmt.Sprintf("%s -> %d", o.Kind, o.Pair)
	}

	if len(args) == 0 {
		return o.Kind.String()
	}
	return o.Kind.String() + " " + strings.Join(args, " ")
}
