package parser_test

import (
	"errors"
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	pcolor "turtle/pkg/color"
	"turtle/pkg/lexer"
	"turtle/pkg/parser"
	"turtle/pkg/vm"
)

const header = "@SIZE 10 10\n@BACKGROUND 255 255 255\n@POSITION 2 2\n"

func parse(src string) (*vm.Executor, error) {
	e := vm.NewExecutor(vm.WithLogger(log.New(io.Discard)))
	err := parser.NewParser(lexer.NewLexer(src), e).Parse()
	return e, err
}

func TestParseAndRun(t *testing.T) {
	src := header + `
// a 3x3 square outline, drawn through a function
DEF side 3
FUNC square(len)
	LOOP 4
		MOVE len
		TURN -90
	END LOOP
END FUNC

COLOR 255 0 0
CALL square(side)
`

	e, err := parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := e.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}

	red := color.RGBA{R: 255, A: 255}
	for _, p := range [][2]int{{2, 2}, {3, 2}, {4, 2}, {5, 2}, {5, 3}, {5, 4}, {5, 5}, {2, 5}, {2, 3}} {
		if c, _ := e.Canvas().At(p[0], p[1]); c != red {
			t.Errorf("pixel (%d, %d): expected red, got %v", p[0], p[1], c)
		}
	}
	if c, _ := e.Canvas().At(3, 3); c == red {
		t.Error("interior of the square must stay untouched")
	}

	f, ok := e.Function("square")
	if !ok || len(f.Params) != 1 || f.Params[0] != "len" {
		t.Fatalf("unexpected function table entry %+v", f)
	}
	if len(f.Ops) != 4 {
		t.Errorf("expected 4 ops in square, got %d", len(f.Ops))
	}
}

func TestParseEveryStatement(t *testing.T) {
	src := header + `
DEF a -1
ADD a 2
MOVE a
TURN 45
COLOR 1 b 3
CLOAK
PENWIDTH 2
FILL
LOOP a
END LOOP
FUNC f()
END FUNC
FUNC g(x, y)
END FUNC
CALL f()
CALL g(a, -4)
`

	e, err := parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	var listing []string
	for _, op := range e.Entry().Ops {
		listing = append(listing, op.String())
	}

	expected := []string{
		"DEF a -1", "ADD a 2", "MOVE a", "TURN 45", "COLOR 1 b 3", "CLOAK",
		"PENWIDTH 2", "FILL", "LOOP a -> 9", "END LOOP -> 8", "CALL f()", "CALL g(a, -4)",
	}
	if strings.Join(listing, "\n") != strings.Join(expected, "\n") {
		t.Errorf("unexpected program:\n%s", strings.Join(listing, "\n"))
	}

	// statements carry their source line
	if line := e.Entry().Ops[0].Line; line != 5 {
		t.Errorf("expected DEF on line 5, got %d", line)
	}
}

func TestEmptyProgram(t *testing.T) {
	for _, src := range []string{"", "   \n\t", "// only a comment\n"} {
		if _, err := parse(src); !errors.Is(err, parser.ErrEmptyProgram) {
			t.Errorf("%q: expected ErrEmptyProgram, got %v", src, err)
		}
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
		msg  string
	}{
		{"missing size", "@BACKGROUND 0 0 0", 1, "expected @SIZE"},
		{"short size", "@SIZE 10\n@BACKGROUND 0 0 0", 2, "expected integer"},
		{"variable in header", "@SIZE w 10", 1, "expected integer"},
		{"missing operand", header + "MOVE\n", 5, "unexpected end of input"},
		{"bad identifier", header + "DEF 3 4\n", 4, "expected identifier"},
		{"keyword as identifier", header + "DEF MOVE 4\n", 4, "reserved keyword"},
		{"missing comma", header + "FUNC f(a)\nEND FUNC\nCALL f(1 2)\n", 6, "missing closing parenthesis"},
		{"literal parameter", header + "FUNC f(1)\n", 4, "expected identifier"},
		{"missing parenthesis", header + "CALL f\n", 5, "unexpected end of input, expected ("},
		{"short color", header + "COLOR 1 2\n", 5, "unexpected end of input"},
		{"unknown statement", header + "JUMP 3\n", 4, "expected a statement"},
		{"illegal character", header + "MOVE #\n", 4, "illegal character"},
		{"huge integer", header + "MOVE 99999999999999999999999\n", 4, "out of range"},
	}

	for _, test := range tests {
		_, err := parse(test.src)

		var perr *parser.Error
		if !errors.As(err, &perr) {
			t.Errorf("%s: expected *parser.Error, got %v", test.name, err)
			continue
		}
		if perr.Pos.Line != test.line {
			t.Errorf("%s: expected line %d, got %d (%v)", test.name, test.line, perr.Pos.Line, err)
		}
		if !strings.Contains(perr.Msg, test.msg) {
			t.Errorf("%s: expected message containing %q, got %q", test.name, test.msg, perr.Msg)
		}
	}
}

func TestConstructionErrorsPropagate(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected error
	}{
		{"zero size", "@SIZE 0 5\n@BACKGROUND 0 0 0\n@POSITION 0 0\n", vm.ErrSetupOrder},
		{"stray END LOOP", header + "END LOOP\n", vm.ErrLoopNesting},
		{"open LOOP", header + "LOOP 2\nMOVE 1\n", vm.ErrLoopNesting},
		{"negative LOOP", header + "LOOP -2\nEND LOOP\n", vm.ErrNegativeLoop},
		{"open FUNC", header + "FUNC f()\nMOVE 1\n", vm.ErrFunctionDef},
		{"stray END FUNC", header + "END FUNC\n", vm.ErrFunctionDef},
		{"undefined function", header + "CALL nowhere()\n", vm.ErrUndefinedFunction},
		{"arity", header + "FUNC f(a)\nEND FUNC\nCALL f()\n", vm.ErrArity},
	}

	for _, test := range tests {
		if _, err := parse(test.src); !errors.Is(err, test.expected) {
			t.Errorf("%s: expected %v, got %v", test.name, test.expected, err)
		}
	}
}

func TestUnterminatedFunctionMessage(t *testing.T) {
	_, err := parse(header + "FUNC spiral(n)\nMOVE n\n")

	expected := `line 4: end of file in function definition, did you miss "END FUNC" for spiral()?`
	if err == nil || err.Error() != expected {
		t.Errorf("expected %q, got %v", expected, err)
	}
}

func TestPrettyError(t *testing.T) {
	pcolor.EnableColor(false)
	defer pcolor.EnableColor(true)

	src := header + "MOVE )\n"
	_, err := parse(src)

	var perr *parser.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *parser.Error, got %v", err)
	}

	got := perr.Pretty(src)
	if !strings.HasPrefix(got, "Error at 4:6: ") || !strings.HasSuffix(got, "\nMOVE )") {
		t.Errorf("unexpected rendering %q", got)
	}
}
