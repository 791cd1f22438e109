package lexer

import "fmt"

// Position locates a token in the source. Line and Column are 1-based,
// Offset is the 0-based byte index.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Returns a string representation of the Position
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Before reports whether p comes earlier in the source than q
func (p Position) Before(q Position) bool {
	return p.Offset < q.Offset
}
