package parser

import (
	"errors"
	"fmt"

	"turtle/pkg/color"
	"turtle/pkg/lexer"
)

// ErrEmptyProgram is returned for a source without a single token
var ErrEmptyProgram = errors.New("the file is empty")

// Error is a syntax error at a source position
type Error struct {
	Pos lexer.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Pretty renders the error for a terminal, with the offending source line
// as context when source is given
func (e *Error) Pretty(source string) string {
	return color.ErrorWithPosition(e.Pos.Line, e.Pos.Column, e.Msg, sourceLine(source, e.Pos.Line))
}

// unexpected reports the current token where expected was required
func (p *Parser) unexpected(expected string) error {
	current := p.currentToken
	return &Error{Pos: current.Pos, Msg: p.categorizeError(expected, current)}
}

// categorizeError provides a specific error message based on expected symbol and current token
func (p *Parser) categorizeError(expected string, current lexer.Token) string {
	switch {
	case current.Type == lexer.EOF:
		return fmt.Sprintf("unexpected end of input, expected %s", expected)
	case current.Type == lexer.ILLEGAL:
		return fmt.Sprintf("illegal character %q", current.Lexeme)
	}

	switch expected {
	case ")":
		return fmt.Sprintf("missing closing parenthesis before %q", current.Lexeme)
	case "(":
		return fmt.Sprintf("missing opening parenthesis before %q", current.Lexeme)
	case "id":
		if current.Type.GetCategory() == lexer.KEYWORD {
			return fmt.Sprintf("cannot use reserved keyword %s as identifier", current.Type)
		}
		return fmt.Sprintf("expected identifier, got %q", current.Lexeme)
	case "num":
		return fmt.Sprintf("expected integer, got %q", current.Lexeme)
	}

	return fmt.Sprintf("unexpected symbol %q (%s), expected %s", current.Lexeme, current.Type, expected)
}

func sourceLine(source string, line int) string {
	if source == "" || line < 1 {
		return ""
	}

	n := 1
	start := 0
	for i := 0; i < len(source); i++ {
		if source[i] != '\n' {
			continue
		}
		if n == line {
			return source[start:i]
		}
		n++
		start = i + 1
	}

	if n == line {
		return source[start:]
	}
	return ""
}
