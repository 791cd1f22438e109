package parser

import (
	"strconv"

	"turtle/pkg/lexer"
	"turtle/pkg/vm"
)

// Parser reads a turtle script token by token and builds the program into
// an Executor through its construction API.
type Parser struct {
	lexer        *lexer.Lexer // lexer instance
	exec         *vm.Executor // program under construction
	currentToken lexer.Token  // current token
}

// NewParser creates a new parser instance
func NewParser(l *lexer.Lexer, e *vm.Executor) *Parser {
	p := &Parser{
		lexer: l,
		exec:  e,
	}

	// Initialize current token
	p.nextToken()

	return p
}

// Parse consumes the whole input and seals the program. It stops at the
// first syntax or construction error.
func (p *Parser) Parse() error {
	if p.currentToken.Type == lexer.EOF {
		return ErrEmptyProgram
	}

	if err := p.header(); err != nil {
		return err
	}

	for p.currentToken.Type != lexer.EOF {
		if err := p.statement(); err != nil {
			return err
		}
	}

	return p.exec.Seal()
}

// header reads the three setup declarations, which must come in order
func (p *Parser) header() error {
	line := p.currentToken.Pos.Line
	if err := p.expect(lexer.AT_SIZE); err != nil {
		return err
	}
	size, err := p.ints(2)
	if err != nil {
		return err
	}
	if err := p.exec.SetSize(size[0], size[1], line); err != nil {
		return err
	}

	line = p.currentToken.Pos.Line
	if err := p.expect(lexer.AT_BACKGROUND); err != nil {
		return err
	}
	rgb, err := p.ints(3)
	if err != nil {
		return err
	}
	if err := p.exec.SetBackground(rgb[0], rgb[1], rgb[2], line); err != nil {
		return err
	}

	line = p.currentToken.Pos.Line
	if err := p.expect(lexer.AT_POSITION); err != nil {
		return err
	}
	pos, err := p.ints(2)
	if err != nil {
		return err
	}
	return p.exec.SetPenPosition(pos[0], pos[1], line)
}

// statement reads one body statement and hands it to the executor
func (p *Parser) statement() error {
	tok := p.currentToken
	line := tok.Pos.Line
	p.nextToken()

	switch tok.Type {
	case lexer.CLOAK:
		return p.exec.Cloak(line)

	case lexer.FILL:
		return p.exec.Fill(line)

	case lexer.MOVE, lexer.TURN, lexer.PENWIDTH, lexer.LOOP:
		arg, err := p.operand()
		if err != nil {
			return err
		}

		switch tok.Type {
		case lexer.MOVE:
			return p.exec.Move(arg, line)
		case lexer.TURN:
			return p.exec.Turn(arg, line)
		case lexer.PENWIDTH:
			return p.exec.SetPenWidth(arg, line)
		default:
			return p.exec.Loop(arg, line)
		}

	case lexer.DEF, lexer.ADD:
		name, err := p.identifier()
		if err != nil {
			return err
		}
		value, err := p.operand()
		if err != nil {
			return err
		}

		if tok.Type == lexer.DEF {
			return p.exec.Def(name, value, line)
		}
		return p.exec.Add(name, value, line)

	case lexer.COLOR:
		var rgb [3]vm.Operand
		for i := range rgb {
			o, err := p.operand()
			if err != nil {
				return err
			}
			rgb[i] = o
		}
		return p.exec.SetPenColor(rgb[0], rgb[1], rgb[2], line)

	case lexer.ENDLOOP:
		return p.exec.EndLoop(line)

	case lexer.FUNC:
		name, err := p.identifier()
		if err != nil {
			return err
		}
		var params []string
		err = p.list(func() error {
			param, err := p.identifier()
			params = append(params, param)
			return err
		})
		if err != nil {
			return err
		}
		return p.exec.StartFuncDef(name, params, line)

	case lexer.ENDFUNC:
		return p.exec.EndFuncDef(line)

	case lexer.CALL:
		name, err := p.identifier()
		if err != nil {
			return err
		}
		var args []vm.Operand
		err = p.list(func() error {
			arg, err := p.operand()
			args = append(args, arg)
			return err
		})
		if err != nil {
			return err
		}
		return p.exec.Call(name, args, line)
	}

	return &Error{Pos: tok.Pos, Msg: p.categorizeError("a statement", tok)}
}

// list reads "( item, ... )", calling item once per element
func (p *Parser) list(item func() error) error {
	if err := p.expect(lexer.LPAREN); err != nil {
		return err
	}
	if p.currentToken.Type == lexer.RPAREN {
		p.nextToken()
		return nil
	}

	for {
		if err := item(); err != nil {
			return err
		}

		if p.currentToken.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}

	return p.expect(lexer.RPAREN)
}

// operand reads an integer literal or a variable reference
func (p *Parser) operand() (vm.Operand, error) {
	switch p.currentToken.Type {
	case lexer.NUM:
		n, err := p.integer()
		return vm.Const(n), err
	case lexer.ID:
		name := p.currentToken.Literal
		p.nextToken()
		return vm.Ref(name), nil
	}

	return vm.Operand{}, p.unexpected("integer or identifier")
}

func (p *Parser) identifier() (string, error) {
	if p.currentToken.Type != lexer.ID {
		return "", p.unexpected("id")
	}

	name := p.currentToken.Literal
	p.nextToken()
	return name, nil
}

func (p *Parser) integer() (int, error) {
	if p.currentToken.Type != lexer.NUM {
		return 0, p.unexpected("num")
	}

	n, err := strconv.Atoi(p.currentToken.Literal)
	if err != nil {
		return 0, &Error{Pos: p.currentToken.Pos, Msg: "integer out of range: " + p.currentToken.Literal}
	}

	p.nextToken()
	return n, nil
}

// ints reads n integer literals
func (p *Parser) ints(n int) ([]int, error) {
	values := make([]int, n)
	for i := range values {
		v, err := p.integer()
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	return values, nil
}

// expect consumes a token of type t
func (p *Parser) expect(t lexer.TokenType) error {
	if p.currentToken.Type != t {
		return p.unexpected(t.String())
	}

	p.nextToken()
	return nil
}

// nextToken advances to the next token from the lexer
func (p *Parser) nextToken() {
	p.currentToken = p.lexer.NextToken()
}
