package lexer

import (
	"fmt"
)

type TokenType int
type TokenCategory int

type Token struct {
	Type    TokenType // Type of the token
	Lexeme  string    // Actual string from source code
	Literal string    // Literal value (if applicable), empty string if not
	Pos     Position  // Position in source code
}

// NewToken creates a new Token instance
func NewToken(tokenType TokenType, lexeme string, literal string, Pos Position) Token {
	return Token{
		Type:    tokenType,
		Lexeme:  lexeme,
		Literal: literal,
		Pos:     Pos,
	}
}

const (
	NONE TokenCategory = iota
	DIRECTIVE
	KEYWORD
	IDENTIFIER
	LITERAL
	DELIMITER
)

const (
	EOF TokenType = iota // End of file

	AT_SIZE       // @SIZE
	AT_BACKGROUND // @BACKGROUND
	AT_POSITION   // @POSITION

	DEF      // DEF
	ADD      // ADD
	MOVE     // MOVE
	TURN     // TURN
	COLOR    // COLOR
	CLOAK    // CLOAK
	PENWIDTH // PENWIDTH
	FILL     // FILL
	LOOP     // LOOP
	ENDLOOP  // END LOOP
	FUNC     // FUNC
	ENDFUNC  // END FUNC
	CALL     // CALL

	ID  // id (identifier)
	NUM // num (integer, optionally negative)

	COMMA  // ,
	LPAREN // (
	RPAREN // )

	ILLEGAL // illegal token
)

var Keywords = map[string]TokenType{
	"DEF":      DEF,
	"ADD":      ADD,
	"MOVE":     MOVE,
	"TURN":     TURN,
	"COLOR":    COLOR,
	"CLOAK":    CLOAK,
	"PENWIDTH": PENWIDTH,
	"FILL":     FILL,
	"LOOP":     LOOP,
	"FUNC":     FUNC,
	"CALL":     CALL,
}

var tokenNames = map[TokenType]string{
	AT_SIZE:       "@SIZE",
	AT_BACKGROUND: "@BACKGROUND",
	AT_POSITION:   "@POSITION",
	DEF:           "DEF",
	ADD:           "ADD",
	MOVE:          "MOVE",
	TURN:          "TURN",
	COLOR:         "COLOR",
	CLOAK:         "CLOAK",
	PENWIDTH:      "PENWIDTH",
	FILL:          "FILL",
	LOOP:          "LOOP",
	ENDLOOP:       "END LOOP",
	FUNC:          "FUNC",
	ENDFUNC:       "END FUNC",
	CALL:          "CALL",
	ID:            "id",
	NUM:           "num",
	COMMA:         ",",
	LPAREN:        "(",
	RPAREN:        ")",
	ILLEGAL:       "illegal",
	EOF:           "$",
}

// TokenToString converts a TokenType to its string representation
func (t Token) TokenToString() (string, bool) {
	str, ok := tokenNames[t.Type]
	return str, ok
}

// String returns a string representation of the Token
func (t Token) String() string {
	if t.Literal == "" {

		return fmt.Sprintf("T_{%s, %v, nil, %s}",
			t.Type, t.Lexeme, t.Pos.String())
	}

	return fmt.Sprintf("T_{%s, %v, %q, %s}",
		t.Type, t.Lexeme, t.Literal, t.Pos.String())
}

// String returns a string representation of the TokenType
func (t TokenType) String() string {
	if str, ok := (Token{Type: t}).TokenToString(); ok {
		return str
	}

	return fmt.Sprintf("UNKNOWN(%d)", int(t))
}

// GetCategory returns the category of the token
func (t TokenType) GetCategory() TokenCategory {
	switch t {
	case AT_SIZE, AT_BACKGROUND, AT_POSITION:
		return DIRECTIVE
	case DEF, ADD, MOVE, TURN, COLOR, CLOAK, PENWIDTH, FILL, LOOP, ENDLOOP, FUNC, ENDFUNC, CALL:
		return KEYWORD
	case ID:
		return IDENTIFIER
	case NUM:
		return LITERAL
	case COMMA, LPAREN, RPAREN:
		return DELIMITER
	default:
		return NONE
	}
}

// IsKeyword checks if the given identifier is a keyword and returns its TokenType if it is
func IsKeyword(identifier string) (TokenType, bool) {
	tokenType, ok := Keywords[identifier]
	return tokenType, ok
}
