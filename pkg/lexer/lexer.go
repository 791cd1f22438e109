package lexer

type Lexer struct {
	input    string // input string to be tokenized
	length   int    // length of the input string
	position int    // current position in the input string
	line     int    // current line number for error reporting
	column   int    // current column number for error reporting
}

// Create a new lexer instance
func NewLexer(s string) *Lexer {
	return &Lexer{
		input:    s,
		length:   len(s),
		position: 0,
		line:     1,
		column:   1,
	}
}

// Get the next token from the input
func (l *Lexer) NextToken() Token {
	for {
		// End of input
		if l.position >= l.length {
			return NewToken(EOF, "", "", l.currentPosition())
		}

		// Regex match the first token it sees from the remaining input from current position to the end
		remaining := l.input[l.position:]
		tokenType, lexeme, matched := MatchToken(remaining)

		if matched && tokenType == EOF {
			// whitespace or comment
			l.advance(len(lexeme))
			continue
		}

		pos := l.currentPosition()
		if !matched {
			l.advance(1)
			return NewToken(ILLEGAL, lexeme, "", pos)
		}

		var literal string
		switch tokenType {
		case NUM, ID:
			literal = lexeme
		}

		l.advance(len(lexeme))
		return NewToken(tokenType, lexeme, literal, pos)
	}
}

// View next token without advancing the position
func (l *Lexer) Peek() Token {
	// save state
	cpos := l.position
	cline := l.line
	ccol := l.column

	token := l.NextToken()

	// restore state
	l.position = cpos
	l.line = cline
	l.column = ccol

	return token
}

// Tokenize drains the lexer, returning every token up to and including EOF
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			return tokens
		}
	}
}

// Advance the lexer position by n characters
func (l *Lexer) advance(n int) {
	for range n {
		if l.position >= l.length {
			break
		}

		if l.input[l.position] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}

		l.position++
	}
}

// Get the current position of the lexer
func (l *Lexer) currentPosition() Position {
	return Position{
		Line:   l.line,
		Column: l.column,
		Offset: l.position,
	}
}
