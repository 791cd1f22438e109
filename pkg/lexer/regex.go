package lexer

import (
	"regexp"
)

// Token regex patterns
var tokenRegexes = map[TokenType]*regexp.Regexp{
	AT_SIZE:       regexp.MustCompile(`^@SIZE\b`),
	AT_BACKGROUND: regexp.MustCompile(`^@BACKGROUND\b`),
	AT_POSITION:   regexp.MustCompile(`^@POSITION\b`),

	ENDLOOP:  regexp.MustCompile(`^END[ \t]+LOOP\b`),
	ENDFUNC:  regexp.MustCompile(`^END[ \t]+FUNC\b`),
	PENWIDTH: regexp.MustCompile(`^PENWIDTH\b`),
	COLOR:    regexp.MustCompile(`^COLOR\b`),
	CLOAK:    regexp.MustCompile(`^CLOAK\b`),
	MOVE:     regexp.MustCompile(`^MOVE\b`),
	TURN:     regexp.MustCompile(`^TURN\b`),
	FILL:     regexp.MustCompile(`^FILL\b`),
	LOOP:     regexp.MustCompile(`^LOOP\b`),
	FUNC:     regexp.MustCompile(`^FUNC\b`),
	CALL:     regexp.MustCompile(`^CALL\b`),
	DEF:      regexp.MustCompile(`^DEF\b`),
	ADD:      regexp.MustCompile(`^ADD\b`),

	COMMA:  regexp.MustCompile(`^,`),
	LPAREN: regexp.MustCompile(`^\(`),
	RPAREN: regexp.MustCompile(`^\)`),

	NUM: regexp.MustCompile(`^-?\d+\b`),
	ID:  regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`),
}

var (
	whitespaceRegex = regexp.MustCompile(`^\s+`)
	commentRegex    = regexp.MustCompile(`^//[^\n]*`)
)

// Token precedence order for matching (longer patterns first)
var tokenPrecedenceOrder = []TokenType{
	AT_BACKGROUND, AT_POSITION, AT_SIZE,
	ENDLOOP, ENDFUNC, PENWIDTH, COLOR, CLOAK, MOVE, TURN, FILL, LOOP, FUNC, CALL, DEF, ADD,
	COMMA, LPAREN, RPAREN, NUM, ID,
}

// Match the first token at the start of the string. Whitespace and comments
// are reported as EOF with a non-empty lexeme so the caller can skip them.
func MatchToken(s string) (TokenType, string, bool) {
	if s == "" {
		return EOF, "", false
	} else if match := whitespaceRegex.FindString(s); match != "" {
		return EOF, match, true
	} else if match := commentRegex.FindString(s); match != "" {
		return EOF, match, true
	}

	for _, tokenType := range tokenPrecedenceOrder {
		if regex, ok := tokenRegexes[tokenType]; ok {
			if match := regex.FindString(s); match != "" {
				return tokenType, match, true
			}
		}
	}

	return ILLEGAL, string(s[0]), false
}
