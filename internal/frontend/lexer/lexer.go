package lexer

import (
	"slc/internal/diagnostics"
	"slc/internal/source"
)

// Lexer tokenizes one source file. It is created per file and reports
// malformed input through the shared DiagnosticBag; tokenization always
// runs to the end of the input so the parser sees a complete stream.
type Lexer struct {
	filepath    string
	src         string
	pos         int
	line        int
	column      int
	diagnostics *diagnostics.DiagnosticBag
}

// New creates a lexer for a single source file
func New(filepath, src string, diag *diagnostics.DiagnosticBag) *Lexer {
	return &Lexer{
		filepath:    filepath,
		src:         src,
		line:        1,
		column:      1,
		diagnostics: diag,
	}
}

// Tokenize scans the whole input and returns the token stream,
// terminated by an EOF token.
func (l *Lexer) Tokenize() []Token {
	tokens := make([]Token, 0, len(l.src)/4)

	for {
		tok := l.next()
		tokens = append(tokens, tok)
		if tok.Kind == EOF_TOKEN {
			break
		}
	}

	return tokens
}

func (l *Lexer) next() Token {
	l.skipWhitespaceAndComments()

	if l.pos >= len(l.src) {
		return Token{Kind: EOF_TOKEN, Location: l.location(0)}
	}

	c := l.src[l.pos]
	switch {
	case isIdentStart(c):
		return l.scanIdentifier()
	case isDigit(c):
		return l.scanNumber()
	}

	return l.scanOperator()
}

func (l *Lexer) scanIdentifier() Token {
	start := l.pos
	loc := l.location(0)
	for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
		l.advance()
	}
	value := l.src[start:l.pos]
	loc.Length = len(value)

	kind := IDENT_TOKEN
	if kw, ok := keywords[value]; ok {
		kind = kw
	}
	return Token{Kind: kind, Value: value, Location: loc}
}

func (l *Lexer) scanNumber() Token {
	start := l.pos
	loc := l.location(0)
	kind := INT_TOKEN

	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.advance()
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		kind = FLOAT_TOKEN
		l.advance()
		digits := 0
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.advance()
			digits++
		}
		if digits == 0 {
			loc.Length = l.pos - start
			l.diagnostics.Add(diagnostics.InvalidNumberLiteral(l.filepath, loc, "missing digits after decimal point"))
		}
	}

	value := l.src[start:l.pos]
	loc.Length = len(value)
	return Token{Kind: kind, Value: value, Location: loc}
}

func (l *Lexer) scanOperator() Token {
	loc := l.location(1)
	c := l.src[l.pos]
	l.advance()

	single := map[byte]TokenKind{
		'(': OPEN_PAREN,
		')': CLOSE_PAREN,
		'{': OPEN_CURLY,
		'}': CLOSE_CURLY,
		'[': OPEN_BRACKET,
		']': CLOSE_BRACKET,
		',': COMMA_TOKEN,
		';': SEMICOLON_TOKEN,
		'.': DOT_TOKEN,
		'+': PLUS_TOKEN,
		'-': MINUS_TOKEN,
		'*': STAR_TOKEN,
		'/': SLASH_TOKEN,
	}

	switch c {
	case '=':
		if l.match('=') {
			loc.Length = 2
			return Token{Kind: EQ_TOKEN, Value: "==", Location: loc}
		}
		return Token{Kind: ASSIGN_TOKEN, Value: "=", Location: loc}
	case '!':
		if l.match('=') {
			loc.Length = 2
			return Token{Kind: NEQ_TOKEN, Value: "!=", Location: loc}
		}
		return Token{Kind: NOT_TOKEN, Value: "!", Location: loc}
	case '<':
		if l.match('=') {
			loc.Length = 2
			return Token{Kind: LE_TOKEN, Value: "<=", Location: loc}
		}
		return Token{Kind: LT_TOKEN, Value: "<", Location: loc}
	case '>':
		if l.match('=') {
			loc.Length = 2
			return Token{Kind: GE_TOKEN, Value: ">=", Location: loc}
		}
		return Token{Kind: GT_TOKEN, Value: ">", Location: loc}
	case '&':
		if l.match('&') {
			loc.Length = 2
			return Token{Kind: AND_TOKEN, Value: "&&", Location: loc}
		}
	case '|':
		if l.match('|') {
			loc.Length = 2
			return Token{Kind: OR_TOKEN, Value: "||", Location: loc}
		}
	}

	if kind, ok := single[c]; ok {
		return Token{Kind: kind, Value: string(c), Location: loc}
	}

	l.diagnostics.Add(diagnostics.UnexpectedCharacter(l.filepath, loc, rune(c)))
	return l.next()
}

func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance()
			}
		case c == '/' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '*':
			start := l.location(2)
			l.advance()
			l.advance()
			closed := false
			for l.pos+1 < len(l.src) {
				if l.src[l.pos] == '*' && l.src[l.pos+1] == '/' {
					l.advance()
					l.advance()
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				l.pos = len(l.src)
				l.diagnostics.Add(diagnostics.UnterminatedComment(l.filepath, start))
			}
		default:
			return
		}
	}
}

// advance consumes one byte, tracking line and column
func (l *Lexer) advance() {
	if l.src[l.pos] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
}

// match consumes the next byte if it equals expected
func (l *Lexer) match(expected byte) bool {
	if l.pos < len(l.src) && l.src[l.pos] == expected {
		l.advance()
		return true
	}
	return false
}

func (l *Lexer) location(length int) *source.Location {
	return source.New(l.line, l.column, length)
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
