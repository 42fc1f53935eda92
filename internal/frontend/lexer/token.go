package lexer

import "slc/internal/source"

type TokenKind int

const (
	EOF_TOKEN TokenKind = iota
	IDENT_TOKEN
	INT_TOKEN
	FLOAT_TOKEN

	// Keywords
	STRUCT_TOKEN
	UNIFORM_TOKEN
	CONST_TOKEN
	IN_TOKEN
	OUT_TOKEN
	RETURN_TOKEN
	IF_TOKEN
	ELSE_TOKEN
	TRUE_TOKEN
	FALSE_TOKEN

	// Punctuation
	OPEN_PAREN
	CLOSE_PAREN
	OPEN_CURLY
	CLOSE_CURLY
	OPEN_BRACKET
	CLOSE_BRACKET
	COMMA_TOKEN
	SEMICOLON_TOKEN
	DOT_TOKEN

	// Operators
	ASSIGN_TOKEN
	PLUS_TOKEN
	MINUS_TOKEN
	STAR_TOKEN
	SLASH_TOKEN
	NOT_TOKEN
	EQ_TOKEN
	NEQ_TOKEN
	LT_TOKEN
	GT_TOKEN
	LE_TOKEN
	GE_TOKEN
	AND_TOKEN
	OR_TOKEN
)

var keywords = map[string]TokenKind{
	"struct":  STRUCT_TOKEN,
	"uniform": UNIFORM_TOKEN,
	"const":   CONST_TOKEN,
	"in":      IN_TOKEN,
	"out":     OUT_TOKEN,
	"return":  RETURN_TOKEN,
	"if":      IF_TOKEN,
	"else":    ELSE_TOKEN,
	"true":    TRUE_TOKEN,
	"false":   FALSE_TOKEN,
}

// Token is one lexeme with its source span
type Token struct {
	Kind     TokenKind
	Value    string
	Location *source.Location
}

func (k TokenKind) String() string {
	switch k {
	case EOF_TOKEN:
		return "end of file"
	case IDENT_TOKEN:
		return "identifier"
	case INT_TOKEN:
		return "integer literal"
	case FLOAT_TOKEN:
		return "float literal"
	case OPEN_PAREN:
		return "'('"
	case CLOSE_PAREN:
		return "')'"
	case OPEN_CURLY:
		return "'{'"
	case CLOSE_CURLY:
		return "'}'"
	case OPEN_BRACKET:
		return "'['"
	case CLOSE_BRACKET:
		return "']'"
	case COMMA_TOKEN:
		return "','"
	case SEMICOLON_TOKEN:
		return "';'"
	case DOT_TOKEN:
		return "'.'"
	case ASSIGN_TOKEN:
		return "'='"
	default:
		for word, kind := range keywords {
			if kind == k {
				return "'" + word + "'"
			}
		}
		return "operator"
	}
}
