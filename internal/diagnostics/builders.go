package diagnostics

import (
	"fmt"

	"slc/internal/source"
)

// Common diagnostic builders for the lexer

// UnexpectedCharacter creates a diagnostic for an unexpected character
func UnexpectedCharacter(filepath string, loc *source.Location, char rune) *Diagnostic {
	return NewError(fmt.Sprintf("unexpected character %q", char)).
		WithCode(ErrUnexpectedCharacter).
		WithPrimaryLabel(filepath, loc, "unexpected character").
		WithHelp("remove this character or check if it's a typo")
}

// UnterminatedComment creates a diagnostic for an unterminated block comment
func UnterminatedComment(filepath string, loc *source.Location) *Diagnostic {
	return NewError("unterminated block comment").
		WithCode(ErrUnterminatedComment).
		WithPrimaryLabel(filepath, loc, "comment starts here").
		WithHelp("add */ to terminate the comment")
}

// InvalidNumberLiteral creates a diagnostic for an invalid number
func InvalidNumberLiteral(filepath string, loc *source.Location, reason string) *Diagnostic {
	return NewError("invalid number literal").
		WithCode(ErrInvalidNumber).
		WithPrimaryLabel(filepath, loc, reason).
		WithHelp("check the number format")
}

// Common diagnostic builders for the parser

// UnexpectedToken creates a diagnostic for an unexpected token
func UnexpectedToken(filepath string, loc *source.Location, found, expected string) *Diagnostic {
	msg := "unexpected token"
	if expected != "" {
		msg = "expected " + expected + ", found " + found
	}

	return NewError(msg).
		WithCode(ErrUnexpectedToken).
		WithPrimaryLabel(filepath, loc, "unexpected token here")
}

// ExpectedToken creates a diagnostic for a missing expected token
func ExpectedToken(filepath string, loc *source.Location, expected string) *Diagnostic {
	return NewError("expected "+expected).
		WithCode(ErrExpectedToken).
		WithPrimaryLabel(filepath, loc, "expected "+expected+" here")
}

// MissingIdentifier creates a diagnostic for a missing identifier
func MissingIdentifier(filepath string, loc *source.Location) *Diagnostic {
	return NewError("expected identifier").
		WithCode(ErrMissingIdentifier).
		WithPrimaryLabel(filepath, loc, "expected identifier here")
}

// Common diagnostic builders for semantic analysis

// UnknownIdentifier creates a diagnostic for an unresolvable name
func UnknownIdentifier(filepath string, loc *source.Location, name string) *Diagnostic {
	return NewError("unknown identifier '"+name+"'").
		WithCode(ErrUnknownIdentifier).
		WithPrimaryLabel(filepath, loc, "not found in this scope").
		WithHelp("check if the name is declared before it is used")
}

// DuplicateSymbol creates a diagnostic for a redeclared name
func DuplicateSymbol(filepath string, loc *source.Location, name string) *Diagnostic {
	return NewError("symbol '"+name+"' was already defined").
		WithCode(ErrDuplicateSymbol).
		WithPrimaryLabel(filepath, loc, "redeclared here").
		WithHelp("use a different name or remove one of the declarations")
}

// NotAType creates a diagnostic for a name used where a type is required
func NotAType(filepath string, loc *source.Location, name string) *Diagnostic {
	return NewError("'"+name+"' is not a type").
		WithCode(ErrNotAType).
		WithPrimaryLabel(filepath, loc, "expected a type here")
}

// InvalidArraySize creates a diagnostic for a bad array dimension
func InvalidArraySize(filepath string, loc *source.Location, reason string) *Diagnostic {
	return NewError("invalid array size").
		WithCode(ErrInvalidArraySize).
		WithPrimaryLabel(filepath, loc, reason).
		WithHelp("array dimensions must be positive integer literals")
}
