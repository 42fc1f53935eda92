package diagnostics

// Diagnostic codes, grouped by the phase that produces them.
const (
	// Lexer
	ErrUnexpectedCharacter = "L0001"
	ErrUnterminatedComment = "L0002"
	ErrInvalidNumber       = "L0003"

	// Parser
	ErrUnexpectedToken   = "P0001"
	ErrExpectedToken     = "P0002"
	ErrMissingIdentifier = "P0003"

	// Semantic analysis
	ErrUnknownIdentifier = "E0001"
	ErrDuplicateSymbol   = "E0002"
	ErrNotAType          = "E0003"
	ErrInvalidArraySize  = "E0004"
)
