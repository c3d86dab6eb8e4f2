package parse

import "fmt"

// SyntaxError is raised from Consume when the lookahead token has no valid
// action in the current state.
type SyntaxError[Token any] struct {
	Token     Token
	TokenCode SymbolCode
}

func (e *SyntaxError[Token]) Error() string {
	return fmt.Sprintf("syntax error: unexpected token (code %d): %v", e.TokenCode, e.Token)
}

// ErrUnexpectedEndOfInput is raised from EndParsing when the end-of-input
// lookahead has no valid action in the current state.
type ErrUnexpectedEndOfInput struct {
	State StateNumber
}

func (e *ErrUnexpectedEndOfInput) Error() string {
	return fmt.Sprintf("unexpected end of input in state %d", e.State)
}

// ErrStackOverflow is raised from any push that would exceed MaxStackSize.
type ErrStackOverflow struct {
	MaxStackSize int
}

func (e *ErrStackOverflow) Error() string {
	return fmt.Sprintf("parser stack overflow (limit %d)", e.MaxStackSize)
}
