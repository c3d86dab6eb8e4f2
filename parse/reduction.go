package parse

// ReductionProvider is the generator-supplied collaborator that bridges the
// table-driven interpreter to the emitted grammar's concrete types: it
// injects terminal payloads into the Symbol union, runs the user action
// code for a production, and projects the finished Symbol for the start
// rule into the caller's Result type.
type ReductionProvider[Token any, Symbol any, Result any] interface {
	// TokenToSymbol injects a terminal's payload into the Symbol union.
	TokenToSymbol(tok Token) Symbol

	// InvokeCodeBlockForRule runs the user action code associated with
	// rule r. rhs holds the Symbols of the top RHSCount stack entries,
	// ordered bottom to top (rhs[0] is the leftmost right-hand-side
	// symbol); it returns the synthesized Symbol for the rule's left-hand
	// side. Any error returned propagates unchanged out of
	// Consume/EndParsing.
	InvokeCodeBlockForRule(r RuleNumber, rhs []Symbol) (Symbol, error)

	// UnwrapResultFromSymbol projects the start symbol's synthesized
	// Symbol value into the caller's Result type.
	UnwrapResultFromSymbol(sym Symbol) Result
}
