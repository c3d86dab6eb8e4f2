package parse

// This file holds small hand-built Tables and a generic ReductionProvider
// stub used across the package's test scenarios, in lieu of a real
// generator: each fixture plays the role of "a trivial grammar supplied by
// a test-only generator stub" called out in the spec's testable
// properties.

// stringReduction is a trivial ReductionProvider over plain strings: a
// token's Symbol is its own lexeme, and reducing a rule concatenates its
// RHS symbols in order (or, when ruleLabel is set, returns its result
// instead), so tests can assert on which children a reduction received.
type stringReduction struct {
	ruleLabel func(r RuleNumber, rhs []string) string
}

func (s stringReduction) TokenToSymbol(tok string) string { return tok }

func (s stringReduction) InvokeCodeBlockForRule(r RuleNumber, rhs []string) (string, error) {
	if s.ruleLabel != nil {
		return s.ruleLabel(r, rhs), nil
	}
	out := ""
	for _, v := range rhs {
		out += v
	}
	return out, nil
}

func (s stringReduction) UnwrapResultFromSymbol(sym string) string { return sym }

// emptyStartTables builds tables for: S -> ε (rule 0), accepting
// immediately at end of input with no tokens consumed.
func emptyStartTables() *StaticTables {
	const sCode SymbolCode = 1
	return &StaticTables{
		NSymbols: 2,
		NStates:  1,
		Lookahead: []LookaheadEntry{
			{Expected: sCode, Action: Accept}, // idx 0
		},
		ShiftOffsets:        []int{-1},
		ShiftOffsetMinVal:   0,
		ShiftOffsetMaxVal:   0,
		ShiftUseDefaultVal:  -1,
		ReduceOffsets:       []int{-1},
		ReduceOffsetMinVal:  0,
		ReduceOffsetMaxVal:  0,
		ReduceUseDefaultVal: -9999,
		DefaultActions:      []Action{Reduce(0)},
		Rules:               []RuleInfo{{LHS: sCode, RHSCount: 0}},
		SymbolNames:         []string{"$", "S"},
		RuleTexts:           []string{"S -> "},
	}
}

// singleShiftTables builds tables for: S -> a (rule 0).
func singleShiftTables() *StaticTables {
	const sCode SymbolCode = 1
	const aCode SymbolCode = 2
	return &StaticTables{
		NSymbols: 3,
		NStates:  2,
		Lookahead: []LookaheadEntry{
			{Expected: sCode, Action: Accept},       // idx 0, reduceOffset[0]=-1 -> -1+1
			{Expected: 0, Action: Error},             // idx 1 (filler)
			{Expected: 0, Action: Error},              // idx 2 (filler)
			{Expected: aCode, Action: Shift(1)},       // idx 3, shiftOffset[0]=1 -> 1+2
		},
		ShiftOffsets:        []int{1, -1},
		ShiftOffsetMinVal:   1,
		ShiftOffsetMaxVal:   1,
		ShiftUseDefaultVal:  -1,
		ReduceOffsets:       []int{-1, -9999},
		ReduceOffsetMinVal:  -1,
		ReduceOffsetMaxVal:  -1,
		ReduceUseDefaultVal: -9999,
		DefaultActions:      []Action{Error, Reduce(0)},
		Rules:               []RuleInfo{{LHS: sCode, RHSCount: 1}},
		SymbolNames:         []string{"$", "S", "a"},
		RuleTexts:           []string{"S -> a"},
	}
}

// shiftReduceFusionTables builds tables for: S -> a b (rule 0), where the
// action on 'b' in the post-'a' state is a fused ShiftReduce.
func shiftReduceFusionTables() *StaticTables {
	const sCode SymbolCode = 1
	const aCode SymbolCode = 2
	const bCode SymbolCode = 3
	return &StaticTables{
		NSymbols: 4,
		NStates:  2,
		Lookahead: []LookaheadEntry{
			{Expected: sCode, Action: Accept},            // idx 0
			{Expected: 0, Action: Error},                  // idx1 filler
			{Expected: 0, Action: Error},                  // idx2 filler
			{Expected: aCode, Action: Shift(1)},           // idx3, shiftOffset[0]=1 -> 1+2
			{Expected: 0, Action: Error},                  // idx4 filler
			{Expected: bCode, Action: ShiftReduceAction(0)}, // idx5, shiftOffset[1]=2 -> 2+3
		},
		ShiftOffsets:        []int{1, 2},
		ShiftOffsetMinVal:   1,
		ShiftOffsetMaxVal:   2,
		ShiftUseDefaultVal:  -1,
		ReduceOffsets:       []int{-1, -9999},
		ReduceOffsetMinVal:  -1,
		ReduceOffsetMaxVal:  -1,
		ReduceUseDefaultVal: -9999,
		DefaultActions:      []Action{Error, Error},
		Rules:               []RuleInfo{{LHS: sCode, RHSCount: 2}},
		SymbolNames:         []string{"$", "S", "a", "b"},
		RuleTexts:           []string{"S -> a b"},
	}
}

// fallbackTables builds a table whose start state's shift row only has an
// entry for ID (code 2); IF (code 3) falls back to ID.
func fallbackTables() *StaticTables {
	const idCode SymbolCode = 2
	const ifCode SymbolCode = 3
	return &StaticTables{
		NSymbols: 4,
		NStates:  2,
		Lookahead: []LookaheadEntry{
			{Expected: 0, Action: Error},
			{Expected: 0, Action: Error},
			{Expected: idCode, Action: Shift(1)}, // idx2, shiftOffset[0]=0 -> 0+2
		},
		ShiftOffsets:        []int{0, -1},
		ShiftOffsetMinVal:   0,
		ShiftOffsetMaxVal:   0,
		ShiftUseDefaultVal:  -1,
		ReduceOffsets:       []int{-9999, -9999},
		ReduceOffsetMinVal:  0,
		ReduceOffsetMaxVal:  0,
		ReduceUseDefaultVal: -9999,
		DefaultActions:      []Action{Error, Error},
		FallbackTable:       []SymbolCode{0, 0, 0, idCode}, // fallback[IF] = ID
		Rules:               []RuleInfo{{LHS: 1, RHSCount: 1}},
		SymbolNames:         []string{"$", "S", "id", "if"},
		RuleTexts:           []string{"S -> id"},
	}
}

// syntaxErrorTables builds tables for: S -> a b (rule 0), with no recovery
// for an unexpected terminal after 'a'.
func syntaxErrorTables() *StaticTables {
	const aCode SymbolCode = 2
	const bCode SymbolCode = 3
	return &StaticTables{
		NSymbols: 5,
		NStates:  2,
		Lookahead: []LookaheadEntry{
			{Expected: aCode, Action: Shift(1)}, // idx0, shiftOffset[0]=-2 -> -2+2=0
		},
		ShiftOffsets:        []int{-2, -1},
		ShiftOffsetMinVal:   -2,
		ShiftOffsetMaxVal:   -2,
		ShiftUseDefaultVal:  -1000,
		ReduceOffsets:       []int{-9999, -9999},
		ReduceOffsetMinVal:  0,
		ReduceOffsetMaxVal:  0,
		ReduceUseDefaultVal: -9999,
		DefaultActions:      []Action{Error, Error},
		Rules:               []RuleInfo{{LHS: 1, RHSCount: 2}},
		SymbolNames:         []string{"$", "S", "a", "b", "c"},
		RuleTexts:           []string{"S -> a b"},
	}
}

// wildcardTables builds a one-state table whose only explicit shift entry
// is for the wildcard symbol itself (code 5); any other terminal falls
// through to it.
func wildcardTables() *StaticTables {
	const wildcard SymbolCode = 5
	lookahead := make([]LookaheadEntry, 6)
	for i := range lookahead {
		lookahead[i] = LookaheadEntry{Expected: 0, Action: Error}
	}
	lookahead[5] = LookaheadEntry{Expected: wildcard, Action: Shift(9)}

	return &StaticTables{
		NSymbols:            8,
		NStates:              1,
		Lookahead:            lookahead,
		ShiftOffsets:         []int{0},
		ShiftOffsetMinVal:    0,
		ShiftOffsetMaxVal:    0,
		ShiftUseDefaultVal:   -1000,
		ReduceOffsets:        []int{-9999},
		ReduceOffsetMinVal:   0,
		ReduceOffsetMaxVal:   0,
		ReduceUseDefaultVal:  -9999,
		DefaultActions:       []Action{Error},
		WildcardCode:         wildcard,
		HasWildcard:          true,
		Rules:                []RuleInfo{{LHS: 1, RHSCount: 1}},
		SymbolNames:          []string{"$", "S", "a", "b", "c", "*", "d", "e"},
		RuleTexts:            []string{"S -> *"},
	}
}

// selfLoopShiftTables builds a two-state table where state 1 shifts 'a'
// back into itself indefinitely; used to exercise MaxStackSize enforcement
// independent of ever reaching Accept.
func selfLoopShiftTables() *StaticTables {
	const aCode SymbolCode = 2
	return &StaticTables{
		NSymbols: 3,
		NStates:  2,
		Lookahead: []LookaheadEntry{
			{Expected: aCode, Action: Shift(1)}, // idx0, shiftOffset[0]=-2 -> -2+2=0
			{Expected: aCode, Action: Shift(1)}, // idx1, shiftOffset[1]=-1 -> -1+2=1
		},
		ShiftOffsets:        []int{-2, -1},
		ShiftOffsetMinVal:   -2,
		ShiftOffsetMaxVal:   -1,
		ShiftUseDefaultVal:  -1000,
		ReduceOffsets:       []int{-9999, -9999},
		ReduceOffsetMinVal:  0,
		ReduceOffsetMaxVal:  0,
		ReduceUseDefaultVal: -9999,
		DefaultActions:      []Action{Error, Error},
		Rules:               []RuleInfo{{LHS: 1, RHSCount: 1}},
		SymbolNames:         []string{"$", "L", "a"},
		RuleTexts:           []string{"L -> a"},
	}
}
