// Package demogrammar builds a tiny worked grammar for cmd/lemonrepl: a
// single arithmetic operation of the form "NUM (+|-|*|/) NUM". It plays the
// role that a real grammar compiler's output would, hand-assembled the same
// way the parse package's own test fixtures are, since table generation
// itself is out of scope here.
package demogrammar

import (
	"fmt"
	"strconv"

	"github.com/excursus/citron/lex"
	"github.com/excursus/citron/parse"
)

// Terminal and nonterminal symbol codes for the arithmetic grammar.
const (
	SymEOF   parse.SymbolCode = 0
	SymE     parse.SymbolCode = 1 // E, the (only) nonterminal
	SymNum   parse.SymbolCode = 2
	SymPlus  parse.SymbolCode = 3
	SymMinus parse.SymbolCode = 4
	SymTimes parse.SymbolCode = 5
	SymDiv   parse.SymbolCode = 6
)

// Rule numbers, one per operator.
const (
	RuleAdd parse.RuleNumber = 0
	RuleSub parse.RuleNumber = 1
	RuleMul parse.RuleNumber = 2
	RuleDiv parse.RuleNumber = 3
)

// States: 0 is the start state; 1 follows a NUM; 2-5 follow an operator
// (one per operator). Reducing the rule parked after the second NUM goes
// straight to Accept via the goto on E out of state0 — there is no state
// "after" the reduction to shift into.
const (
	stateStart      parse.StateNumber = 0
	stateAfterNum   parse.StateNumber = 1
	stateAfterPlus  parse.StateNumber = 2
	stateAfterMinus parse.StateNumber = 3
	stateAfterTimes parse.StateNumber = 4
	stateAfterDiv   parse.StateNumber = 5
)

// Tables returns the packed StaticTables for the arithmetic grammar.
func Tables() *parse.StaticTables {
	lookahead := []parse.LookaheadEntry{
		{Expected: SymNum, Action: parse.Shift(stateAfterNum)},       // idx0, off(state0)=-2 -> -2+2
		{Expected: SymPlus, Action: parse.Shift(stateAfterPlus)},     // idx1, off(state1)=-2 -> -2+3
		{Expected: SymMinus, Action: parse.Shift(stateAfterMinus)},   // idx2, -2+4
		{Expected: SymTimes, Action: parse.Shift(stateAfterTimes)},   // idx3, -2+5
		{Expected: SymDiv, Action: parse.Shift(stateAfterDiv)},       // idx4, -2+6
		{Expected: SymNum, Action: parse.ShiftReduceAction(RuleAdd)}, // idx5, off(state2)=3 -> 3+2
		{Expected: SymNum, Action: parse.ShiftReduceAction(RuleSub)}, // idx6, off(state3)=4 -> 4+2
		{Expected: SymNum, Action: parse.ShiftReduceAction(RuleMul)}, // idx7, off(state4)=5 -> 5+2
		{Expected: SymNum, Action: parse.ShiftReduceAction(RuleDiv)}, // idx8, off(state5)=6 -> 6+2
		{Expected: SymE, Action: parse.Accept},                       // idx9, gotoOffset(state0)=8 -> 8+1
	}

	return &parse.StaticTables{
		NSymbols: 7,
		NStates:  6,
		Lookahead: lookahead,
		ShiftOffsets: []int{
			-2, // state0
			-2, // state1
			3,  // state2
			4,  // state3
			5,  // state4
			6,  // state5
		},
		ShiftOffsetMinVal:  -2,
		ShiftOffsetMaxVal:  6,
		ShiftUseDefaultVal: -1000,
		ReduceOffsets: []int{
			8, -9999, -9999, -9999, -9999, -9999,
		},
		ReduceOffsetMinVal:  8,
		ReduceOffsetMaxVal:  8,
		ReduceUseDefaultVal: -9999,
		DefaultActions: []parse.Action{
			parse.Error, parse.Error, parse.Error,
			parse.Error, parse.Error, parse.Error,
		},
		Rules: []parse.RuleInfo{
			{LHS: SymE, RHSCount: 3}, // RuleAdd
			{LHS: SymE, RHSCount: 3}, // RuleSub
			{LHS: SymE, RHSCount: 3}, // RuleMul
			{LHS: SymE, RHSCount: 3}, // RuleDiv
		},
		SymbolNames: []string{"$", "E", "NUM", "+", "-", "*", "/"},
		RuleTexts: []string{
			"E -> NUM + NUM",
			"E -> NUM - NUM",
			"E -> NUM * NUM",
			"E -> NUM / NUM",
		},
	}
}

// Lexer returns the companion lexer: numbers, the four operators, and
// whitespace discarded between them.
func Lexer() *lex.Lexer {
	lx := lex.NewLexer()
	lx.AddRule(lex.MustPattern(`[ \t\r\n]+`, func(string) lex.TokenData { return nil }))
	lx.AddRule(lex.MustPattern(`[0-9]+(\.[0-9]+)?`, func(matched string) lex.TokenData { return matched }))
	lx.AddRule(lex.Literal("+", SymPlus))
	lx.AddRule(lex.Literal("-", SymMinus))
	lx.AddRule(lex.Literal("*", SymTimes))
	lx.AddRule(lex.Literal("/", SymDiv))
	return lx
}

// Token pairs a lexed value with the grammar's SymbolCode for it, the shape
// the driver feeds straight into Parser.Consume.
type Token struct {
	Code  parse.SymbolCode
	Value string
}

// TokenCodeForData maps a lex.TokenData produced by Lexer's rules to its
// grammar SymbolCode. Number literals come back as the matched string
// itself (a rule matched [0-9]+...); operators come back as the SymbolCode
// the literal rule was registered with.
func TokenCodeForData(data lex.TokenData) (parse.SymbolCode, string, bool) {
	switch v := data.(type) {
	case parse.SymbolCode:
		return v, "", true
	case string:
		return SymNum, v, true
	default:
		return 0, "", false
	}
}

// reduction implements parse.ReductionProvider[Token, float64, float64]: it
// parses NUM lexemes to float64 on demand and evaluates the one operator
// rule that fired.
type reduction struct{}

// Reduction is the arithmetic grammar's ReductionProvider.
func Reduction() parse.ReductionProvider[Token, float64, float64] {
	return reduction{}
}

func (reduction) TokenToSymbol(tok Token) float64 {
	if tok.Code != SymNum {
		return 0
	}
	v, err := strconv.ParseFloat(tok.Value, 64)
	if err != nil {
		return 0
	}
	return v
}

func (reduction) InvokeCodeBlockForRule(r parse.RuleNumber, rhs []float64) (float64, error) {
	lhs, rhsVal := rhs[0], rhs[2]
	switch r {
	case RuleAdd:
		return lhs + rhsVal, nil
	case RuleSub:
		return lhs - rhsVal, nil
	case RuleMul:
		return lhs * rhsVal, nil
	case RuleDiv:
		if rhsVal == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return lhs / rhsVal, nil
	default:
		return 0, fmt.Errorf("no reduction for rule %d", r)
	}
}

func (reduction) UnwrapResultFromSymbol(sym float64) float64 { return sym }
