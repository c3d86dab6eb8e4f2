package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Scenario 1: empty input.
func Test_Parser_emptyInput(t *testing.T) {
	assert := assert.New(t)

	p := NewParser[string, string, string](emptyStartTables(), stringReduction{
		ruleLabel: func(r RuleNumber, rhs []string) string { return "<empty-S>" },
	}, 0)

	result, err := p.EndParsing()

	assert.NoError(err)
	assert.Equal("<empty-S>", result)
	assert.Equal(1, p.StackLen())
	assert.GreaterOrEqual(p.MaxAttainedStackSize(), 1)
}

// Scenario 2: single-token shift/accept.
func Test_Parser_singleTokenShiftAccept(t *testing.T) {
	assert := assert.New(t)

	p := NewParser[string, string, string](singleShiftTables(), stringReduction{}, 0)

	err := p.Consume("a-lexeme", 2)
	assert.NoError(err)

	result, err := p.EndParsing()
	assert.NoError(err)
	assert.Equal("a-lexeme", result)
	assert.Equal(1, p.StackLen())
}

// Scenario 3: ShiftReduce fusion.
func Test_Parser_shiftReduceFusion(t *testing.T) {
	assert := assert.New(t)

	p := NewParser[string, string, string](shiftReduceFusionTables(), stringReduction{}, 0)

	assert.NoError(p.Consume("a", 2))
	assert.NoError(p.Consume("b", 3))

	// the stack now carries a deferred Rule entry on top.
	_, isState := p.CurrentState()
	assert.False(isState, "top of stack should be a deferred Rule after ShiftReduce")

	result, err := p.EndParsing()
	assert.NoError(err)
	assert.Equal("ab", result)
	assert.Equal(1, p.StackLen())
}

// Scenario 4: fallback.
func Test_Parser_fallback(t *testing.T) {
	assert := assert.New(t)

	p := NewParser[string, string, string](fallbackTables(), stringReduction{}, 0)

	var lines []string
	p.RegisterTraceListener(func(s string) { lines = append(lines, s) })

	err := p.Consume("contextual-if", 3) // IF code, falls back to ID (code 2)
	assert.NoError(err)

	st, isState := p.CurrentState()
	assert.True(isState)
	assert.Equal(StateNumber(1), st)

	found := false
	for _, l := range lines {
		if l == "fallback: if -> id" {
			found = true
		}
	}
	assert.True(found, "expected a fallback trace line, got %v", lines)
}

// Scenario 5: syntax error mid-input.
func Test_Parser_syntaxErrorMidInput(t *testing.T) {
	assert := assert.New(t)

	p := NewParser[string, string, string](syntaxErrorTables(), stringReduction{}, 0)

	assert.NoError(p.Consume("a", 2))

	err := p.Consume("c", 4)
	assert.Error(err)

	var synErr *SyntaxError[string]
	assert.ErrorAs(err, &synErr)
	assert.Equal(SymbolCode(4), synErr.TokenCode)
	assert.Equal("c", synErr.Token)
}

// Scenario 6: stack overflow.
func Test_Parser_stackOverflow(t *testing.T) {
	assert := assert.New(t)

	p := NewParser[string, string, string](selfLoopShiftTables(), stringReduction{}, 0)
	p.SetMaxStackSize(4)

	var lastErr error
	for i := 0; i < 5; i++ {
		lastErr = p.Consume("a", 2)
		if lastErr != nil {
			break
		}
	}

	assert.Error(lastErr)
	var overflow *ErrStackOverflow
	assert.ErrorAs(lastErr, &overflow)
	assert.LessOrEqual(p.StackLen(), 4)
}

func Test_Parser_neverOverflowsWithoutLimit(t *testing.T) {
	assert := assert.New(t)

	p := NewParser[string, string, string](selfLoopShiftTables(), stringReduction{}, 0)

	for i := 0; i < 50; i++ {
		assert.NoError(p.Consume("a", 2))
	}
	assert.Equal(51, p.StackLen())
}

func Test_Parser_reset(t *testing.T) {
	assert := assert.New(t)

	p := NewParser[string, string, string](singleShiftTables(), stringReduction{}, 0)

	assert.NoError(p.Consume("a-lexeme", 2))
	r1, err := p.EndParsing()
	assert.NoError(err)

	p.Reset()
	assert.Equal(1, p.StackLen())

	assert.NoError(p.Consume("a-lexeme", 2))
	r2, err := p.EndParsing()
	assert.NoError(err)

	assert.Equal(r1, r2)
}

func Test_Parser_wildcardMatchesUnknownTerminal(t *testing.T) {
	assert := assert.New(t)

	p := NewParser[string, string, string](wildcardTables(), stringReduction{}, 0)

	err := p.Consume("whatever", 7) // not explicitly in the table
	assert.NoError(err)

	st, isState := p.CurrentState()
	assert.True(isState)
	assert.Equal(StateNumber(9), st)
}

func Test_Parser_tracingDoesNotAffectResult(t *testing.T) {
	assert := assert.New(t)

	pTraced := NewParser[string, string, string](shiftReduceFusionTables(), stringReduction{}, 0)
	var lines []string
	pTraced.RegisterTraceListener(func(s string) { lines = append(lines, s) })
	assert.NoError(pTraced.Consume("a", 2))
	assert.NoError(pTraced.Consume("b", 3))
	tracedResult, err := pTraced.EndParsing()
	assert.NoError(err)
	assert.NotEmpty(lines)

	pSilent := NewParser[string, string, string](shiftReduceFusionTables(), stringReduction{}, 0)
	assert.NoError(pSilent.Consume("a", 2))
	assert.NoError(pSilent.Consume("b", 3))
	silentResult, err := pSilent.EndParsing()
	assert.NoError(err)

	assert.Equal(silentResult, tracedResult)
}
