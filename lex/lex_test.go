package lex

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Tokenize_literalsAndDiscard(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer()
	lx.AddRule(Pattern_mustWhitespace())
	lx.AddRule(Literal("a", "A"))
	lx.AddRule(Literal("b", "B"))

	var got []string
	err := lx.Tokenize("a  b", func(tok Token) {
		got = append(got, tok.Data.(string))
	}, nil)

	assert.NoError(err)
	assert.Equal([]string{"A", "B"}, got)
}

func Test_Tokenize_noErrorSink_failsImmediately(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer()
	lx.AddRule(Literal("a", "A"))

	err := lx.Tokenize("a?b", func(tok Token) {}, nil)

	assert.Error(err)
	var nme *NoMatchingRuleError
	assert.ErrorAs(err, &nme)
	assert.Equal(1, nme.At.Offset)
}

func Test_Tokenize_errorSkipAggregation(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer()
	lx.AddRule(Literal("a", "A"))
	lx.AddRule(Literal("b", "B"))

	var tokens []string
	var errs []*NoMatchingRuleError

	err := lx.Tokenize("a??b", func(tok Token) {
		tokens = append(tokens, tok.Data.(string))
	}, func(e *NoMatchingRuleError) {
		errs = append(errs, e)
	})

	assert.NoError(err)
	assert.Equal([]string{"A", "B"}, tokens)
	if assert.Len(errs, 1) {
		assert.Equal(1, errs[0].At.Offset)
	}
}

func Test_Tokenize_errorSkipAtEndOfInput(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer()
	lx.AddRule(Literal("a", "A"))

	var errs []*NoMatchingRuleError
	err := lx.Tokenize("a??", func(tok Token) {}, func(e *NoMatchingRuleError) {
		errs = append(errs, e)
	})

	assert.NoError(err)
	assert.Len(errs, 1)
}

func Test_Tokenize_lineTracking(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer()
	lx.AddRule(Pattern_mustWhitespace())
	lx.AddRule(Literal("x", "X"))

	var positions []Position
	err := lx.Tokenize("x\nx\n\nx", func(tok Token) {
		positions = append(positions, tok.Pos)
	}, nil)

	assert.NoError(err)
	if assert.Len(positions, 3) {
		assert.Equal(1, positions[0].Line)
		assert.Equal(2, positions[1].Line)
		assert.Equal(4, positions[2].Line)
	}
}

func Test_Tokenize_regexRuleAnchoredAtCursor(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer()
	numRule, err := Pattern(`[0-9]+`, func(matched string) TokenData {
		return matched
	})
	assert.NoError(err)
	lx.AddRule(numRule)

	var got []string
	tokErr := lx.Tokenize("123", func(tok Token) {
		got = append(got, tok.Data.(string))
	}, nil)

	assert.NoError(tokErr)
	assert.Equal([]string{"123"}, got)
}

func Test_Tokenize_ruleOrderIsPriority(t *testing.T) {
	assert := assert.New(t)

	lx := NewLexer()
	// "if" would also match an identifier pattern; since it is declared
	// first, it must win even though both rules can match at this cursor.
	lx.AddRule(Literal("if", "IF"))
	idRule := MustPattern(`[a-z]+`, func(matched string) TokenData { return "ID:" + matched })
	lx.AddRule(idRule)

	var got []string
	err := lx.Tokenize("if iffy", func(tok Token) {
		got = append(got, tok.Data.(string))
	}, func(e *NoMatchingRuleError) {})

	assert.NoError(err)
	// "if" matches the literal rule at the start of both "if" and "iffy"
	// (rule order is priority, not longest-match), so the literal wins both
	// times and only the trailing "fy" falls through to the identifier
	// pattern. Whitespace has no rule here, so it triggers error-skip;
	// that's fine, we only assert the winning tokens.
	assert.Equal([]string{"IF", "IF", "ID:fy"}, got)
}

func Pattern_mustWhitespace() Rule {
	return MustPattern(`[ \t\n]+`, func(matched string) TokenData { return nil })
}
