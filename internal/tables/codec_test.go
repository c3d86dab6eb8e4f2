package tables

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/excursus/citron/parse"
)

func sampleTables() *parse.StaticTables {
	return &parse.StaticTables{
		NSymbols: 4,
		NStates:  2,
		Lookahead: []parse.LookaheadEntry{
			{Expected: 1, Action: parse.Accept},
			{Expected: 2, Action: parse.Shift(1)},
		},
		ShiftOffsets:        []int{0, -1},
		ShiftOffsetMinVal:   0,
		ShiftOffsetMaxVal:   0,
		ShiftUseDefaultVal:  -1,
		ReduceOffsets:       []int{-1, -9999},
		ReduceOffsetMinVal:  -1,
		ReduceOffsetMaxVal:  -1,
		ReduceUseDefaultVal: -9999,
		DefaultActions:      []parse.Action{parse.Error, parse.Reduce(0)},
		FallbackTable:       []parse.SymbolCode{0, 0, 0, 2},
		WildcardCode:        3,
		HasWildcard:         true,
		Rules:               []parse.RuleInfo{{LHS: 1, RHSCount: 1}},
		SymbolNames:         []string{"$", "S", "a", "*"},
		RuleTexts:           []string{"S -> a"},
	}
}

func Test_EncodeDecode_roundTrip(t *testing.T) {
	assert := assert.New(t)

	orig := sampleTables()

	var buf bytes.Buffer
	assert.NoError(Encode(&buf, orig))

	got, err := Decode(&buf)
	assert.NoError(err)

	assert.Equal(orig.NSymbols, got.NumberOfSymbols())
	assert.Equal(orig.NStates, got.NumberOfStates())
	assert.Equal(orig.LookaheadActionLen(), got.LookaheadActionLen())
	for i := 0; i < orig.LookaheadActionLen(); i++ {
		assert.Equal(orig.LookaheadAction(i), got.LookaheadAction(i))
	}
	assert.Equal(orig.ShiftOffset(0), got.ShiftOffset(0))
	assert.Equal(orig.ShiftOffset(1), got.ShiftOffset(1))
	assert.Equal(orig.ReduceOffset(0), got.ReduceOffset(0))
	assert.Equal(orig.DefaultAction(0), got.DefaultAction(0))
	assert.Equal(orig.DefaultAction(1), got.DefaultAction(1))

	fb, ok := got.Wildcard()
	assert.True(ok)
	assert.Equal(orig.WildcardCode, fb)

	assert.True(got.HasFallback())
	assert.Equal(orig.Fallback(3), got.Fallback(3))

	assert.Equal(orig.NumberOfRules(), got.NumberOfRules())
	assert.Equal(orig.RuleInfo(0), got.RuleInfo(0))
	assert.Equal(orig.SymbolName(2), got.SymbolName(2))
	assert.Equal(orig.RuleText(0), got.RuleText(0))
}

func Test_Decode_emptyInputErrors(t *testing.T) {
	assert := assert.New(t)

	_, err := Decode(bytes.NewReader(nil))
	assert.Error(err)
}
