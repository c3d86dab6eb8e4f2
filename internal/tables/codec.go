// Package tables provides a binary encoding for parse.StaticTables, the
// hand-off format a table generator would write to disk for the runtime to
// load. It builds on github.com/dekarrin/rezi, the same binary
// serialization library the teacher codebase uses to persist structured
// state to SQLite BLOB columns.
package tables

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/dekarrin/rezi"
	"github.com/excursus/citron/parse"
)

// wireTables is the on-the-wire shape of parse.StaticTables: a plain
// struct of exported fields so it can implement encoding.BinaryMarshaler
// without reaching into parse's unexported internals.
type wireTables struct {
	NSymbols int
	NStates  int

	LookaheadExpected []uint32
	LookaheadAction   []uint32 // action type; payloads in LookaheadState/LookaheadRule
	LookaheadState    []uint32
	LookaheadRule     []uint32

	ShiftOffsets       []int
	ShiftOffsetMin     int
	ShiftOffsetMax     int
	ShiftUseDefault    int
	ReduceOffsets      []int
	ReduceOffsetMin    int
	ReduceOffsetMax    int
	ReduceUseDefault   int

	DefaultActionType  []uint32
	DefaultActionState []uint32
	DefaultActionRule  []uint32

	FallbackTable []uint32
	WildcardCode  uint32
	HasWildcard   bool

	RuleLHS      []uint32
	RuleRHSCount []int

	SymbolNames []string
	RuleTexts   []string
}

// MarshalBinary implements encoding.BinaryMarshaler using the teacher's
// length-prefixed-varint idiom (see internal/tunascript/binary.go in the
// teacher repo): every slice is preceded by its element count and every
// string by its byte length.
func (w *wireTables) MarshalBinary() ([]byte, error) {
	var buf []byte

	buf = appendInt(buf, w.NSymbols)
	buf = appendInt(buf, w.NStates)

	buf = appendUint32Slice(buf, w.LookaheadExpected)
	buf = appendUint32Slice(buf, w.LookaheadAction)
	buf = appendUint32Slice(buf, w.LookaheadState)
	buf = appendUint32Slice(buf, w.LookaheadRule)

	buf = appendIntSlice(buf, w.ShiftOffsets)
	buf = appendInt(buf, w.ShiftOffsetMin)
	buf = appendInt(buf, w.ShiftOffsetMax)
	buf = appendInt(buf, w.ShiftUseDefault)

	buf = appendIntSlice(buf, w.ReduceOffsets)
	buf = appendInt(buf, w.ReduceOffsetMin)
	buf = appendInt(buf, w.ReduceOffsetMax)
	buf = appendInt(buf, w.ReduceUseDefault)

	buf = appendUint32Slice(buf, w.DefaultActionType)
	buf = appendUint32Slice(buf, w.DefaultActionState)
	buf = appendUint32Slice(buf, w.DefaultActionRule)

	buf = appendUint32Slice(buf, w.FallbackTable)
	buf = appendUint32(buf, w.WildcardCode)
	buf = appendBool(buf, w.HasWildcard)

	buf = appendUint32Slice(buf, w.RuleLHS)
	buf = appendIntSlice(buf, w.RuleRHSCount)

	buf = appendStringSlice(buf, w.SymbolNames)
	buf = appendStringSlice(buf, w.RuleTexts)

	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, the inverse of
// MarshalBinary.
func (w *wireTables) UnmarshalBinary(data []byte) error {
	var err error
	r := data

	if w.NSymbols, r, err = readInt(r); err != nil {
		return fmt.Errorf("reading symbol count: %w", err)
	}
	if w.NStates, r, err = readInt(r); err != nil {
		return fmt.Errorf("reading state count: %w", err)
	}
	if w.LookaheadExpected, r, err = readUint32Slice(r); err != nil {
		return fmt.Errorf("reading lookahead expected codes: %w", err)
	}
	if w.LookaheadAction, r, err = readUint32Slice(r); err != nil {
		return fmt.Errorf("reading lookahead action types: %w", err)
	}
	if w.LookaheadState, r, err = readUint32Slice(r); err != nil {
		return fmt.Errorf("reading lookahead action states: %w", err)
	}
	if w.LookaheadRule, r, err = readUint32Slice(r); err != nil {
		return fmt.Errorf("reading lookahead action rules: %w", err)
	}
	if w.ShiftOffsets, r, err = readIntSlice(r); err != nil {
		return fmt.Errorf("reading shift offsets: %w", err)
	}
	if w.ShiftOffsetMin, r, err = readInt(r); err != nil {
		return err
	}
	if w.ShiftOffsetMax, r, err = readInt(r); err != nil {
		return err
	}
	if w.ShiftUseDefault, r, err = readInt(r); err != nil {
		return err
	}
	if w.ReduceOffsets, r, err = readIntSlice(r); err != nil {
		return fmt.Errorf("reading reduce offsets: %w", err)
	}
	if w.ReduceOffsetMin, r, err = readInt(r); err != nil {
		return err
	}
	if w.ReduceOffsetMax, r, err = readInt(r); err != nil {
		return err
	}
	if w.ReduceUseDefault, r, err = readInt(r); err != nil {
		return err
	}
	if w.DefaultActionType, r, err = readUint32Slice(r); err != nil {
		return fmt.Errorf("reading default action types: %w", err)
	}
	if w.DefaultActionState, r, err = readUint32Slice(r); err != nil {
		return fmt.Errorf("reading default action states: %w", err)
	}
	if w.DefaultActionRule, r, err = readUint32Slice(r); err != nil {
		return fmt.Errorf("reading default action rules: %w", err)
	}
	if w.FallbackTable, r, err = readUint32Slice(r); err != nil {
		return fmt.Errorf("reading fallback table: %w", err)
	}
	if w.WildcardCode, r, err = readUint32(r); err != nil {
		return err
	}
	if w.HasWildcard, r, err = readBool(r); err != nil {
		return err
	}
	if w.RuleLHS, r, err = readUint32Slice(r); err != nil {
		return fmt.Errorf("reading rule LHS codes: %w", err)
	}
	if w.RuleRHSCount, r, err = readIntSlice(r); err != nil {
		return fmt.Errorf("reading rule RHS counts: %w", err)
	}
	if w.SymbolNames, r, err = readStringSlice(r); err != nil {
		return fmt.Errorf("reading symbol names: %w", err)
	}
	if w.RuleTexts, _, err = readStringSlice(r); err != nil {
		return fmt.Errorf("reading rule texts: %w", err)
	}

	return nil
}

// Encode writes t's binary form to w, via rezi's BinaryMarshaler envelope.
func Encode(w io.Writer, t *parse.StaticTables) error {
	wt := toWire(t)
	enc := rezi.EncBinary(wt)
	_, err := w.Write(enc)
	return err
}

// Decode reads a *parse.StaticTables previously written by Encode.
func Decode(r io.Reader) (*parse.StaticTables, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading table data: %w", err)
	}

	var wt wireTables
	if _, err := rezi.DecBinary(data, &wt); err != nil {
		return nil, fmt.Errorf("decoding table data: %w", err)
	}

	return fromWire(&wt), nil
}

func toWire(t *parse.StaticTables) *wireTables {
	w := &wireTables{
		NSymbols:         t.NSymbols,
		NStates:          t.NStates,
		ShiftOffsets:     t.ShiftOffsets,
		ShiftOffsetMin:   t.ShiftOffsetMinVal,
		ShiftOffsetMax:   t.ShiftOffsetMaxVal,
		ShiftUseDefault:  t.ShiftUseDefaultVal,
		ReduceOffsets:    t.ReduceOffsets,
		ReduceOffsetMin:  t.ReduceOffsetMinVal,
		ReduceOffsetMax:  t.ReduceOffsetMaxVal,
		ReduceUseDefault: t.ReduceUseDefaultVal,
		FallbackTable:    make([]uint32, len(t.FallbackTable)),
		WildcardCode:     uint32(t.WildcardCode),
		HasWildcard:      t.HasWildcard,
		RuleRHSCount:     make([]int, len(t.Rules)),
		RuleLHS:          make([]uint32, len(t.Rules)),
		SymbolNames:      t.SymbolNames,
		RuleTexts:        t.RuleTexts,
	}

	for i, fb := range t.FallbackTable {
		w.FallbackTable[i] = uint32(fb)
	}
	for i, ri := range t.Rules {
		w.RuleLHS[i] = uint32(ri.LHS)
		w.RuleRHSCount[i] = ri.RHSCount
	}

	w.LookaheadExpected = make([]uint32, len(t.Lookahead))
	w.LookaheadAction = make([]uint32, len(t.Lookahead))
	w.LookaheadState = make([]uint32, len(t.Lookahead))
	w.LookaheadRule = make([]uint32, len(t.Lookahead))
	for i, entry := range t.Lookahead {
		w.LookaheadExpected[i] = uint32(entry.Expected)
		w.LookaheadAction[i] = uint32(entry.Action.Type)
		w.LookaheadState[i] = uint32(entry.Action.State)
		w.LookaheadRule[i] = uint32(entry.Action.Rule)
	}

	w.DefaultActionType = make([]uint32, len(t.DefaultActions))
	w.DefaultActionState = make([]uint32, len(t.DefaultActions))
	w.DefaultActionRule = make([]uint32, len(t.DefaultActions))
	for i, a := range t.DefaultActions {
		w.DefaultActionType[i] = uint32(a.Type)
		w.DefaultActionState[i] = uint32(a.State)
		w.DefaultActionRule[i] = uint32(a.Rule)
	}

	return w
}

func fromWire(w *wireTables) *parse.StaticTables {
	t := &parse.StaticTables{
		NSymbols:            w.NSymbols,
		NStates:             w.NStates,
		ShiftOffsets:        w.ShiftOffsets,
		ShiftOffsetMinVal:   w.ShiftOffsetMin,
		ShiftOffsetMaxVal:   w.ShiftOffsetMax,
		ShiftUseDefaultVal:  w.ShiftUseDefault,
		ReduceOffsets:       w.ReduceOffsets,
		ReduceOffsetMinVal:  w.ReduceOffsetMin,
		ReduceOffsetMaxVal:  w.ReduceOffsetMax,
		ReduceUseDefaultVal: w.ReduceUseDefault,
		WildcardCode:        parse.SymbolCode(w.WildcardCode),
		HasWildcard:         w.HasWildcard,
		SymbolNames:         w.SymbolNames,
		RuleTexts:           w.RuleTexts,
	}

	t.FallbackTable = make([]parse.SymbolCode, len(w.FallbackTable))
	for i, fb := range w.FallbackTable {
		t.FallbackTable[i] = parse.SymbolCode(fb)
	}

	t.Rules = make([]parse.RuleInfo, len(w.RuleLHS))
	for i := range t.Rules {
		t.Rules[i] = parse.RuleInfo{LHS: parse.SymbolCode(w.RuleLHS[i]), RHSCount: w.RuleRHSCount[i]}
	}

	t.Lookahead = make([]parse.LookaheadEntry, len(w.LookaheadExpected))
	for i := range t.Lookahead {
		t.Lookahead[i] = parse.LookaheadEntry{
			Expected: parse.SymbolCode(w.LookaheadExpected[i]),
			Action: parse.Action{
				Type:  parse.ActionType(w.LookaheadAction[i]),
				State: parse.StateNumber(w.LookaheadState[i]),
				Rule:  parse.RuleNumber(w.LookaheadRule[i]),
			},
		}
	}

	t.DefaultActions = make([]parse.Action, len(w.DefaultActionType))
	for i := range t.DefaultActions {
		t.DefaultActions[i] = parse.Action{
			Type:  parse.ActionType(w.DefaultActionType[i]),
			State: parse.StateNumber(w.DefaultActionState[i]),
			Rule:  parse.RuleNumber(w.DefaultActionRule[i]),
		}
	}

	return t
}

func appendInt(buf []byte, i int) []byte {
	return binary.AppendVarint(buf, int64(i))
}

func appendUint32(buf []byte, v uint32) []byte {
	return binary.AppendUvarint(buf, uint64(v))
}

func appendBool(buf []byte, b bool) []byte {
	if b {
		return append(buf, 1)
	}
	return append(buf, 0)
}

func appendIntSlice(buf []byte, s []int) []byte {
	buf = appendInt(buf, len(s))
	for _, v := range s {
		buf = appendInt(buf, v)
	}
	return buf
}

func appendUint32Slice(buf []byte, s []uint32) []byte {
	buf = appendInt(buf, len(s))
	for _, v := range s {
		buf = appendUint32(buf, v)
	}
	return buf
}

func appendStringSlice(buf []byte, s []string) []byte {
	buf = appendInt(buf, len(s))
	for _, v := range s {
		buf = appendInt(buf, len(v))
		buf = append(buf, v...)
	}
	return buf
}

func readInt(data []byte) (int, []byte, error) {
	v, n := binary.Varint(data)
	if n <= 0 {
		return 0, nil, fmt.Errorf("unexpected end of data reading int")
	}
	return int(v), data[n:], nil
}

func readUint32(data []byte) (uint32, []byte, error) {
	v, n := binary.Uvarint(data)
	if n <= 0 {
		return 0, nil, fmt.Errorf("unexpected end of data reading uint32")
	}
	return uint32(v), data[n:], nil
}

func readBool(data []byte) (bool, []byte, error) {
	if len(data) < 1 {
		return false, nil, fmt.Errorf("unexpected end of data reading bool")
	}
	return data[0] == 1, data[1:], nil
}

func readIntSlice(data []byte) ([]int, []byte, error) {
	count, rest, err := readInt(data)
	if err != nil {
		return nil, nil, err
	}
	out := make([]int, count)
	for i := 0; i < count; i++ {
		var v int
		if v, rest, err = readInt(rest); err != nil {
			return nil, nil, err
		}
		out[i] = v
	}
	return out, rest, nil
}

func readUint32Slice(data []byte) ([]uint32, []byte, error) {
	count, rest, err := readInt(data)
	if err != nil {
		return nil, nil, err
	}
	out := make([]uint32, count)
	for i := 0; i < count; i++ {
		var v uint32
		if v, rest, err = readUint32(rest); err != nil {
			return nil, nil, err
		}
		out[i] = v
	}
	return out, rest, nil
}

func readStringSlice(data []byte) ([]string, []byte, error) {
	count, rest, err := readInt(data)
	if err != nil {
		return nil, nil, err
	}
	out := make([]string, count)
	for i := 0; i < count; i++ {
		var strLen int
		if strLen, rest, err = readInt(rest); err != nil {
			return nil, nil, err
		}
		if len(rest) < strLen {
			return nil, nil, fmt.Errorf("unexpected end of data reading string")
		}
		out[i] = string(rest[:strLen])
		rest = rest[strLen:]
	}
	return out, rest, nil
}
