// Package lex implements the table-driven lexer: an ordered list of
// literal/regex rules applied at the current cursor position, rule order
// being the priority (first match wins, not longest-match-across-rules).
package lex

import "unicode/utf8"

// Lexer holds an ordered rule list, built up with AddRule. The zero value is an empty
// lexer ready to have rules added via AddRule; a Lexer with no rules added
// yet fails to tokenize any non-empty input.
type Lexer struct {
	rules []Rule
}

// NewLexer returns an empty Lexer.
func NewLexer() *Lexer {
	return &Lexer{}
}

// AddRule appends r to the end of the rule list. Rules are tried in the
// order they were added; the first one that matches at the cursor wins.
func (lx *Lexer) AddRule(r Rule) {
	lx.rules = append(lx.rules, r)
}

// OnToken is called once per emitted token during Tokenize.
type OnToken func(Token)

// OnError is called once per aggregated NoMatchingRuleError during
// Tokenize, when an error sink was supplied. See Tokenize for the
// error-skip aggregation semantics.
type OnError func(*NoMatchingRuleError)

// Tokenize scans input from start to end, applying rules in declaration
// order at each cursor position and emitting matched tokens via onToken.
//
// If onError is nil, Tokenize fails immediately on the first unmatched
// position with a NoMatchingRuleError. If onError is non-nil, an unmatched
// run instead enters error-skip mode: the cursor advances one code point
// at a time until some rule matches again (or input ends), at which point
// exactly one NoMatchingRuleError for the whole skipped run — positioned
// at the run's start — is flushed to onError.
func (lx *Lexer) Tokenize(input string, onToken OnToken, onError OnError) error {
	byteCursor := 0
	runeOffset := 0
	line := 1
	col := 1

	errSkipping := false
	var errSkipStart Position

	advance := func(text string) {
		for _, ch := range text {
			runeOffset++
			if ch == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		byteCursor += len(text)
	}

	for byteCursor < len(input) {
		remaining := input[byteCursor:]
		pos := Position{Offset: runeOffset, Line: line, Column: col}

		matched := false
		for _, r := range lx.rules {
			n, data, hasData, ok := r.matchAt(remaining)
			if !ok {
				continue
			}
			matched = true

			if errSkipping {
				if onError != nil {
					onError(&NoMatchingRuleError{At: errSkipStart, Input: input})
				}
				errSkipping = false
			}

			if hasData {
				onToken(Token{Data: data, Pos: pos})
			}

			advance(remaining[:n])
			break
		}

		if matched {
			continue
		}

		if onError == nil {
			return &NoMatchingRuleError{At: pos, Input: input}
		}

		if !errSkipping {
			errSkipping = true
			errSkipStart = pos
		}

		_, size := utf8.DecodeRuneInString(remaining)
		advance(remaining[:size])
	}

	if errSkipping && onError != nil {
		onError(&NoMatchingRuleError{At: errSkipStart, Input: input})
	}

	return nil
}
