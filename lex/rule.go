package lex

import (
	"fmt"
	"regexp"
	"strings"
)

// TokenData is the caller-defined payload a matched rule produces. A nil
// TokenData (returned from a Handler, or omitted from a literal rule)
// signals "consume but emit nothing" — used for whitespace and comments.
type TokenData any

// Handler computes the TokenData for a regex rule's match. Returning nil
// discards the match without emitting a token.
type Handler func(matched string) TokenData

type ruleKind int

const (
	ruleLiteral ruleKind = iota
	ruleRegex
)

// Rule is one entry of a Lexer's ordered rule list: either a fixed literal
// or a regular expression anchored at the cursor, each producing (or
// suppressing) a token via its associated data/handler.
type Rule struct {
	kind    ruleKind
	literal string
	data    TokenData
	src     string
	pattern *regexp.Regexp
	handler Handler
}

// Literal builds a rule that matches the input suffix beginning at the
// cursor against text exactly. data is nil for a "consume but discard"
// rule (e.g. whitespace).
func Literal(text string, data TokenData) Rule {
	return Rule{kind: ruleLiteral, literal: text, data: data}
}

// Pattern builds a rule that matches expr anchored at the cursor (i.e. the
// match must begin at position zero of the remaining input). handler is
// invoked with the matched text and decides the resulting TokenData;
// returning nil discards the match.
func Pattern(expr string, handler Handler) (Rule, error) {
	// Anchor explicitly: regexp.Regexp.FindStringIndex on a Reader-backed
	// loop would otherwise happily return a match starting anywhere in the
	// remaining input; instead we always match against an anchored `\A`
	// wrapping of expr so a match, if any, is known to start at offset 0.
	anchored, err := regexp.Compile(`\A(?:` + expr + `)`)
	if err != nil {
		return Rule{}, fmt.Errorf("cannot compile regex %q: %w", expr, err)
	}
	return Rule{kind: ruleRegex, src: expr, pattern: anchored, handler: handler}, nil
}

// MustPattern is like Pattern but panics on a malformed regex; suitable
// for rules built from string literals known good at compile time.
func MustPattern(expr string, handler Handler) Rule {
	r, err := Pattern(expr, handler)
	if err != nil {
		panic(err)
	}
	return r
}

// matchAt reports whether the rule matches the remaining input at the
// cursor, and if so returns the matched text's length in bytes and (if
// the rule isn't a discard) its TokenData.
func (r Rule) matchAt(remaining string) (matchedBytes int, data TokenData, hasData bool, matched bool) {
	switch r.kind {
	case ruleLiteral:
		if strings.HasPrefix(remaining, r.literal) {
			return len(r.literal), r.data, r.data != nil, true
		}
		return 0, nil, false, false
	case ruleRegex:
		loc := r.pattern.FindStringIndex(remaining)
		if loc == nil || loc[0] != 0 {
			return 0, nil, false, false
		}
		text := remaining[loc[0]:loc[1]]
		d := r.handler(text)
		return loc[1], d, d != nil, true
	default:
		return 0, nil, false, false
	}
}
