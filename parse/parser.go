package parse

import (
	"fmt"

	"github.com/excursus/citron/internal/util"
)

// stackEntry is one parse-stack triple: a StateOrRule discriminant, the
// grammar symbol code it was pushed under, and the synthesized/lexed value
// carried for that symbol.
type stackEntry[Symbol any] struct {
	sr    StateOrRule
	code  SymbolCode
	value Symbol
}

// Parser is the LALR(1) table interpreter. It owns its parse stack and
// trace flag exclusively; the Tables it was built with are logically owned
// by the generator-emitted caller and may be shared read-only across
// Parser instances.
type Parser[Token any, Symbol any, Result any] struct {
	tables    Tables
	reduction ReductionProvider[Token, Symbol, Result]

	initial StateNumber
	stack   util.Stack[stackEntry[Symbol]]

	maxStackSize         int // 0 means unlimited
	maxAttainedStackSize int

	trace func(string)
}

// NewParser builds a Parser over tables, using reduction to inject token
// payloads and run reduction actions. The parse stack starts with exactly
// one entry, the bottom sentinel for the grammar's initial state.
func NewParser[Token any, Symbol any, Result any](tables Tables, reduction ReductionProvider[Token, Symbol, Result], initialState StateNumber) *Parser[Token, Symbol, Result] {
	p := &Parser[Token, Symbol, Result]{
		tables:    tables,
		reduction: reduction,
		initial:   initialState,
	}
	p.Reset()
	return p
}

// SetMaxStackSize bounds the parse stack. A value of 0 (the default) means
// no limit is enforced and ErrStackOverflow is never raised.
func (p *Parser[Token, Symbol, Result]) SetMaxStackSize(n int) {
	p.maxStackSize = n
}

// RegisterTraceListener installs fn to receive one line of human-readable
// diagnostic text per shift, reduce, fallback, wildcard substitution, and
// stack mutation. Passing nil disables tracing. Tracing is a pure
// diagnostic side channel: it never affects the parse outcome.
func (p *Parser[Token, Symbol, Result]) RegisterTraceListener(fn func(string)) {
	p.trace = fn
}

// MaxAttainedStackSize returns the high-water mark of stack.Len() over the
// life of the parser (since the last Reset).
func (p *Parser[Token, Symbol, Result]) MaxAttainedStackSize() int {
	return p.maxAttainedStackSize
}

// StackLen returns the current number of entries on the parse stack.
func (p *Parser[Token, Symbol, Result]) StackLen() int {
	return p.stack.Len()
}

// Reset pops all entries but the bottom sentinel, returning the parser to
// the state it was in immediately after construction.
func (p *Parser[Token, Symbol, Result]) Reset() {
	p.stack = util.Stack[stackEntry[Symbol]]{}
	p.stack.Push(stackEntry[Symbol]{sr: State(p.initial)})
	p.maxAttainedStackSize = 1
}

func (p *Parser[Token, Symbol, Result]) notifyTrace(format string, args ...interface{}) {
	if p.trace != nil {
		p.trace(fmt.Sprintf(format, args...))
	}
}

func (p *Parser[Token, Symbol, Result]) push(sr StateOrRule, code SymbolCode, value Symbol) error {
	if p.maxStackSize > 0 && p.stack.Len()+1 > p.maxStackSize {
		return &ErrStackOverflow{MaxStackSize: p.maxStackSize}
	}
	p.stack.Push(stackEntry[Symbol]{sr: sr, code: code, value: value})
	if p.stack.Len() > p.maxAttainedStackSize {
		p.maxAttainedStackSize = p.stack.Len()
	}
	p.notifyTrace("stack.push(): len=%d", p.stack.Len())
	return nil
}

// Consume feeds one terminal into the parser. It repeatedly evaluates
// actions for this lookahead until the token has been shifted (or
// shift-reduced) or an error is raised.
func (p *Parser[Token, Symbol, Result]) Consume(token Token, tokenCode SymbolCode) error {
	for {
		if p.stack.Empty() {
			panic("parse: internal invariant violation: stack empty during Consume")
		}

		act := p.findShiftAction(tokenCode)
		p.notifyTrace("Action for lookahead %s: %s", p.tables.SymbolName(tokenCode), act.String())

		switch act.Type {
		case ActionShift:
			sym := p.reduction.TokenToSymbol(token)
			if err := p.push(State(act.State), tokenCode, sym); err != nil {
				return err
			}
			return nil

		case ActionShiftReduce:
			sym := p.reduction.TokenToSymbol(token)
			if err := p.push(RuleEntry(act.Rule), tokenCode, sym); err != nil {
				return err
			}
			return nil

		case ActionReduce:
			accepted, _, err := p.reduce(act.Rule)
			if err != nil {
				return err
			}
			if accepted {
				panic("parse: internal invariant violation: Accept reached while input remained; Accept may only occur during EndParsing")
			}
			// reductions do not consume input; retry with the same lookahead.

		case ActionError:
			return &SyntaxError[Token]{Token: token, TokenCode: tokenCode}

		default: // ActionAccept
			panic("parse: internal invariant violation: Accept returned for a live lookahead")
		}
	}
}

// EndParsing feeds the synthetic end-of-input lookahead and drives
// reductions until the start symbol is accepted.
func (p *Parser[Token, Symbol, Result]) EndParsing() (Result, error) {
	var zero Result
	for {
		if p.stack.Empty() {
			panic("parse: internal invariant violation: stack empty during EndParsing; state tables are inconsistent")
		}

		act := p.findShiftAction(EndOfInput)
		p.notifyTrace("Action at end of input: %s", act.String())

		switch act.Type {
		case ActionReduce:
			accepted, sym, err := p.reduce(act.Rule)
			if err != nil {
				return zero, err
			}
			if accepted {
				return p.reduction.UnwrapResultFromSymbol(sym), nil
			}
			// keep looping on EndOfInput until Accept fires.

		case ActionError:
			return zero, &ErrUnexpectedEndOfInput{State: p.currentState()}

		default:
			panic(fmt.Sprintf("parse: internal invariant violation: unexpected action %s during EndParsing", act.Type))
		}
	}
}

// CurrentState returns the StateNumber on top of the parse stack and true,
// or zero and false if the top entry is instead a deferred Rule (parked
// there by a ShiftReduce awaiting its reduction).
func (p *Parser[Token, Symbol, Result]) CurrentState() (StateNumber, bool) {
	top := p.stack.Peek()
	if top.sr.IsState() {
		return top.sr.StateValue(), true
	}
	return 0, false
}

func (p *Parser[Token, Symbol, Result]) currentState() StateNumber {
	top := p.stack.Peek()
	if top.sr.IsState() {
		return top.sr.StateValue()
	}
	return 0
}

// findShiftAction implements step 1 of the dispatch core: if the stack top
// already carries a deferred Rule (parked there by a prior ShiftReduce),
// that reduction is returned directly. Otherwise the packed tables are
// consulted for the top state and lookahead.
func (p *Parser[Token, Symbol, Result]) findShiftAction(lookahead SymbolCode) Action {
	top := p.stack.Peek()
	if top.sr.IsRule() {
		return Reduce(top.sr.RuleValue())
	}
	return p.actionForState(top.sr.StateValue(), lookahead)
}

// actionForState implements steps 2-6 of findShiftAction: a direct table
// lookup, falling back to a single-level fallback-symbol retry, then a
// wildcard-symbol retry, then the state's default action.
func (p *Parser[Token, Symbol, Result]) actionForState(s StateNumber, lookahead SymbolCode) Action {
	for {
		off := p.tables.ShiftOffset(s)
		i := off + int(lookahead)

		if off != p.tables.ShiftUseDefault() && i >= 0 && i < p.tables.LookaheadActionLen() {
			entry := p.tables.LookaheadAction(i)
			if entry.Expected == lookahead {
				return entry.Action
			}
		}

		if p.tables.HasFallback() {
			if fb := p.tables.Fallback(lookahead); fb != 0 {
				if p.tables.Fallback(fb) != 0 {
					panic("parse: internal invariant violation: fallback graph deeper than one level")
				}
				p.notifyTrace("fallback: %s -> %s", p.tables.SymbolName(lookahead), p.tables.SymbolName(fb))
				lookahead = fb
				continue
			}
		}

		if w, ok := p.tables.Wildcard(); ok && lookahead > 0 {
			j := i - int(lookahead) + int(w)
			lo, hi, n := p.tables.ShiftOffsetMin()+int(w), p.tables.ShiftOffsetMax()+int(w), p.tables.LookaheadActionLen()
			if j >= 0 && j < n && j >= lo && j <= hi {
				entry := p.tables.LookaheadAction(j)
				if entry.Expected == w {
					p.notifyTrace("wildcard: %s matches %s", p.tables.SymbolName(w), p.tables.SymbolName(lookahead))
					return entry.Action
				}
			}
		}

		return p.tables.DefaultAction(s)
	}
}

// reduce applies rule r: it invokes the generator's reduction code over
// the top RHSCount stack entries, pops exactly that many entries, and
// drives the resulting goto/shift/reduce/accept via performReduceAction.
// accepted is true only when the reduction lands on Accept, in which case
// sym is the final Result-bearing Symbol.
func (p *Parser[Token, Symbol, Result]) reduce(r RuleNumber) (accepted bool, sym Symbol, err error) {
	var zero Symbol
	if int(r) >= p.tables.NumberOfRules() {
		panic("parse: internal invariant violation: rule number out of range (corrupt table)")
	}
	if p.stack.Empty() {
		panic("parse: internal invariant violation: stack empty in reduce")
	}

	info := p.tables.RuleInfo(r)
	p.notifyTrace("reduce: %s", p.tables.RuleText(r))

	rhs := make([]Symbol, info.RHSCount)
	if info.RHSCount > 0 {
		n := p.stack.Len()
		if n < info.RHSCount {
			panic("parse: internal invariant violation: not enough stack entries for rule's right-hand side")
		}
		for i := 0; i < info.RHSCount; i++ {
			rhs[i] = p.stack.Of[n-info.RHSCount+i].value
		}
	}

	result, err := p.reduction.InvokeCodeBlockForRule(r, rhs)
	if err != nil {
		return false, zero, err
	}

	if p.stack.Len() <= info.RHSCount {
		panic("parse: internal invariant violation: reduction would pop the bottom sentinel")
	}
	for i := 0; i < info.RHSCount; i++ {
		p.stack.Pop()
		p.notifyTrace("stack.pop()")
	}

	return p.performReduceAction(result, info.LHS)
}

// performReduceAction consults the goto row for the state now on top of
// the stack (after reduce's pop) and the reduced-to LHS symbol, then
// dispatches the resulting shift, (deferred) reduce, or accept.
func (p *Parser[Token, Symbol, Result]) performReduceAction(result Symbol, lhs SymbolCode) (accepted bool, sym Symbol, err error) {
	var zero Symbol
	top := p.stack.Peek()
	if !top.sr.IsState() {
		panic("parse: internal invariant violation: stack top is not a state after reduce")
	}
	sPrime := top.sr.StateValue()

	if p.tables.ReduceOffset(sPrime) == p.tables.ReduceUseDefault() {
		panic("parse: internal invariant violation: no goto entry for state after reduce (corrupt table)")
	}
	i := p.tables.ReduceOffset(sPrime) + int(lhs)
	if i < 0 || i >= p.tables.LookaheadActionLen() {
		panic("parse: internal invariant violation: goto index out of range (corrupt table)")
	}
	entry := p.tables.LookaheadAction(i)
	if entry.Expected != lhs {
		panic("parse: internal invariant violation: goto table mismatch (corrupt table)")
	}

	switch entry.Action.Type {
	case ActionShift:
		if err := p.push(State(entry.Action.State), lhs, result); err != nil {
			return false, zero, err
		}
		return false, zero, nil
	case ActionReduce:
		if err := p.push(RuleEntry(entry.Action.Rule), lhs, result); err != nil {
			return false, zero, err
		}
		return false, zero, nil
	case ActionAccept:
		return true, result, nil
	default:
		panic("parse: internal invariant violation: impossible goto action after reduce")
	}
}
