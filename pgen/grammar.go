package pgen

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Grammar is the compiled, immutable form of a grammar: the plan-annotated
// automata of all rules plus the table of reserved strings. A Grammar is
// safe for concurrent use by any number of parsers.
type Grammar struct {
	start       string
	ruleToDFAs  *linkedhashmap.Map // rule name → []*DFAState
	reserved    *linkedhashmap.Map // literal value → *ReservedString
	fingerprint string
}

// StartNonterminal returns the name of the rule parsing starts in, which is
// the first rule of the grammar definition.
func (g *Grammar) StartNonterminal() string {
	return g.start
}

// DFAs returns the DFA states of a rule, entry state first, or nil if the
// grammar has no rule of that name.
func (g *Grammar) DFAs(rule string) []*DFAState {
	if dfas, ok := g.ruleToDFAs.Get(rule); ok {
		return dfas.([]*DFAState)
	}
	return nil
}

// EachRule calls mapper for every rule, in grammar order.
func (g *Grammar) EachRule(mapper func(rule string, dfas []*DFAState)) {
	it := g.ruleToDFAs.Iterator()
	for it.Next() {
		mapper(it.Key().(string), it.Value().([]*DFAState))
	}
}

// RuleCount returns the number of rules.
func (g *Grammar) RuleCount() int {
	return g.ruleToDFAs.Size()
}

// ReservedString returns the grammar's interned instance of a keyword or
// operator literal, e.g. "if" or "+", if the grammar uses it. Parsers have
// to map tokens onto these instances to find transitions, values alone do
// not match.
func (g *Grammar) ReservedString(value string) (*ReservedString, bool) {
	if rs, ok := g.reserved.Get(value); ok {
		return rs.(*ReservedString), true
	}
	return nil, false
}

// EachReservedString calls mapper for every keyword/operator literal of the
// grammar, in the order of interning.
func (g *Grammar) EachReservedString(mapper func(value string, rs *ReservedString)) {
	it := g.reserved.Iterator()
	for it.Next() {
		mapper(it.Key().(string), it.Value().(*ReservedString))
	}
}

// Fingerprint returns a stable content hash over the grammar's rule and
// literal inventory. Embedding applications use it as a cache key when they
// keep compiled grammars around.
func (g *Grammar) Fingerprint() string {
	return g.fingerprint
}

func (g *Grammar) String() string {
	return fmt.Sprintf("grammar⟨start=%s |rules|=%d⟩", g.start, g.RuleCount())
}

// === Errors ================================================================

// LeftRecursionError reports a rule which, possibly through other rules,
// derives itself as its own first symbol. Plans are selected on a single
// lookahead terminal, which cannot express left recursion.
type LeftRecursionError struct {
	Rule string
}

func (e *LeftRecursionError) Error() string {
	return fmt.Sprintf("left recursion for rule %s", e.Rule)
}

// AmbiguityError reports a terminal which can begin two different
// derivations of one rule, leaving a parser with no unique plan for that
// lookahead.
type AmbiguityError struct {
	Rule       string     // the rule with the ambiguous alternatives
	Transition Transition // the terminal both derivations begin with
	First      string     // rule holding the terminal in the earlier derivation
	Second     string     // nonterminal origin of the conflicting derivation
}

func (e *AmbiguityError) Error() string {
	return fmt.Sprintf("rule %s is ambiguous: %v is the start of the rule %s as well as %s",
		e.Rule, e.Transition, e.Second, e.First)
}
