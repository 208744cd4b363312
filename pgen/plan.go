package pgen

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/emirpasic/gods/maps/linkedhashmap"

	"github.com/phgn0/parso"
	"github.com/phgn0/parso/bnf"
)

// A Transition is the key a parser uses to select a plan from a DFA state:
// either a parso.TokType for token-category terminals, or a *ReservedString
// for keyword and operator terminals.
type Transition interface{}

// ReservedString is a keyword or operator terminal of a grammar, e.g. "if"
// or "+". Each distinct literal value exists exactly once per Grammar, so a
// transition on it can be stored and looked up by pointer identity; two
// grammar rules using the same literal share the instance.
type ReservedString struct {
	value string
}

// Value returns the literal's text, with quotes stripped and escape
// sequences resolved.
func (r *ReservedString) Value() string {
	return r.value
}

func (r *ReservedString) String() string {
	return fmt.Sprintf("ReservedString(%s)", r.value)
}

// DFAPlan is the parser's complete instruction for one terminal lookahead:
// move the current stack entry to state Next, then push the states of
// Pushes in order. Pushes descends into called rules, outermost rule first;
// the last state is the one after consuming the terminal in the innermost
// rule, so the consumed token always belongs to the final stack top.
type DFAPlan struct {
	Next   *DFAState
	Pushes []*DFAState
}

func (p *DFAPlan) String() string {
	return fmt.Sprintf("plan⟨%v +%d⟩", p.Next, len(p.Pushes))
}

// === Transition classification =============================================

// makeTransition classifies a terminal arc label. A label starting with a
// letter names a token category and resolves through the namespace; every
// other label must be a quoted literal, which is decoded and interned in
// the grammar's reserved-string table.
func makeTransition(ns parso.TokenNamespace, reserved *linkedhashmap.Map,
	label string) (Transition, error) {
	//
	if r, _ := utf8.DecodeRuneInString(label); unicode.IsLetter(r) {
		tt, ok := ns.TokenType(label)
		if !ok {
			return nil, fmt.Errorf("grammar uses unknown token category %s", label)
		}
		return tt, nil
	}
	value, err := bnf.DecodeLiteral(label)
	if err != nil {
		// front ends only ever hand over well-formed labels
		panic(fmt.Sprintf("pgen: bad terminal label %s: %v", label, err))
	}
	if rs, ok := reserved.Get(value); ok {
		return rs.(*ReservedString), nil
	}
	rs := &ReservedString{value: value}
	reserved.Put(value, rs)
	return rs, nil
}

// classifyArcs splits every state's arcs into nonterminal arcs and terminal
// plans. Terminal plans carry no pushes yet; the first-plan pass expands
// nonterminal arcs into plans with push chains afterwards.
func classifyArcs(ruleToDFAs *linkedhashmap.Map, ns parso.TokenNamespace,
	reserved *linkedhashmap.Map) error {
	//
	rit := ruleToDFAs.Iterator()
	for rit.Next() {
		for _, st := range rit.Value().([]*DFAState) {
			ait := st.arcs.Iterator()
			for ait.Next() {
				label, next := ait.Key().(string), ait.Value().(*DFAState)
				if _, isRule := ruleToDFAs.Get(label); isRule {
					st.nonterminalArcs.Put(label, next)
					continue
				}
				transition, err := makeTransition(ns, reserved, label)
				if err != nil {
					return err
				}
				st.plans.Put(transition, &DFAPlan{Next: next})
			}
		}
	}
	return nil
}
