package pgen

import (
	"sort"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// calculateTreeTraversal computes the first plans of every rule and then
// expands every state's nonterminal arcs into terminal plans. After this
// pass a parser selects everything it has to do, including descending into
// called rules, from a single lookahead terminal.
func calculateTreeTraversal(ruleToDFAs *linkedhashmap.Map) error {
	// first plans per rule: Transition → []*DFAState push chain. An entry
	// which is present but nil marks a computation in progress and flags
	// left recursion when it is encountered again.
	firstPlans := make(map[string]*linkedhashmap.Map)
	rules := make([]string, 0, ruleToDFAs.Size())
	for _, key := range ruleToDFAs.Keys() {
		rules = append(rules, key.(string))
	}
	sort.Strings(rules) // deterministic order of error discovery
	for _, rule := range rules {
		if _, done := firstPlans[rule]; !done {
			if _, err := calculateFirstPlans(ruleToDFAs, firstPlans, rule); err != nil {
				return err
			}
		}
	}
	// Now that we know which terminals can begin every nonterminal, turn
	// each nonterminal arc into direct plans on those terminals.
	rit := ruleToDFAs.Iterator()
	for rit.Next() {
		for _, st := range rit.Value().([]*DFAState) {
			nit := st.nonterminalArcs.Iterator()
			for nit.Next() {
				nonterminal, next := nit.Key().(string), nit.Value().(*DFAState)
				pit := firstPlans[nonterminal].Iterator()
				for pit.Next() {
					transition, pushes := pit.Key(), pit.Value().([]*DFAState)
					st.plans.Put(transition, &DFAPlan{Next: next, Pushes: pushes})
				}
			}
		}
	}
	return nil
}

// calculateFirstPlans computes, for one rule, the terminals able to begin
// it, each with the chain of DFA states a parser pushes to reach the
// terminal. A callee's chains are prolonged at the front by the caller's
// continuation state, so chains run from the outermost rule down to the
// state after the consumed terminal. Results are memoized in firstPlans;
// only the entry state of a rule matters here.
func calculateFirstPlans(ruleToDFAs *linkedhashmap.Map,
	firstPlans map[string]*linkedhashmap.Map, rule string) (*linkedhashmap.Map, error) {
	//
	newFirstPlans := linkedhashmap.New() // Transition → []*DFAState
	firstPlans[rule] = nil               // in-progress marker, detects left recursion
	dfas, _ := ruleToDFAs.Get(rule)
	entry := dfas.([]*DFAState)[0]

	nit := entry.nonterminalArcs.Iterator()
	for nit.Next() {
		nonterminal, next := nit.Key().(string), nit.Value().(*DFAState)
		plans, visited := firstPlans[nonterminal]
		if visited {
			if plans == nil {
				return nil, &LeftRecursionError{Rule: rule}
			}
		} else {
			var err error
			plans, err = calculateFirstPlans(ruleToDFAs, firstPlans, nonterminal)
			if err != nil {
				return nil, err
			}
		}
		pit := plans.Iterator()
		for pit.Next() {
			t, pushes := pit.Key(), pit.Value().([]*DFAState)
			if prev, conflict := newFirstPlans.Get(t); conflict {
				chain := prev.([]*DFAState)
				return nil, &AmbiguityError{
					Rule:       rule,
					Transition: t,
					First:      chain[len(chain)-1].fromRule,
					Second:     nonterminal,
				}
			}
			chain := make([]*DFAState, 0, len(pushes)+1)
			chain = append(chain, next)
			chain = append(chain, pushes...)
			newFirstPlans.Put(t, chain)
		}
	}

	// Direct terminal transitions of the entry state come last and win over
	// chains derived from called rules.
	pit := entry.plans.Iterator()
	for pit.Next() {
		newFirstPlans.Put(pit.Key(), []*DFAState{pit.Value().(*DFAPlan).Next})
	}

	firstPlans[rule] = newFirstPlans
	return newFirstPlans, nil
}
