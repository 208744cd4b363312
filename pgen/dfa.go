package pgen

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/phgn0/parso/bnf"
)

// === DFA states ============================================================

// DFAState is a state of the deterministic automaton built for a single
// grammar rule. During construction it carries the set of NFA states it was
// built from; a finished Grammar exposes only rule membership, finality,
// arcs and plans.
type DFAState struct {
	fromRule        string
	nfaSet          *treeset.Set       // *bnf.NFAState members; construction only
	isFinal         bool               // reaching this state completes the rule
	arcs            *linkedhashmap.Map // label (string) → *DFAState
	nonterminalArcs *linkedhashmap.Map // rule name (string) → *DFAState
	plans           *linkedhashmap.Map // Transition → *DFAPlan
}

func newDFAState(rule string, nfaSet *treeset.Set, end *bnf.NFAState) *DFAState {
	return &DFAState{
		fromRule:        rule,
		nfaSet:          nfaSet,
		isFinal:         nfaSet.Contains(end),
		arcs:            linkedhashmap.New(),
		nonterminalArcs: linkedhashmap.New(),
		plans:           linkedhashmap.New(),
	}
}

// FromRule returns the name of the grammar rule this state belongs to.
func (d *DFAState) FromRule() string {
	return d.fromRule
}

// IsFinal is true if reaching this state completes the rule.
func (d *DFAState) IsFinal() bool {
	return d.isFinal
}

// Plan returns the parse plan for a terminal transition, if the state has
// one. Transitions on keywords and operators have to be looked up with the
// grammar's interned *ReservedString, not with a fresh one.
func (d *DFAState) Plan(t Transition) (*DFAPlan, bool) {
	if plan, ok := d.plans.Get(t); ok {
		return plan.(*DFAPlan), true
	}
	return nil, false
}

// EachPlan calls mapper for every (transition, plan) entry of the state.
func (d *DFAState) EachPlan(mapper func(t Transition, plan *DFAPlan)) {
	it := d.plans.Iterator()
	for it.Next() {
		mapper(it.Key(), it.Value().(*DFAPlan))
	}
}

// EachArc calls mapper for every labeled arc of the state, terminal and
// nonterminal alike, in insertion order. Labels appear as written in the
// grammar definition.
func (d *DFAState) EachArc(mapper func(label string, next *DFAState)) {
	it := d.arcs.Iterator()
	for it.Next() {
		mapper(it.Key().(string), it.Value().(*DFAState))
	}
}

// EachNonterminalArc calls mapper for every arc labeled with a rule name.
// Nonterminal arcs are filled in during transition classification.
func (d *DFAState) EachNonterminalArc(mapper func(rule string, next *DFAState)) {
	it := d.nonterminalArcs.Iterator()
	for it.Next() {
		mapper(it.Key().(string), it.Value().(*DFAState))
	}
}

func (d *DFAState) addArc(label string, next *DFAState) {
	d.arcs.Put(label, next)
}

func (d *DFAState) String() string {
	final := ""
	if d.isFinal {
		final = " *"
	}
	return fmt.Sprintf("<DFA of %s%s>", d.fromRule, final)
}

// === Subset construction ===================================================

// nfaNumbers assigns small serial numbers to NFA states in discovery order.
// The numbers order the NFA-state sets used during subset construction, so
// that set iteration, and with it DFA-state creation, is deterministic.
type nfaNumbers map[*bnf.NFAState]int

func (num nfaNumbers) register(s *bnf.NFAState) {
	if _, ok := num[s]; !ok {
		num[s] = len(num)
	}
}

// comparator sorts NFA states by their discovery number. States have to be
// registered before they enter any set devised from this comparator.
func (num nfaNumbers) comparator(a, b interface{}) int {
	return utils.IntComparator(num[a.(*bnf.NFAState)], num[b.(*bnf.NFAState)])
}

func (num nfaNumbers) newSet() *treeset.Set {
	return treeset.NewWith(num.comparator)
}

// addClosure adds state and every state reachable from it through epsilon
// arcs to set. States already in the set are not expanded again, which
// terminates cycles of epsilon arcs.
func (num nfaNumbers) addClosure(state *bnf.NFAState, set *treeset.Set) {
	num.register(state)
	if set.Contains(state) {
		return
	}
	set.Add(state)
	for _, arc := range state.Arcs() {
		if arc.Epsilon() {
			num.addClosure(arc.Next(), set)
		}
	}
}

// makeDFAs builds the deterministic automaton for a single grammar rule.
// The first state of the result is the entry state of the rule.
//
// This is the textbook subset construction: each DFA state stands for the
// set of NFA states the rule automaton can be in, and arcs with the same
// label are merged by taking the epsilon closure over the union of their
// target states. A DFA state is final iff its set contains the NFA's end
// state.
func makeDFAs(nfa bnf.RuleNFA) []*DFAState {
	num := make(nfaNumbers)
	base := num.newSet()
	num.addClosure(nfa.Start, base)
	states := []*DFAState{newDFAState(nfa.Rule(), base, nfa.End)}
	for i := 0; i < len(states); i++ { // states grows while we iterate
		st := states[i]
		arcs := linkedhashmap.New() // label → *treeset.Set of NFA states
		for _, member := range st.nfaSet.Values() {
			for _, arc := range member.(*bnf.NFAState).Arcs() {
				if arc.Epsilon() {
					continue
				}
				var set *treeset.Set
				if s, ok := arcs.Get(arc.Label()); ok {
					set = s.(*treeset.Set)
				} else {
					set = num.newSet()
					arcs.Put(arc.Label(), set)
				}
				num.addClosure(arc.Next(), set)
			}
		}
		it := arcs.Iterator()
		for it.Next() {
			label, set := it.Key().(string), it.Value().(*treeset.Set)
			next := findByNFASet(states, set)
			if next == nil {
				next = newDFAState(nfa.Rule(), set, nfa.End)
				states = append(states, next)
			}
			st.addArc(label, next)
		}
	}
	return states
}

// findByNFASet returns the DFA state built from exactly the given set of
// NFA states, if one exists already.
func findByNFASet(states []*DFAState, set *treeset.Set) *DFAState {
	for _, st := range states {
		if sameNFASet(st.nfaSet, set) {
			return st
		}
	}
	return nil
}

func sameNFASet(a, b *treeset.Set) bool {
	if a.Size() != b.Size() {
		return false
	}
	av, bv := a.Values(), b.Values()
	for i := range av {
		if av[i] != bv[i] {
			return false
		}
	}
	return true
}

// === Minimization ==========================================================

// sameAs is the state equivalence used during minimization: equal finality
// and identical arcs, i.e. the same labels transitioning to the identical
// target states. Deeper equivalences surface through repeated scans, when
// earlier merges have collapsed the targets.
func (d *DFAState) sameAs(other *DFAState) bool {
	if d.isFinal != other.isFinal || d.arcs.Size() != other.arcs.Size() {
		return false
	}
	it := d.arcs.Iterator()
	for it.Next() {
		next, ok := other.arcs.Get(it.Key())
		if !ok || next.(*DFAState) != it.Value().(*DFAState) {
			return false
		}
	}
	return true
}

// retarget replaces old by repl in all arcs of d. Collect first, then
// write, to keep the arc table stable while it is being iterated.
func (d *DFAState) retarget(old, repl *DFAState) {
	var labels []string
	it := d.arcs.Iterator()
	for it.Next() {
		if it.Value().(*DFAState) == old {
			labels = append(labels, it.Key().(string))
		}
	}
	for _, label := range labels {
		d.arcs.Put(label, repl)
	}
}

// simplifyDFAs merges equal states until no two states compare equal under
// sameAs. Each merge keeps the earlier state, so the entry state at index 0
// always survives, and restarts the scan, since retargeting may have made
// further states equal. This is not a minimal-DFA algorithm, but reaches a
// fixed point quickly on grammar-sized automata.
func simplifyDFAs(dfas []*DFAState) []*DFAState {
	for changed := true; changed; {
		changed = false
	scan:
		for i, a := range dfas {
			for j := i + 1; j < len(dfas); j++ {
				b := dfas[j]
				if !a.sameAs(b) {
					continue
				}
				dfas = append(dfas[:j], dfas[j+1:]...)
				for _, st := range dfas {
					st.retarget(b, a)
				}
				changed = true
				break scan
			}
		}
	}
	return dfas
}
