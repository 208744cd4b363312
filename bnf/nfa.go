package bnf

// NFAState is a state of the non-deterministic automaton built for a single
// grammar rule. States are connected by NFAArcs, either labeled with a
// terminal or a rule name, or unlabeled (epsilon transitions).
//
// The zero automaton model is deliberately minimal: a state knows the rule
// it belongs to and its outgoing arcs, nothing else. Everything an automaton
// consumer needs beyond that (state numbering, closures, finality) is
// derived from the (start, end) pair of a RuleNFA.
type NFAState struct {
	fromRule string
	arcs     []NFAArc
}

// NFAArc is a transition between two NFA states.
type NFAArc struct {
	label string // empty on epsilon transitions
	next  *NFAState
}

// NewNFAState creates an isolated NFA state belonging to the given grammar
// rule.
func NewNFAState(rule string) *NFAState {
	return &NFAState{fromRule: rule}
}

// FromRule returns the name of the grammar rule this state belongs to.
func (s *NFAState) FromRule() string {
	return s.fromRule
}

// Arcs returns the outgoing transitions of s, in the order they have been
// added.
func (s *NFAState) Arcs() []NFAArc {
	return s.arcs
}

// AddArc appends a labeled transition from s to next. The label is either a
// terminal, i.e. a token-category name or a quoted literal as written in the
// grammar definition, or the name of a grammar rule.
func (s *NFAState) AddArc(next *NFAState, label string) {
	s.arcs = append(s.arcs, NFAArc{label: label, next: next})
}

// AddEpsilon appends an unlabeled (epsilon) transition from s to next.
func (s *NFAState) AddEpsilon(next *NFAState) {
	s.arcs = append(s.arcs, NFAArc{next: next})
}

// Label returns the arc's label. It is meaningful for non-epsilon arcs only.
func (a NFAArc) Label() string {
	return a.label
}

// Next returns the state the arc transitions to.
func (a NFAArc) Next() *NFAState {
	return a.next
}

// Epsilon is true for unlabeled transitions.
func (a NFAArc) Epsilon() bool {
	return a.label == ""
}

// RuleNFA is the automaton of a single grammar rule, given by its start and
// end state.
type RuleNFA struct {
	Start *NFAState
	End   *NFAState
}

// Rule returns the name of the grammar rule the automaton belongs to.
func (r RuleNFA) Rule() string {
	return r.Start.FromRule()
}
