package pgen

import (
	"fmt"
	"os"
	"strings"

	"github.com/phgn0/parso/bnf"
)

// DumpNFA traces the states and arcs of a rule NFA, for debugging grammar
// front ends. States are numbered in discovery order from the start state.
func DumpNFA(start, end *bnf.NFAState) {
	tracer().Debugf("dump of NFA for %s", start.FromRule())
	todo := []*bnf.NFAState{start}
	index := map[*bnf.NFAState]int{start: 0}
	for i := 0; i < len(todo); i++ {
		st := todo[i]
		mark := ""
		if st == end {
			mark = " (final)"
		}
		tracer().Debugf("  state %d%s", i, mark)
		for _, arc := range st.Arcs() {
			next := arc.Next()
			if _, seen := index[next]; !seen {
				index[next] = len(todo)
				todo = append(todo, next)
			}
			if arc.Epsilon() {
				tracer().Debugf("    ε  -> %d", index[next])
			} else {
				tracer().Debugf("    %s -> %d", arc.Label(), index[next])
			}
		}
	}
}

// DumpDFAs traces the states and arcs of a rule's DFA, in the order of
// construction (entry state first).
func DumpDFAs(dfas []*DFAState) {
	if len(dfas) == 0 {
		return
	}
	tracer().Debugf("dump of DFA for %s", dfas[0].fromRule)
	for i, st := range dfas {
		mark := ""
		if st.isFinal {
			mark = " (final)"
		}
		tracer().Debugf("  state %d%s", i, mark)
		st.EachArc(func(label string, next *DFAState) {
			tracer().Debugf("    %s -> %d", label, stateIndex(dfas, next))
		})
	}
}

func stateIndex(dfas []*DFAState, st *DFAState) int {
	for i, d := range dfas {
		if d == st {
			return i
		}
	}
	return -1
}

// GraphViz exports the automata of a grammar to the Graphviz Dot format,
// given a filename. Every rule becomes a cluster of its DFA states, with
// final states drawn as double circles.
func GraphViz(g *Grammar, filename string) {
	f, err := os.Create(filename)
	if err != nil {
		panic(fmt.Sprintf("file open error: %v", err.Error()))
	}
	defer f.Close()
	f.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=circle, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	cluster := 0
	g.EachRule(func(rule string, dfas []*DFAState) {
		fmt.Fprintf(f, "subgraph cluster_%d {\nlabel=\"%s\"\n", cluster, rule)
		cluster++
		for i, st := range dfas {
			shape := "circle"
			if st.isFinal {
				shape = "doublecircle"
			}
			fmt.Fprintf(f, "\"%s.%d\" [label=%d shape=%s]\n", rule, i, i, shape)
		}
		f.WriteString("}\n")
		for i, st := range dfas {
			st.EachArc(func(label string, next *DFAState) {
				fmt.Fprintf(f, "\"%s.%d\" -> \"%s.%d\" [label=\"%s\"]\n",
					rule, i, rule, stateIndex(dfas, next), dotEscape(label))
			})
		}
	})
	f.WriteString("}\n")
}

func dotEscape(label string) string {
	return strings.Replace(label, `"`, `\"`, -1)
}
