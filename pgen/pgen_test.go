package pgen

import (
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/phgn0/parso"
	"github.com/phgn0/parso/bnf"
)

func TestGenerateLinearChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.pgen")
	defer teardown()
	//
	g, err := GenerateGrammar("start: 'a' 'b' NEWLINE\n", parso.StdNamespace{"NEWLINE": 4})
	if err != nil {
		t.Fatal(err)
	}
	if g.RuleCount() != 1 || g.StartNonterminal() != "start" {
		t.Fatalf("expected a single rule start, have %v", g)
	}
	dfas := g.DFAs("start")
	if len(dfas) != 4 {
		t.Fatalf("expected a linear chain of 4 states, have %d", len(dfas))
	}
	for i, st := range dfas {
		if st.IsFinal() != (i == 3) {
			t.Errorf("expected exactly the last state to be final, state %d is %v", i, st.IsFinal())
		}
	}
	rsA, okA := g.ReservedString("a")
	rsB, okB := g.ReservedString("b")
	if !okA || !okB {
		t.Fatalf("expected literals a and b to be interned")
	}
	if _, ok := g.ReservedString("c"); ok {
		t.Errorf("expected no reserved string c")
	}
	if plan, ok := dfas[0].Plan(rsA); !ok || plan.Next != dfas[1] || len(plan.Pushes) != 0 {
		t.Errorf("expected the entry state to step to state 1 on 'a', plan is %v", plan)
	}
	if _, ok := dfas[0].Plan(rsB); ok {
		t.Errorf("expected no plan for 'b' at the entry state")
	}
	if plan, ok := dfas[2].Plan(parso.TokType(4)); !ok || plan.Next != dfas[3] {
		t.Errorf("expected state 2 to step to the final state on NEWLINE, plan is %v", plan)
	}
}

func TestReservedStringInterning(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.pgen")
	defer teardown()
	//
	g, err := GenerateGrammar("a: 'x' b\nb: 'x'\n", parso.StdNamespace{})
	if err != nil {
		t.Fatal(err)
	}
	rs, ok := g.ReservedString("x")
	if !ok {
		t.Fatal("expected literal x to be interned")
	}
	if _, ok := g.DFAs("a")[0].Plan(rs); !ok {
		t.Errorf("expected rule a to transition on the interned instance")
	}
	if _, ok := g.DFAs("b")[0].Plan(rs); !ok {
		t.Errorf("expected rule b to share the interned instance")
	}
	// plans key on identity, a fresh instance with the same value must miss
	if _, ok := g.DFAs("a")[0].Plan(&ReservedString{value: "x"}); ok {
		t.Errorf("expected plan lookup to fail for a non-interned instance")
	}
}

func TestLeftRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.pgen")
	defer teardown()
	//
	_, err := GenerateGrammar("a: a 'x' | 'y'\n", parso.StdNamespace{})
	if err == nil {
		t.Fatal("expected left recursion to be flagged, wasn't")
	}
	lre, ok := err.(*LeftRecursionError)
	if !ok {
		t.Fatalf("expected a *LeftRecursionError, have %T: %v", err, err)
	}
	if lre.Rule != "a" {
		t.Errorf("expected rule a to be flagged, is %s", lre.Rule)
	}
	t.Logf("error message is %q", lre.Error())
}

func TestAmbiguity(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.pgen")
	defer teardown()
	//
	_, err := GenerateGrammar("a: b | c\nb: 'x'\nc: 'x'\n", parso.StdNamespace{})
	if err == nil {
		t.Fatal("expected the ambiguity to be flagged, wasn't")
	}
	ae, ok := err.(*AmbiguityError)
	if !ok {
		t.Fatalf("expected an *AmbiguityError, have %T: %v", err, err)
	}
	if ae.Rule != "a" {
		t.Errorf("expected rule a to be flagged, is %s", ae.Rule)
	}
	if ae.First != "b" || ae.Second != "c" {
		t.Errorf("expected the conflict between b and c, is %s/%s", ae.First, ae.Second)
	}
	if fmt.Sprintf("%v", ae.Transition) != "ReservedString(x)" {
		t.Errorf("expected the conflict on literal x, is %v", ae.Transition)
	}
	if !strings.Contains(ae.Error(), "ambiguous") {
		t.Errorf("unexpected error message %q", ae.Error())
	}
}

func TestPushChain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.pgen")
	defer teardown()
	//
	g, err := GenerateGrammar("stmt: expr NEWLINE\nexpr: NUMBER\n",
		parso.StdNamespace{"NEWLINE": 4, "NUMBER": 2})
	if err != nil {
		t.Fatal(err)
	}
	stmt := g.DFAs("stmt")
	plan, ok := stmt[0].Plan(parso.TokType(2))
	if !ok {
		t.Fatal("expected a NUMBER lookahead to have a plan at the entry of stmt")
	}
	if plan.Next != stmt[1] {
		t.Errorf("expected the plan to advance stmt past expr")
	}
	if len(plan.Pushes) != 1 {
		t.Fatalf("expected a push chain of length 1, have %d", len(plan.Pushes))
	}
	if plan.Pushes[0].FromRule() != "expr" {
		t.Errorf("expected the pushed state to belong to expr, is %s", plan.Pushes[0].FromRule())
	}
	if !plan.Pushes[0].IsFinal() {
		t.Errorf("expected the pushed state to sit after the consumed NUMBER, i.e. final")
	}
}

func TestNonterminalPlanOverridesTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.pgen")
	defer teardown()
	//
	// 'x' begins rule b as well as standing alone in a; the plan descending
	// into b wins
	g, err := GenerateGrammar("a: 'x' | b\nb: 'x' 'y'\n", parso.StdNamespace{})
	if err != nil {
		t.Fatal(err)
	}
	rs, _ := g.ReservedString("x")
	plan, ok := g.DFAs("a")[0].Plan(rs)
	if !ok {
		t.Fatal("expected a plan for literal x at the entry of a")
	}
	if len(plan.Pushes) != 1 || plan.Pushes[0].FromRule() != "b" {
		t.Errorf("expected the plan to descend into b, pushes are %v", plan.Pushes)
	}
}

func TestMinimization(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.pgen")
	defer teardown()
	//
	rules, err := bnf.Parse("a: 'x' 'y' | 'z' 'y'\n")
	if err != nil {
		t.Fatal(err)
	}
	dfas := makeDFAs(rules[0])
	if len(dfas) != 5 {
		t.Errorf("expected the raw subset construction to produce 5 states, has %d", len(dfas))
	}
	entry := dfas[0]
	simplified := simplifyDFAs(dfas)
	if len(simplified) != 3 {
		t.Errorf("expected 3 states after merging, have %d", len(simplified))
	}
	if simplified[0] != entry {
		t.Errorf("expected the entry state to survive at index 0")
	}
	finals := 0
	for _, st := range simplified {
		if st.IsFinal() {
			finals++
		}
	}
	if finals != 1 {
		t.Errorf("expected the two final states to merge into one, have %d", finals)
	}
	arcs := 0
	simplified[0].EachArc(func(string, *DFAState) { arcs++ })
	if arcs != 2 {
		t.Errorf("expected the entry state to keep its two arcs, has %d", arcs)
	}
}

// grammarDump renders a grammar in a canonical textual form, for comparing
// the outcome of repeated compilations.
func grammarDump(g *Grammar) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "start=%s\n", g.StartNonterminal())
	g.EachRule(func(rule string, dfas []*DFAState) {
		fmt.Fprintf(&sb, "rule %s (%d states)\n", rule, len(dfas))
		for i, st := range dfas {
			fmt.Fprintf(&sb, " state %d final=%v\n", i, st.IsFinal())
			st.EachNonterminalArc(func(r string, next *DFAState) {
				fmt.Fprintf(&sb, "  %s -> %d\n", r, stateIndex(dfas, next))
			})
			st.EachPlan(func(tr Transition, plan *DFAPlan) {
				fmt.Fprintf(&sb, "  %v -> %d", tr, stateIndex(dfas, plan.Next))
				for _, p := range plan.Pushes {
					fmt.Fprintf(&sb, " +%s", p.fromRule)
				}
				sb.WriteString("\n")
			})
		}
	})
	g.EachReservedString(func(value string, _ *ReservedString) {
		fmt.Fprintf(&sb, "reserved %q\n", value)
	})
	return sb.String()
}

func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.pgen")
	defer teardown()
	//
	const source = `
file: stmt+ ENDMARKER
stmt: expr NEWLINE
expr: NUMBER [op NUMBER]
op: '+' | '-' | '*'
`
	ns := parso.StdNamespace{"ENDMARKER": 0, "NEWLINE": 1, "NUMBER": 2}
	g1, err := GenerateGrammar(source, ns)
	if err != nil {
		t.Fatal(err)
	}
	g2, err := GenerateGrammar(source, ns)
	if err != nil {
		t.Fatal(err)
	}
	d1, d2 := grammarDump(g1), grammarDump(g2)
	t.Logf("canonical form:\n%s", d1)
	if d1 != d2 {
		t.Errorf("expected repeated compilation to produce identical tables")
	}
	if g1.Fingerprint() != g2.Fingerprint() {
		t.Errorf("expected repeated compilation to produce identical fingerprints")
	}
}

func TestFingerprintSeparates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.pgen")
	defer teardown()
	//
	g1, err := GenerateGrammar("a: 'x'\n", parso.StdNamespace{})
	if err != nil {
		t.Fatal(err)
	}
	g2, err := GenerateGrammar("a: 'y'\n", parso.StdNamespace{})
	if err != nil {
		t.Fatal(err)
	}
	if g1.Fingerprint() == g2.Fingerprint() {
		t.Errorf("expected different grammars to have different fingerprints")
	}
}

func TestDumpAndGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.pgen")
	defer teardown()
	//
	rules, err := bnf.Parse("a: 'x' b*\nb: 'y'\n")
	if err != nil {
		t.Fatal(err)
	}
	DumpNFA(rules[0].Start, rules[0].End)
	g, err := Compile(rules, parso.StdNamespace{})
	if err != nil {
		t.Fatal(err)
	}
	DumpDFAs(g.DFAs("a"))
	dotfile := filepath.Join(t.TempDir(), "a.dot")
	GraphViz(g, dotfile)
	dot, err := ioutil.ReadFile(dotfile)
	if err != nil {
		t.Fatal(err)
	}
	for _, part := range []string{"digraph {", "cluster_0", "doublecircle", "label=\"b\""} {
		if !strings.Contains(string(dot), part) {
			t.Errorf("expected the Graphviz output to contain %q", part)
		}
	}
}

func TestUnknownTokenCategory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.pgen")
	defer teardown()
	//
	_, err := GenerateGrammar("a: FOO\n", parso.StdNamespace{})
	if err == nil {
		t.Fatal("expected the unknown token category to be flagged, wasn't")
	}
	if !strings.Contains(err.Error(), "unknown token category FOO") {
		t.Errorf("unexpected error message %q", err.Error())
	}
}

func TestEmptyGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.pgen")
	defer teardown()
	//
	if _, err := GenerateGrammar("", parso.StdNamespace{}); err == nil {
		t.Errorf("expected an empty grammar definition to be refused")
	}
}

func TestGenerateSyntaxError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.pgen")
	defer teardown()
	//
	_, err := GenerateGrammar("a b\n", parso.StdNamespace{})
	if err == nil {
		t.Fatal("expected the malformed definition to be flagged, wasn't")
	}
	if _, ok := err.(*bnf.SyntaxError); !ok {
		t.Errorf("expected a *bnf.SyntaxError, have %T: %v", err, err)
	}
}
