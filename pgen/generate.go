package pgen

import (
	"fmt"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/schuko/gconf"

	"github.com/phgn0/parso"
	"github.com/phgn0/parso/bnf"
)

// GenerateGrammar compiles a grammar definition into a Grammar table. The
// namespace resolves the token-category names the grammar uses to the token
// types of the client's scanner.
//
// Errors in the grammar definition are reported as *bnf.SyntaxError,
// *LeftRecursionError or *AmbiguityError.
func GenerateGrammar(source string, ns parso.TokenNamespace) (*Grammar, error) {
	rules, err := bnf.Parse(source)
	if err != nil {
		return nil, err
	}
	return Compile(rules, ns)
}

// Compile builds the Grammar table for rule NFAs coming from a grammar
// front end. The first rule becomes the start nonterminal.
func Compile(rules []bnf.RuleNFA, ns parso.TokenNamespace) (*Grammar, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("grammar contains no rules")
	}
	dump := gconf.GetBool("pgen-dump-automata")
	ruleToDFAs := linkedhashmap.New() // rule name → []*DFAState
	for _, rule := range rules {
		if dump {
			DumpNFA(rule.Start, rule.End)
		}
		dfas := simplifyDFAs(makeDFAs(rule))
		if dump {
			DumpDFAs(dfas)
		}
		ruleToDFAs.Put(rule.Rule(), dfas)
		tracer().Debugf("rule %s: %d DFA states", rule.Rule(), len(dfas))
	}
	reserved := linkedhashmap.New() // literal value → *ReservedString
	if err := classifyArcs(ruleToDFAs, ns, reserved); err != nil {
		return nil, err
	}
	if err := calculateTreeTraversal(ruleToDFAs); err != nil {
		return nil, err
	}
	g := &Grammar{
		start:      rules[0].Rule(),
		ruleToDFAs: ruleToDFAs,
		reserved:   reserved,
	}
	g.fingerprint = fingerprint(g)
	tracer().Infof("compiled grammar: %d rules, start symbol %s", g.RuleCount(), g.start)
	return g, nil
}

// fingerprint hashes the structural identity of a compiled grammar: rule
// inventory, automata sizes and reserved strings.
func fingerprint(g *Grammar) string {
	id := struct {
		Start    string
		Rules    []string
		Sizes    []int
		Reserved []string
	}{Start: g.start}
	g.EachRule(func(rule string, dfas []*DFAState) {
		id.Rules = append(id.Rules, rule)
		id.Sizes = append(id.Sizes, len(dfas))
	})
	g.EachReservedString(func(value string, _ *ReservedString) {
		id.Reserved = append(id.Reserved, value)
	})
	return fmt.Sprintf("%x", structhash.Sha1(id, 1))
}
