/*
Package pgen compiles grammar rules into pushdown-parser tables.

The construction follows the pgen lineage of parser generators: every
grammar rule contributes a small automaton, and the parser runs these
automata on a stack instead of consulting a monolithic ACTION/GOTO table.

Compiling a Grammar

Input is a grammar definition (see package bnf) together with a token
namespace mapping the token-category names of the grammar to the token
types of the client's scanner:

    ns := parso.StdNamespace{"NAME": 1, "NUMBER": 2, "NEWLINE": 3}
    g, err := pgen.GenerateGrammar(`
        stmt: expr NEWLINE
        expr: NUMBER ('+' NUMBER)*
    `, ns)

Compilation passes, per rule: subset construction turns the rule's NFA into
a DFA, and equivalent DFA states are merged until a fixed point is reached.
Then, globally: every arc is classified as either a nonterminal arc or a
terminal transition, where token categories resolve through the namespace
and quoted literals are decoded and interned as ReservedStrings. Finally
every nonterminal arc is expanded into terminal plans: by computing which
terminals can begin the called rule, each state gets a direct mapping from
lookahead transition to a DFAPlan carrying the chain of states the parser
has to push. A parser thus never resolves a nonterminal at parse time; one
token of lookahead selects the complete plan.

Grammars which the single-lookahead plan model cannot express are rejected
during compilation: left-recursive rules (*LeftRecursionError) and rules
with two alternatives starting with the same terminal (*AmbiguityError).

The resulting Grammar is immutable and safe to share between any number of
parsers. See package pushdown for a parser consuming it.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–2023 The parso authors

*/
package pgen

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parso.pgen'.
func tracer() tracing.Trace {
	return tracing.Select("parso.pgen")
}
