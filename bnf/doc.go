/*
Package bnf reads grammar definitions.

The grammar definition language is a BNF dialect with the extended operators
(…|…), […], …* and …+, in the tradition of CPython's pgen. Its meta grammar,
expressed in itself:

    grammar: (NEWLINE | rule)* ENDMARKER
    rule: NAME ':' rhs NEWLINE
    rhs: items ('|' items)*
    items: item+
    item: '[' rhs ']' | atom ['+' | '*']
    atom: '(' rhs ')' | NAME | STRING

Rules are separated by newlines; '#' starts a comment running to the end of
the line, and newlines inside parenthesized or bracketed groups are treated
as plain whitespace. Terminals are either token-category names in capitals
("NAME", "NUMBER", "NEWLINE", …), resolved later against the scanner of the
embedding application, or quoted literals for keywords and operators.

Example:

    file:  (statement NEWLINE)* ENDMARKER
    statement: assignment | expression
    assignment: NAME '=' expression

Parsing a grammar definition yields one NFA per rule:

    rules, err := bnf.Parse(grammarText)
    // rules[i].Rule(), rules[i].Start, rules[i].End

States of these automata are connected by epsilon arcs and by arcs labeled
with a terminal or a rule name, exactly as written in the definition. They
are the input for package pgen, which turns them into deterministic
automata annotated with parse plans.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–2023 The parso authors

*/
package bnf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parso.bnf'.
func tracer() tracing.Trace {
	return tracing.Select("parso.bnf")
}
