/*
Package parso is a parsing-table compiler in the tradition of CPython's pgen.

parso compiles EBNF-style grammar definitions into tables for a pushdown
parser: every grammar rule is translated into an NFA, determinized into a
small DFA, minimized, and annotated with "plans" which tell a table-driven
parser, for each lookahead terminal, which automaton states to push.
Package structure is as follows:

■ bnf: Package bnf reads the grammar definition language and produces one
NFA per grammar rule.

■ pgen: Package pgen turns rule NFAs into minimized DFAs and computes the
transition plans making up a Grammar table.

■ scanner: Package scanner provides input tokenizers, among them one derived
from the literals of a compiled Grammar.

■ pushdown: Package pushdown implements the table-driven parser consuming
Grammar tables.

The base package contains data types which are used throughout all the other
packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–2023 The parso authors

*/
package parso
