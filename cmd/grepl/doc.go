/*
Package grepl/main provides an interactive command line tool (G.REPL)
for compiled grammars. Users load a grammar definition, or fall back on
a built-in expression grammar, inspect the automata and parse plans the
compiler produced, and parse test input into syntax trees. G.REPL serves
as a sandbox for experiments during grammar development.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–2023 The parso authors

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parso.pgen'
func tracer() tracing.Trace {
	return tracing.Select("parso.pgen")
}
