package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/timtadh/lexmachine"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/phgn0/parso"
	"github.com/phgn0/parso/pgen"
	"github.com/phgn0/parso/pushdown"
	"github.com/phgn0/parso/scanner"
	"github.com/phgn0/parso/scanner/lexmach"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–2023 The parso authors

*/

// We provide a simple expression grammar as a default for parsing
// experiments.
//
//  expr:   term (('+' | '-') term)*
//  term:   factor (('*' | '/') factor)*
//  factor: NUMBER | '(' expr ')'
//
const exprGrammar = `
expr: term (('+' | '-') term)*
term: factor (('*' | '/') factor)*
factor: NUMBER | '(' expr ')'
`

// demoNamespace binds the token-category names grammars may use to the
// token types produced by the scanner set up in initTokens.
var demoNamespace = parso.StdNamespace{
	"NUMBER": scanner.Int,
	"NAME":   scanner.Ident,
	"STRING": scanner.String,
}

// Token types for the keyword and operator tokens of the scanner, chosen
// below the predefined scanner types to be collision-free.
const (
	opToken  parso.TokType = -9
	keyToken parso.TokType = -10
)

// initTokens adds the token-category patterns for the scanner; the keyword
// and operator literals of the grammar are added by the adapter.
func initTokens(lexer *lexmachine.Lexer) {
	lexer.Add([]byte(`[0-9]+`), lexmach.MakeToken("NUMBER", int(scanner.Int)))
	lexer.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*`), lexmach.MakeToken("NAME", int(scanner.Ident)))
	lexer.Add([]byte(`"[^"]*"`), lexmach.MakeToken("STRING", int(scanner.String)))
	lexer.Add([]byte(`( |\t)+`), lexmach.Skip)
}

func makeExprGrammar() *pgen.Grammar {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelError)
	g, err := pgen.GenerateGrammar(exprGrammar, demoNamespace)
	if err != nil {
		panic(fmt.Errorf("error creating grammar: %s", err.Error()))
	}
	tracer().SetTraceLevel(level)
	return g
}

// loadGrammar compiles either the given grammar definition file or, without
// a filename, the built-in demo expression grammar.
func loadGrammar(filename string) (*pgen.Grammar, error) {
	if filename == "" {
		return makeExprGrammar(), nil
	}
	source, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("unable to open grammar file: %s", filename)
	}
	return pgen.GenerateGrammar(string(source), demoNamespace)
}

// main() starts an interactive CLI ("G.REPL"), where users may inspect a
// compiled grammar and parse test input against it. G.REPL is intended as a
// sandbox for experiments during the early phase of grammar development:
// check a grammar for left recursion and ambiguity, look at the automata
// the compiler builds, and watch which syntax trees inputs produce.
//
// Please refer to packages "pgen" and "pushdown".
//
func main() {
	// set up logging
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	gfile := flag.String("grammar", "", "Grammar definition file to load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelInfo) // will set the correct level later
	pterm.Info.Println("Welcome to GREPL")    // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up the grammar to experiment with
	g, err := loadGrammar(*gfile)
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(2)
	}
	tracer().SetTraceLevel(traceLevel(*tlevel)) // now set the user supplied level
	tracer().Infof("Grammar is %v, fingerprint %s", g, g.Fingerprint())
	adapter, err := lexmach.NewLMAdapter(initTokens, g, opToken, keyToken)
	if err != nil {
		tracer().Errorf("%v", err)
		os.Exit(2)
	}
	input := strings.Join(flag.Args(), " ")
	input = strings.TrimSpace(input)
	tracer().Infof("Input argument is \"%s\"", input)
	//
	// set up REPL
	repl, err := readline.New("grepl> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{
		lastInput: input,
		grammar:   g,
		adapter:   adapter,
		repl:      repl,
	}
	if input != "" {
		if err := intp.parse(input); err != nil {
			tracer().Errorf("%v", err)
			os.Exit(2)
		}
	}
	//
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                         // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	lastInput string
	grammar   *pgen.Grammar
	adapter   *lexmach.LMAdapter
	repl      *readline.Instance
	tree      *pushdown.Node
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Execute(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	println("Good bye!")
}

// Execute dispatches a REPL command. Lines not starting with a command
// keyword are parsed with the current grammar.
func (intp *Intp) Execute(line string) (bool, error) {
	args := strings.Split(line, " ")
	switch args[0] {
	case "quit", "exit":
		return true, nil
	case "help":
		printHelp()
		return false, nil
	case "rules":
		intp.listRules()
		return false, nil
	case "dump":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: dump <rule>")
		}
		return false, intp.dumpRule(args[1])
	case "viz":
		if len(args) != 2 {
			return false, fmt.Errorf("usage: viz <dotfile>")
		}
		pgen.GraphViz(intp.grammar, args[1])
		pterm.Info.Println("Graphviz output written to " + args[1])
		return false, nil
	case "parse":
		return false, intp.parse(strings.TrimSpace(strings.TrimPrefix(line, "parse")))
	}
	return false, intp.parse(line)
}

func printHelp() {
	pterm.Println("Commands:")
	pterm.Println("  rules            list the rules of the grammar")
	pterm.Println("  dump <rule>      show states and plans of a rule")
	pterm.Println("  viz <dotfile>    export the automata in Graphviz format")
	pterm.Println("  parse <input>    parse input and display the syntax tree")
	pterm.Println("  quit             leave")
	pterm.Println("Any other line is parsed with the current grammar.")
}

// listRules prints the rule inventory of the grammar.
func (intp *Intp) listRules() {
	start := intp.grammar.StartNonterminal()
	intp.grammar.EachRule(func(rule string, dfas []*pgen.DFAState) {
		marker := " "
		if rule == start {
			marker = "*"
		}
		pterm.Printf("%s %-20s %d states\n", marker, rule, len(dfas))
	})
}

// dumpRule prints the states, arcs and plans of one rule of the grammar.
func (intp *Intp) dumpRule(rule string) error {
	dfas := intp.grammar.DFAs(rule)
	if dfas == nil {
		return fmt.Errorf("grammar has no rule %s", rule)
	}
	for i, st := range dfas {
		final := ""
		if st.IsFinal() {
			final = " (final)"
		}
		pterm.Printf("state %d%s\n", i, final)
		st.EachNonterminalArc(func(r string, next *pgen.DFAState) {
			pterm.Printf("   %-24s -> %d\n", r, dfaIndex(dfas, next))
		})
		st.EachPlan(func(t pgen.Transition, plan *pgen.DFAPlan) {
			pushes := ""
			for _, p := range plan.Pushes {
				pushes += " +" + p.FromRule()
			}
			pterm.Printf("   %-24v -> %d%s\n", t, dfaIndex(dfas, plan.Next), pushes)
		})
	}
	return nil
}

func dfaIndex(dfas []*pgen.DFAState, st *pgen.DFAState) int {
	for i, d := range dfas {
		if d == st {
			return i
		}
	}
	return -1
}

// parse scans and parses input with the current grammar and renders the
// resulting syntax tree on the terminal.
func (intp *Intp) parse(input string) error {
	if input == "" {
		return fmt.Errorf("empty input")
	}
	intp.lastInput = input
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelError)
	scan, err := intp.adapter.Scanner(input)
	if err != nil {
		return err
	}
	parser := pushdown.NewParser(intp.grammar)
	tree, err := parser.Parse(scan)
	tracer().SetTraceLevel(level)
	if err != nil {
		return err
	}
	tracer().Infof("Successfully parsed input")
	intp.tree = tree
	pterm.DefaultTree.WithRoot(treeFrom(tree)).Render()
	return nil
}

// treeFrom converts a syntax tree into pterm's leveled-list representation
// for rendering.
func treeFrom(root *pushdown.Node) pterm.TreeNode {
	ll := leveledNodes(root, pterm.LeveledList{}, 0)
	tracer().Debugf("|ll| = %d, ll = %v", len(ll), ll)
	return pterm.NewTreeFromLeveledList(ll)
}

func leveledNodes(node *pushdown.Node, ll pterm.LeveledList, level int) pterm.LeveledList {
	if node == nil {
		ll = append(ll, pterm.LeveledListItem{
			Level: level,
			Text:  "nil",
		})
		return ll
	}
	if node.IsLeaf() {
		ll = append(ll, pterm.LeveledListItem{
			Level: level,
			Text:  fmt.Sprintf("%q", node.Token.Lexeme()),
		})
		return ll
	}
	ll = append(ll, pterm.LeveledListItem{
		Level: level,
		Text:  node.Rule,
	})
	for _, ch := range node.Children {
		ll = leveledNodes(ch, ll, level+1)
	}
	return ll
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
