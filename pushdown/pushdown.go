/*
Package pushdown provides the table-driven parser for compiled grammars.

The parser is a pure table walker. It keeps a stack of automaton states,
one entry per grammar rule in progress. Every input token maps onto a
transition key (keywords and operators by their interned reserved string,
all other tokens by token type), and the transition selects a DFAPlan from
the state on top of the stack: advance the state, then push the plan's
chain of states for the rules the token descends into. A rule whose
automaton sits in a final state completes as soon as the lookahead does not
continue it; its collected nodes pop onto the parent rule as a subtree.

Usage:

	g, _ := pgen.GenerateGrammar(grammarText, namespace)
	p := pushdown.NewParser(g)
	tree, err := p.Parse(tokens)

The parser builds a plain concrete syntax tree and does not attempt error
recovery: the first unexpected token aborts the parse with a *SyntaxError.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–2023 The parso authors

*/
package pushdown

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/tracing"

	"github.com/phgn0/parso"
	"github.com/phgn0/parso/pgen"
	"github.com/phgn0/parso/scanner"
)

// tracer traces with key 'parso.pushdown'.
func tracer() tracing.Trace {
	return tracing.Select("parso.pushdown")
}

// Node is a node of the concrete syntax tree produced by the parser.
// Interior nodes carry a rule name and children, leaves carry the token.
type Node struct {
	Rule     string
	Token    parso.Token
	Children []*Node
}

// IsLeaf is true for token nodes.
func (n *Node) IsLeaf() bool {
	return n.Token != nil
}

func (n *Node) String() string {
	if n.IsLeaf() {
		return fmt.Sprintf("%q", n.Token.Lexeme())
	}
	return fmt.Sprintf("%s(%d)", n.Rule, len(n.Children))
}

// SyntaxError reports input which the grammar does not accept.
type SyntaxError struct {
	Msg   string
	Token parso.Token // the offending token; nil when the input ended early
}

func (e *SyntaxError) Error() string {
	if e.Token == nil {
		return "syntax error: " + e.Msg
	}
	return fmt.Sprintf("syntax error: %s %q at %v", e.Msg, e.Token.Lexeme(), e.Token.Span())
}

// Parser is a pushdown parser for a compiled grammar. Parsers are cheap to
// create; the Grammar is immutable and shared.
type Parser struct {
	grammar     *pgen.Grammar
	stack       *arraystack.Stack // of *stackNode
	syntaxTypes map[parso.TokType]bool
	eofType     parso.TokType
}

// stackNode is one rule in progress: the current state of the rule's
// automaton and the nodes collected for it so far.
type stackNode struct {
	dfa   *pgen.DFAState
	nodes []*Node
}

// Option configures a Parser.
type Option func(p *Parser)

// SyntaxTypes restricts reserved-string resolution to tokens of the given
// types. By default every token's lexeme is tried against the grammar's
// reserved strings; a scanner distinguishing, say, NAME, OP and STRING
// types will want the lookup restricted to NAME and OP, so that a string
// token "if" is never mistaken for the keyword.
func SyntaxTypes(types ...parso.TokType) Option {
	return func(p *Parser) {
		p.syntaxTypes = make(map[parso.TokType]bool, len(types))
		for _, t := range types {
			p.syntaxTypes[t] = true
		}
	}
}

// EOFType sets the token type the parser treats as end of input. Default
// is scanner.EOF. Grammars using an explicit end terminal (ENDMARKER and
// the like) bind it through their token namespace instead.
func EOFType(t parso.TokType) Option {
	return func(p *Parser) {
		p.eofType = t
	}
}

// NewParser creates a parser for a compiled grammar.
func NewParser(g *pgen.Grammar, opts ...Option) *Parser {
	p := &Parser{grammar: g, eofType: scanner.EOF}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads tokens up to end of input and returns the concrete syntax
// tree of the grammar's start rule. The input has to form exactly one
// complete instance of the start rule. Errors are of type *SyntaxError.
func (p *Parser) Parse(input scanner.Tokenizer) (*Node, error) {
	start := p.grammar.StartNonterminal()
	p.stack = arraystack.New()
	p.stack.Push(&stackNode{dfa: p.grammar.DFAs(start)[0]})
	tracer().Debugf("parse of rule %s starts", start)
	for {
		token := input.NextToken()
		if token.TokType() == p.eofType {
			break
		}
		if err := p.addToken(token); err != nil {
			return nil, err
		}
	}
	// unwind rules completed by the end of input down to the root node
	for {
		tos := p.top()
		if !tos.dfa.IsFinal() {
			return nil, &SyntaxError{Msg: "incomplete input"}
		}
		if p.stack.Size() == 1 {
			tracer().Debugf("parse of rule %s accepts", start)
			return &Node{Rule: tos.dfa.FromRule(), Children: tos.nodes}, nil
		}
		p.pop()
	}
}

// addToken advances the automaton of the innermost rule by one token,
// first completing rules the token does not continue.
func (p *Parser) addToken(token parso.Token) error {
	transition := p.tokenToTransition(token)
	for {
		tos := p.top()
		if plan, ok := tos.dfa.Plan(transition); ok {
			tos.dfa = plan.Next
			for _, push := range plan.Pushes {
				tracer().Debugf("descending into rule %s", push.FromRule())
				p.stack.Push(&stackNode{dfa: push})
			}
			tos = p.top()
			tos.nodes = append(tos.nodes, &Node{Token: token})
			return nil
		}
		if !tos.dfa.IsFinal() {
			return &SyntaxError{Msg: "unexpected token", Token: token}
		}
		if p.stack.Size() == 1 {
			return &SyntaxError{Msg: "too much input, token", Token: token}
		}
		p.pop()
	}
}

// pop completes the innermost rule: its collected nodes become a subtree
// of the parent rule.
func (p *Parser) pop() {
	v, _ := p.stack.Pop()
	done := v.(*stackNode)
	node := &Node{Rule: done.dfa.FromRule(), Children: done.nodes}
	tos := p.top()
	tos.nodes = append(tos.nodes, node)
	tracer().Debugf("completed rule %s with %d children", node.Rule, len(node.Children))
}

func (p *Parser) top() *stackNode {
	v, _ := p.stack.Peek()
	return v.(*stackNode)
}

// tokenToTransition maps a token onto the transition key the grammar's
// plans are indexed with: the interned reserved string if the token's
// lexeme is a keyword or operator of the grammar, the token type otherwise.
func (p *Parser) tokenToTransition(token parso.Token) pgen.Transition {
	if p.syntaxTypes == nil || p.syntaxTypes[token.TokType()] {
		if rs, ok := p.grammar.ReservedString(token.Lexeme()); ok {
			return rs
		}
	}
	return token.TokType()
}
