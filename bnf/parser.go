package bnf

import (
	"fmt"

	"github.com/db47h/lex"
)

// SyntaxError reports a malformed grammar definition.
type SyntaxError struct {
	Position lex.Position // file, line and column of the offending token
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Msg)
}

// Parse reads a grammar definition and returns one NFA per rule, in the
// order the rules appear in the source. Errors are of type *SyntaxError.
func Parse(source string) ([]RuleNFA, error) {
	return ParseFile("<grammar>", source)
}

// ParseFile is Parse with an explicit file name for error positions.
func ParseFile(name, source string) ([]RuleNFA, error) {
	p := &parser{lexer: lexGrammar(name, source)}
	p.next() // initialize the lookahead
	return p.parse()
}

// parser is a recursive descent parser with one token of lookahead over the
// meta grammar (see the package documentation):
//
//	grammar: (NEWLINE | rule)* ENDMARKER
//	rule: NAME ':' rhs NEWLINE
//	rhs: items ('|' items)*
//	items: item+
//	item: '[' rhs ']' | atom ['+' | '*']
//	atom: '(' rhs ')' | NAME | STRING
//
// Every parse function builds a fragment of the current rule's NFA and hands
// back its (start, end) states.
type parser struct {
	lexer *lex.Lexer
	tok   lex.Token // lookahead token type
	val   string    // lookahead token text
	pos   lex.Pos   // lookahead token position
	rule  string    // name of the rule currently being parsed
	err   error     // lexer error carried by the lookahead, if any
}

func (p *parser) next() {
	t, pos, v := p.lexer.Lex()
	p.tok, p.pos = t, pos
	p.val, _ = v.(string)
	if t == lex.Error && p.err == nil {
		p.err = &SyntaxError{Position: p.lexer.File().Position(pos), Msg: p.val}
	}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	if p.err != nil { // a lexer error outranks the parser's diagnosis
		return p.err
	}
	return &SyntaxError{
		Position: p.lexer.File().Position(p.pos),
		Msg:      fmt.Sprintf(format, args...),
	}
}

// expect consumes the lookahead if it matches the given token type and,
// unless val is empty, the given token text. It returns the consumed text.
func (p *parser) expect(t lex.Token, val string) (string, error) {
	if p.tok != t {
		return "", p.errorf("expected %s, got %s [%s]", tokenNames[t], tokenNames[p.tok], p.val)
	}
	if val != "" && p.val != val {
		return "", p.errorf("expected %q, got %q", val, p.val)
	}
	v := p.val
	p.next()
	return v, nil
}

func (p *parser) parse() ([]RuleNFA, error) {
	var rules []RuleNFA
	for p.tok != tokEndmarker {
		if p.err != nil {
			return nil, p.err
		}
		for p.tok == tokNewline {
			p.next()
		}
		if p.tok == tokEndmarker {
			break
		}
		// rule: NAME ':' rhs NEWLINE
		name, err := p.expect(tokName, "")
		if err != nil {
			return nil, err
		}
		p.rule = name
		if _, err := p.expect(tokOp, ":"); err != nil {
			return nil, err
		}
		a, z, err := p.parseRHS()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokNewline, ""); err != nil {
			return nil, err
		}
		tracer().Debugf("parsed rule %s", name)
		rules = append(rules, RuleNFA{Start: a, End: z})
	}
	return rules, nil
}

// rhs: items ('|' items)*
func (p *parser) parseRHS() (*NFAState, *NFAState, error) {
	a, z, err := p.parseItems()
	if err != nil {
		return nil, nil, err
	}
	if p.tok != tokOp || p.val != "|" {
		return a, z, nil
	}
	// fork and join states enclosing the alternatives
	aa := NewNFAState(p.rule)
	zz := NewNFAState(p.rule)
	for {
		aa.AddEpsilon(a)
		z.AddEpsilon(zz)
		if p.tok != tokOp || p.val != "|" {
			return aa, zz, nil
		}
		p.next()
		if a, z, err = p.parseItems(); err != nil {
			return nil, nil, err
		}
	}
}

// items: item+
func (p *parser) parseItems() (*NFAState, *NFAState, error) {
	a, b, err := p.parseItem()
	if err != nil {
		return nil, nil, err
	}
	for p.tok == tokName || p.tok == tokString ||
		(p.tok == tokOp && (p.val == "(" || p.val == "[")) {
		c, d, err := p.parseItem()
		if err != nil {
			return nil, nil, err
		}
		b.AddEpsilon(c)
		b = d
	}
	return a, b, nil
}

// item: '[' rhs ']' | atom ['+' | '*']
func (p *parser) parseItem() (*NFAState, *NFAState, error) {
	if p.tok == tokOp && p.val == "[" {
		p.next()
		a, z, err := p.parseRHS()
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(tokOp, "]"); err != nil {
			return nil, nil, err
		}
		a.AddEpsilon(z) // the group is optional
		return a, z, nil
	}
	a, z, err := p.parseAtom()
	if err != nil {
		return nil, nil, err
	}
	if p.tok != tokOp || (p.val != "+" && p.val != "*") {
		return a, z, nil
	}
	star := p.val == "*"
	p.next()
	z.AddEpsilon(a) // loop back for repetition
	if star {
		return a, a, nil // zero repetitions allowed
	}
	return a, z, nil
}

// atom: '(' rhs ')' | NAME | STRING
func (p *parser) parseAtom() (*NFAState, *NFAState, error) {
	switch {
	case p.tok == tokOp && p.val == "(":
		p.next()
		a, z, err := p.parseRHS()
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expect(tokOp, ")"); err != nil {
			return nil, nil, err
		}
		return a, z, nil
	case p.tok == tokName || p.tok == tokString:
		a := NewNFAState(p.rule)
		z := NewNFAState(p.rule)
		a.AddArc(z, p.val)
		p.next()
		return a, z, nil
	default:
		return nil, nil, p.errorf("expected (…) or NAME or STRING, got %s [%s]",
			tokenNames[p.tok], p.val)
	}
}
