/*
Package scanner defines an interface for scanners to be used with the
pushdown parser.

Two default implementations are provided: (1) a replay scanner over
pre-tokenized input, and (2) an adapter for lexmachine, living in
sub-package `lexmach`, which derives patterns for keywords and operators
from a compiled grammar.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2020–2023 The parso authors

*/
package scanner

import (
	"text/scanner"

	"github.com/npillmayer/schuko/tracing"

	"github.com/phgn0/parso"
)

// tracer traces with key 'parso.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("parso.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons; applications are
// free to bind their grammar's token categories to these values.
const (
	EOF    = scanner.EOF
	Ident  = scanner.Ident
	Int    = scanner.Int
	Float  = scanner.Float
	String = scanner.String
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() parso.Token
	SetErrorHandler(func(error))
}

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used by the replay
// scanner as well as the LexMachine scanner.
type DefaultToken struct {
	kind   parso.TokType
	lexeme string
	Val    interface{}
	span   parso.Span
}

func MakeDefaultToken(typ parso.TokType, lexeme string, span parso.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() parso.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() parso.Span {
	return t.span
}

// --- Replay scanner --------------------------------------------------------

// SliceTokenizer replays a fixed sequence of tokens, followed by an endless
// stream of EOF tokens. It serves tests and embedders which hold already
// tokenized input, the parser does not care where tokens come from.
type SliceTokenizer struct {
	tokens []parso.Token
	pos    int
	Error  func(error) // error handler
}

var _ Tokenizer = (*SliceTokenizer)(nil)

// NewSliceTokenizer creates a Tokenizer replaying the given tokens.
func NewSliceTokenizer(tokens ...parso.Token) *SliceTokenizer {
	return &SliceTokenizer{tokens: tokens, Error: logError}
}

// NextToken is part of the Tokenizer interface.
func (t *SliceTokenizer) NextToken() parso.Token {
	if t.pos >= len(t.tokens) {
		return MakeDefaultToken(EOF, "", parso.Span{})
	}
	token := t.tokens[t.pos]
	t.pos++
	return token
}

// SetErrorHandler sets an error handler for the scanner.
func (t *SliceTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}
