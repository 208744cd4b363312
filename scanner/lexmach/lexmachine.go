package lexmach

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"

	"github.com/phgn0/parso"
	"github.com/phgn0/parso/pgen"
	"github.com/phgn0/parso/scanner"
)

// lexmachine adapter

// tracer traces with key 'parso.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("parso.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner for the
// terminals of a compiled grammar.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
}

// NewLMAdapter creates a new lexmachine adapter for a compiled grammar:
// every reserved string of the grammar becomes a pattern. Operator-like
// literals ('+', ';', …) are tokenized with token type opType, keyword-like
// literals ("if", "for", …) with keyType. Patterns for the remaining token
// categories of the grammar (identifiers, numbers, whitespace skipping, …)
// are added by the init function.
//
// Keyword tokens may still arrive with the identifier type if init's
// identifier pattern wins in the automaton; this is of no concern to the
// parser, which resolves keywords by lexeme, not by token type.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), g *pgen.Grammar,
	opType, keyType parso.TokType) (*LMAdapter, error) {
	//
	adapter := &LMAdapter{}
	adapter.Lexer = lexmachine.NewLexer()
	init(adapter.Lexer)
	g.EachReservedString(func(value string, _ *pgen.ReservedString) {
		if isKeyword(value) {
			adapter.Lexer.Add([]byte(value), MakeToken(value, int(keyType)))
			return
		}
		r := "\\" + strings.Join(strings.Split(value, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(value, int(opType)))
	})
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// isKeyword decides between keyword-like and operator-like literals.
func isKeyword(lit string) bool {
	r, _ := utf8.DecodeRuneInString(lit)
	return r == '_' || unicode.IsLetter(r)
}

// Scanner creates a scanner for a given input. The scanner will implement
// the Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{s, logError}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	Error   func(error)
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() parso.Token {
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		lms.Error(err)
		if ui, is := err.(*machines.UnconsumedInput); is {
			lms.scanner.TC = ui.FailTC
		}
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		return scanner.MakeDefaultToken(scanner.EOF, "", parso.Span{})
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d %q", token.Type, string(token.Lexeme))
	return scanner.MakeDefaultToken(
		parso.TokType(token.Type),
		string(token.Lexeme),
		parso.Span{uint64(token.StartColumn), uint64(token.EndColumn)},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
