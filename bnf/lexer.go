package bnf

import (
	"strings"
	"unicode"

	"github.com/db47h/lex"
)

// Token types of the grammar definition language.
const (
	tokEndmarker lex.Token = iota // end of input
	tokNewline                    // end of a logical line
	tokName                       // rule name or token-category name
	tokString                     // quoted literal, value is the raw text including quotes
	tokOp                         // single-rune operator
)

// tokenNames maps token types to names for error messages and traces.
var tokenNames = map[lex.Token]string{
	lex.Error:    "ERROR",
	tokEndmarker: "ENDMARKER",
	tokNewline:   "NEWLINE",
	tokName:      "NAME",
	tokString:    "STRING",
	tokOp:        "OP",
}

// grammarLexer tokenizes grammar definitions. NEWLINE tokens are only
// emitted for lines carrying tokens, newlines inside (…) or […] groups
// count as plain whitespace, and a NEWLINE is synthesized before the final
// ENDMARKER if the input does not end with one. The parser is thus freed
// from all line bookkeeping.
type grammarLexer struct {
	depth   int    // nesting level of (…) and […] groups
	midline bool   // a token has been emitted since the last NEWLINE
	buf     []rune // scratch buffer for names and strings
}

// lexGrammar creates a lexer for a grammar definition. The name is used in
// error positions.
func lexGrammar(name, source string) *lex.Lexer {
	gl := &grammarLexer{}
	return lex.NewLexer(lex.NewFile(name, strings.NewReader(source)), gl.init)
}

func (gl *grammarLexer) init(s *lex.State) lex.StateFn {
	r := s.Next()
	pos := s.Pos()
	switch r {
	case lex.EOF:
		if gl.midline {
			gl.midline = false
			s.Emit(pos, tokNewline, "")
		}
		s.Emit(pos, tokEndmarker, "")
		return nil
	case '\n':
		if gl.depth > 0 || !gl.midline {
			return nil // implicit line joining, blank or comment-only line
		}
		gl.midline = false
		s.Emit(pos, tokNewline, "\n")
		return nil
	case ' ', '\t', '\r':
		return nil
	case '#':
		return gl.comment
	case '\'', '"':
		return gl.str
	case '(', '[':
		gl.depth++
		gl.emitOp(s, pos, r)
		return nil
	case ')', ']':
		if gl.depth > 0 {
			gl.depth--
		}
		gl.emitOp(s, pos, r)
		return nil
	case ':', '|', '*', '+':
		gl.emitOp(s, pos, r)
		return nil
	}
	if isNameStart(r) {
		return gl.name
	}
	s.Errorf(pos, "unexpected character %#U in grammar", r)
	return nil
}

func (gl *grammarLexer) emitOp(s *lex.State, pos lex.Pos, r rune) {
	gl.midline = true
	s.Emit(pos, tokOp, string(r))
}

// comment eats characters up to, but not including, the end of the line.
func (gl *grammarLexer) comment(s *lex.State) lex.StateFn {
	for {
		r := s.Next()
		if r == '\n' || r == lex.EOF {
			s.Backup()
			return nil
		}
	}
}

func (gl *grammarLexer) name(s *lex.State) lex.StateFn {
	pos := s.Pos()
	gl.buf = append(gl.buf[:0], s.Current())
	for r := s.Next(); isNameRune(r); r = s.Next() {
		gl.buf = append(gl.buf, r)
	}
	s.Backup()
	gl.midline = true
	s.Emit(pos, tokName, string(gl.buf))
	return nil
}

// str scans a quoted literal and emits its raw text, quotes and escape
// sequences untouched. Terminal classification decodes the value later, the
// automata carry the label exactly as written in the grammar.
func (gl *grammarLexer) str(s *lex.State) lex.StateFn {
	quote := s.Current()
	pos := s.Pos()
	gl.buf = append(gl.buf[:0], quote)
	for {
		r := s.Next()
		switch r {
		case quote:
			gl.buf = append(gl.buf, r)
			gl.midline = true
			s.Emit(pos, tokString, string(gl.buf))
			return nil
		case '\\':
			gl.buf = append(gl.buf, r)
			r = s.Next()
			if r == '\n' || r == lex.EOF {
				s.Backup()
				s.Errorf(pos, "unterminated string literal")
				return nil
			}
			gl.buf = append(gl.buf, r)
		case '\n', lex.EOF:
			s.Backup()
			s.Errorf(pos, "unterminated string literal")
			return nil
		default:
			gl.buf = append(gl.buf, r)
		}
	}
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNameRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
