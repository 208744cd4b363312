package bnf

import (
	"testing"

	"github.com/db47h/lex"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

type lexed struct {
	tok lex.Token
	val string
}

func lexAll(source string) []lexed {
	l := lexGrammar("test", source)
	var toks []lexed
	for {
		tok, _, v := l.Lex()
		val, _ := v.(string)
		toks = append(toks, lexed{tok, val})
		if tok == tokEndmarker || tok == lex.Error {
			return toks
		}
	}
}

func expectTokens(t *testing.T, toks, expected []lexed) {
	t.Helper()
	if len(toks) != len(expected) {
		t.Fatalf("expected %d tokens, have %d: %v", len(expected), len(toks), toks)
	}
	for i, e := range expected {
		if toks[i] != e {
			t.Errorf("token %d expected to be %s %q, is %s %q", i,
				tokenNames[e.tok], e.val, tokenNames[toks[i].tok], toks[i].val)
		}
	}
}

func TestLexerTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.bnf")
	defer teardown()
	//
	toks := lexAll("a: b 'x'\n")
	expectTokens(t, toks, []lexed{
		{tokName, "a"}, {tokOp, ":"}, {tokName, "b"}, {tokString, "'x'"},
		{tokNewline, "\n"}, {tokEndmarker, ""},
	})
}

func TestLexerLineJoining(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.bnf")
	defer teardown()
	//
	// the newline inside the group has to vanish, the missing one at the
	// end of the input has to be synthesized
	toks := lexAll("a: (b\n   c)")
	expectTokens(t, toks, []lexed{
		{tokName, "a"}, {tokOp, ":"}, {tokOp, "("}, {tokName, "b"},
		{tokName, "c"}, {tokOp, ")"}, {tokNewline, ""}, {tokEndmarker, ""},
	})
}

func TestLexerCommentsAndBlankLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.bnf")
	defer teardown()
	//
	toks := lexAll("# header\n\na: b  # trailing\n\nc: d\n")
	expectTokens(t, toks, []lexed{
		{tokName, "a"}, {tokOp, ":"}, {tokName, "b"}, {tokNewline, "\n"},
		{tokName, "c"}, {tokOp, ":"}, {tokName, "d"}, {tokNewline, "\n"},
		{tokEndmarker, ""},
	})
}

func TestLexerStringEscapes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.bnf")
	defer teardown()
	//
	// raw literal text is kept, including quotes and escape sequences
	toks := lexAll(`a: "\\" '\''` + "\n")
	expectTokens(t, toks, []lexed{
		{tokName, "a"}, {tokOp, ":"}, {tokString, `"\\"`}, {tokString, `'\''`},
		{tokNewline, "\n"}, {tokEndmarker, ""},
	})
}

func TestLexerUnterminatedString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.bnf")
	defer teardown()
	//
	toks := lexAll("a: 'x\nb: c\n")
	last := toks[len(toks)-1]
	if last.tok != lex.Error {
		t.Fatalf("expected the lexer to flag an error, tokens are %v", toks)
	}
	if last.val != "unterminated string literal" {
		t.Errorf("unexpected error message %q", last.val)
	}
}

func TestLexerIllegalCharacter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.bnf")
	defer teardown()
	//
	toks := lexAll("a: b ; c\n")
	last := toks[len(toks)-1]
	if last.tok != lex.Error {
		t.Fatalf("expected the lexer to flag an error, tokens are %v", toks)
	}
	t.Logf("error message is %q", last.val)
}
