package bnf

import (
	"fmt"
	"strings"

	"github.com/db47h/lex"
	"github.com/db47h/lex/state"
)

// DecodeLiteral converts a quoted terminal label, as it occurs in grammar
// definitions (e.g. `'if'` or `"+="`), to the raw string value it denotes.
// Escape sequences are resolved as in Go string literals. Unquoted and
// triple-quoted labels are rejected.
func DecodeLiteral(label string) (string, error) {
	if len(label) < 2 || (label[0] != '\'' && label[0] != '"') {
		return "", fmt.Errorf("not a quoted string literal: %s", label)
	}
	if strings.HasPrefix(label, `'''`) || strings.HasPrefix(label, `"""`) {
		return "", fmt.Errorf("triple-quoted literals are not supported: %s", label)
	}
	// Run a one-shot lexer over the label and let it do the decoding.
	quoted := state.QuotedString(tokString)
	l := lex.NewLexer(lex.NewFile("<literal>", strings.NewReader(label)),
		func(s *lex.State) lex.StateFn {
			switch r := s.Next(); r {
			case '\'', '"':
				return quoted
			case lex.EOF:
				s.Emit(s.Pos(), tokEndmarker, "")
				return nil
			default:
				s.Errorf(s.Pos(), "trailing characters after string literal")
				return nil
			}
		})
	t, _, v := l.Lex()
	if t != tokString {
		return "", fmt.Errorf("malformed string literal %s: %v", label, v)
	}
	value, _ := v.(string)
	if t, _, v = l.Lex(); t != tokEndmarker {
		return "", fmt.Errorf("malformed string literal %s: %v", label, v)
	}
	return value, nil
}
