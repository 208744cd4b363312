package bnf

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestDecodeLiteral(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.bnf")
	defer teardown()
	//
	inputs := []struct {
		label string
		value string
	}{
		{`'if'`, "if"},
		{`'+'`, "+"},
		{`">="`, ">="},
		{`'\''`, "'"},
		{`"\\"`, `\`},
		{`"\n"`, "\n"},
	}
	for _, input := range inputs {
		value, err := DecodeLiteral(input.label)
		if err != nil {
			t.Errorf("expected %s to decode, got error %v", input.label, err)
			continue
		}
		if value != input.value {
			t.Errorf("expected %s to decode to %q, is %q", input.label, input.value, value)
		}
	}
}

func TestDecodeLiteralRejects(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parso.bnf")
	defer teardown()
	//
	for _, label := range []string{"x", "", "'", `'''x'''`, `"""x"""`, `'x' y`, `'x`} {
		if value, err := DecodeLiteral(label); err == nil {
			t.Errorf("expected %q to be rejected, decodes to %q", label, value)
		}
	}
}
