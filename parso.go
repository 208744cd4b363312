package parso

import "fmt"

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. We do not define any constants here, as
// it is up to applications to define them. Grammar definitions refer to token
// categories by name (NAME, NUMBER, NEWLINE, …); a TokenNamespace maps those
// names onto the TokType values of the application's scanner.
type TokType int

// TokTypeStringer is a type to be provided by a scanner/parser combination to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for a decimal number:
//
//	TokType = Number      // identifier for this kind of tokens (application specific)
//	Lexeme  = "4711"      // lexeme as it appeared in the input stream
//	Value   = 4711        // is an int64 value
//	Span    = 67…71       // occurred from position 67 in the input stream
//
// Token.Value() may either have been set by the scanner, or be derived from
// Token.Lexeme() further downstream.
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Token namespaces -------------------------------------------------------

// A TokenNamespace resolves the token-category names occurring in grammar
// definitions to the token types of the application's scanner. Compiling a
// grammar requires one for classifying terminal transitions.
type TokenNamespace interface {
	TokenType(name string) (TokType, bool)
}

// StdNamespace is a simple map-backed TokenNamespace.
type StdNamespace map[string]TokType

// TokenType returns the token type registered for name.
func (ns StdNamespace) TokenType(name string) (TokType, bool) {
	t, ok := ns[name]
	return t, ok
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. For every
// terminal and non-terminal, a parse tree will track which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) IsNull() bool {
	return s == Span{}
}

func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
