package lexer

import (
	"strings"
)

// Kind classifies a token.
type Kind int

const (
	Keyword Kind = iota
	Identifier
	Literal
	Operator
	Punctuation
	Comment
	// Whitespace is recognised by the lexer but never emitted by Tokenize.
	Whitespace
)

var kindNames = map[Kind]string{
	Keyword:     "keyword",
	Identifier:  "identifier",
	Literal:     "literal",
	Operator:    "operator",
	Punctuation: "punctuation",
	Comment:     "comment",
	Whitespace:  "whitespace",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Position is a location in the source text.
type Position struct {
	Offset int // 0-based byte offset
	Line   int // 1-based line number
	Column int // 1-based column number
}

// Token is a single lexical unit. Tokens are never mutated after Tokenize
// returns them.
type Token struct {
	Kind Kind
	// Text is the source text. Merged keywords carry their canonical text,
	// e.g. "LEFT OUTER JOIN".
	Text string
	// Pos is where the token starts.
	Pos Position
	// End is the position just past the last byte of the token.
	End Position
	// Space reports whether whitespace or a comment preceded the token.
	Space bool
}

// Is reports whether the token is the keyword kw (case-insensitive).
func (t Token) Is(kw string) bool {
	return t.Kind == Keyword && strings.EqualFold(t.Text, kw)
}

// IsPunct reports whether the token is the punctuation character p.
func (t Token) IsPunct(p string) bool {
	return t.Kind == Punctuation && t.Text == p
}

// IsLineComment reports whether the token is a -- comment.
func (t Token) IsLineComment() bool {
	return t.Kind == Comment && strings.HasPrefix(t.Text, "--")
}

// Upper returns the upper-cased token text.
func (t Token) Upper() string {
	return strings.ToUpper(t.Text)
}
