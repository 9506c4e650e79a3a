package parser

import (
	"github.com/pseudomuto/sqlriver/pkg/lexer"
)

// split partitions a token stream into statements. A statement ends at a
// terminator outside any parentheses; comments that start on the terminator's
// line stay with it.
//
// Chunks that hold nothing but comments and terminators are folded into the
// following statement, or into the previous one at the end of the input. The
// comments of an input without statements are returned separately.
func split(tokens []lexer.Token) (chunks [][]lexer.Token, orphans []lexer.Token) {
	return fold(statements(tokens))
}

func statements(tokens []lexer.Token) [][]lexer.Token {
	var (
		chunks [][]lexer.Token
		start  int
		depth  int
	)

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch {
		case tok.IsPunct("("):
			depth++
		case tok.IsPunct(")"):
			if depth > 0 {
				depth--
			}
		case tok.IsPunct(";") && depth == 0:
			i = terminated(tokens, i)
			chunks = append(chunks, tokens[start:i+1:i+1])
			start = i + 1
		}
	}

	if start == len(tokens) {
		return chunks
	}

	rest := tokens[start:]
	if depth > 0 {
		// An unclosed parenthesis ends its statement at the next terminator so
		// the statements after it are still split.
		for i, tok := range rest {
			if tok.IsPunct(";") {
				i = terminated(rest, i)
				chunks = append(chunks, rest[:i+1:i+1])
				return append(chunks, statements(rest[i+1:])...)
			}
		}
	}

	return append(chunks, rest[:len(rest):len(rest)])
}

// terminated returns the index of the last token belonging to the terminator
// at i, taking in comments that start on its line.
func terminated(tokens []lexer.Token, i int) int {
	line := tokens[i].End.Line
	for i+1 < len(tokens) && tokens[i+1].Kind == lexer.Comment && tokens[i+1].Pos.Line == line {
		i++
	}

	return i
}

func fold(chunks [][]lexer.Token) ([][]lexer.Token, []lexer.Token) {
	var (
		out     [][]lexer.Token
		pending []lexer.Token
	)

	for _, chunk := range chunks {
		if !hasContent(chunk) {
			for _, tok := range chunk {
				if tok.Kind == lexer.Comment {
					pending = append(pending, tok)
				}
			}
			continue
		}

		if len(pending) > 0 {
			chunk = append(pending, chunk...)
			pending = nil
		}
		out = append(out, chunk)
	}

	if len(pending) == 0 {
		return out, nil
	}

	if len(out) == 0 {
		return nil, pending
	}

	last := len(out) - 1
	out[last] = append(out[last], pending...)
	return out, nil
}

func hasContent(chunk []lexer.Token) bool {
	for _, tok := range chunk {
		if tok.Kind != lexer.Comment && !tok.IsPunct(";") {
			return true
		}
	}

	return false
}

// attach turns the tokens of a statement into leaves. A comment that starts on
// the line where the previous token ends trails that token; any other comment
// leads the next token. Comments after the last token are returned as the
// footer.
func attach(tokens []lexer.Token) (leaves []*Leaf, footer []lexer.Token) {
	var (
		pending []lexer.Token
		prev    *Leaf
	)

	for _, tok := range tokens {
		if tok.Kind != lexer.Comment {
			leaf := &Leaf{Token: tok, Leading: pending}
			pending = nil
			leaves = append(leaves, leaf)
			prev = leaf
			continue
		}

		if prev != nil && len(pending) == 0 && tok.Pos.Line == prev.Token.End.Line {
			prev.Trailing = append(prev.Trailing, tok)
			continue
		}

		pending = append(pending, tok)
	}

	return leaves, pending
}
