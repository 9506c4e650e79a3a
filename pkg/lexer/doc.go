// Package lexer turns raw SQL text into a uniform stream of typed tokens.
//
// It is the adapter between the participle lexer and the rest of sqlriver. The
// lexer recognises comments, string literals, quoted identifiers, numbers,
// bind parameters, operators and punctuation. Whitespace is recognised but
// elided; each token instead records whether whitespace preceded it.
//
// Multi-word keywords such as GROUP BY, LEFT OUTER JOIN and UNION ALL are merged
// into a single Keyword token with canonical, single-spaced text so that later
// stages can treat them as one unit.
//
// Basic usage:
//
//	tokens, err := lexer.Tokenize("select id from users -- all of them")
//	if err != nil {
//		// errors.Is(err, lexer.ErrTokenize)
//	}
//
//	for _, tok := range tokens {
//		fmt.Println(tok.Kind, tok.Text)
//	}
package lexer
