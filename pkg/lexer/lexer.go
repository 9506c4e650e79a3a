package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
)

// ErrTokenize is returned when the input contains text no lexer rule accepts,
// e.g. an unterminated string literal.
var ErrTokenize = errors.New("tokenization failure")

var (
	// sqlLexer defines the lexer for the SQL dialect sqlriver understands. Rules
	// are tried in order, so comments win over operators and strings over words.
	sqlLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `--[^\r\n]*`},
		{Name: "MultilineComment", Pattern: `/\*[^*]*\*+([^/*][^*]*\*+)*/`},
		{Name: "String", Pattern: `[eEnN]?'([^']|'')*'`},
		{Name: "QuotedIdent", Pattern: "\"([^\"]|\"\")*\"|`[^`]*`"},
		{Name: "Number", Pattern: `(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?`},
		{Name: "Operator", Pattern: `::|->>|->|<>|!=|<=|>=|\|\||@>|<@|[=<>+\-*/%^~&|!]`},
		{Name: "Param", Pattern: `\$\d+|\?|:[\p{L}_][\p{L}\p{N}_]*|@[\p{L}_][\p{L}\p{N}_]*`},
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_$]*`},
		{Name: "Punct", Pattern: `[(),;.\[\]{}:]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	// kinds maps participle token types onto token kinds. Ident is resolved to
	// Keyword or Identifier afterwards.
	kinds = func() map[lexer.TokenType]Kind {
		symbols := sqlLexer.Symbols()
		return map[lexer.TokenType]Kind{
			symbols["Comment"]:          Comment,
			symbols["MultilineComment"]: Comment,
			symbols["String"]:           Literal,
			symbols["QuotedIdent"]:      Identifier,
			symbols["Number"]:           Literal,
			symbols["Operator"]:         Operator,
			symbols["Param"]:            Literal,
			symbols["Ident"]:            Keyword,
			symbols["Punct"]:            Punctuation,
			symbols["Whitespace"]:       Whitespace,
		}
	}()
)

// Tokenize lexes sql into tokens. Whitespace is dropped, keywords are
// recognised and multi-word keywords are merged.
//
// Returns an error wrapping ErrTokenize if the input cannot be tokenized.
func Tokenize(sql string) ([]Token, error) {
	lex, err := sqlLexer.LexString("", sql)
	if err != nil {
		return nil, errors.Wrap(ErrTokenize, err.Error())
	}

	raw, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, errors.Wrap(ErrTokenize, err.Error())
	}

	tokens := make([]Token, 0, len(raw))
	space := false
	for _, r := range raw {
		if r.EOF() {
			break
		}

		kind := kinds[r.Type]
		if kind == Whitespace {
			space = true
			continue
		}

		if kind == Keyword && !IsKeyword(r.Value) {
			kind = Identifier
		}

		start := Position{Offset: r.Pos.Offset, Line: r.Pos.Line, Column: r.Pos.Column}
		tokens = append(tokens, Token{
			Kind:  kind,
			Text:  r.Value,
			Pos:   start,
			End:   advance(start, r.Value),
			Space: space,
		})
		space = kind == Comment
	}

	return resolveFunctions(mergeCompounds(tokens)), nil
}

// IsKeyword reports whether word is a recognised SQL keyword.
func IsKeyword(word string) bool {
	return keywords[strings.ToUpper(word)]
}

// advance returns the position just past text when it starts at pos.
func advance(pos Position, text string) Position {
	end := Position{Offset: pos.Offset + len(text), Line: pos.Line, Column: pos.Column}
	if i := strings.LastIndexByte(text, '\n'); i >= 0 {
		end.Line += strings.Count(text, "\n")
		end.Column = utf8.RuneCountInString(text[i+1:]) + 1
		return end
	}

	end.Column += utf8.RuneCountInString(text)
	return end
}

// isWord reports whether tok is a bare (unquoted) word.
func isWord(tok Token) bool {
	if tok.Kind != Keyword && tok.Kind != Identifier {
		return false
	}
	r, _ := utf8.DecodeRuneInString(tok.Text)
	return r != '"' && r != '`'
}

func mergeCompounds(tokens []Token) []Token {
	merged := make([]Token, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		n := matchCompound(tokens[i:])
		if n == 0 {
			merged = append(merged, tokens[i])
			continue
		}

		words := make([]string, n)
		for j := range n {
			words[j] = tokens[i+j].Upper()
		}

		merged = append(merged, Token{
			Kind:  Keyword,
			Text:  strings.Join(words, " "),
			Pos:   tokens[i].Pos,
			End:   tokens[i+n-1].End,
			Space: tokens[i].Space,
		})
		i += n - 1
	}

	return merged
}

// matchCompound returns the number of tokens forming a compound keyword at the
// head of tokens, or 0.
func matchCompound(tokens []Token) int {
	for _, words := range compounds {
		if len(words) > len(tokens) {
			continue
		}

		ok := true
		for j, w := range words {
			if !isWord(tokens[j]) || !strings.EqualFold(tokens[j].Text, w) {
				ok = false
				break
			}
		}

		if ok {
			return len(words)
		}
	}

	return 0
}

// resolveFunctions demotes keywords like LEFT to identifiers when they are used
// as function names, e.g. LEFT(name, 3).
func resolveFunctions(tokens []Token) []Token {
	for i := 0; i+1 < len(tokens); i++ {
		tok := tokens[i]
		next := tokens[i+1]
		if tok.Kind == Keyword && functionKeywords[tok.Upper()] && next.IsPunct("(") && !next.Space {
			tokens[i].Kind = Identifier
		}
	}

	return tokens
}
