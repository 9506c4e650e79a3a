package lexer_test

import (
	"testing"

	. "github.com/pseudomuto/sqlriver/pkg/lexer"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected []string
	}{
		{
			name:     "simple select",
			sql:      "SELECT id,name FROM t WHERE a=1",
			expected: []string{"SELECT", "id", ",", "name", "FROM", "t", "WHERE", "a", "=", "1"},
		},
		{
			name:     "compound keywords are merged",
			sql:      "select a from t left  outer\n join u on 1 = 1 group by a order by a",
			expected: []string{"select", "a", "from", "t", "LEFT OUTER JOIN", "u", "on", "1", "=", "1", "GROUP BY", "a", "ORDER BY", "a"},
		},
		{
			name:     "string literals keep quotes and escapes",
			sql:      "SELECT 'it''s; fine' AS s",
			expected: []string{"SELECT", "'it''s; fine'", "AS", "s"},
		},
		{
			name:     "operators",
			sql:      "a::int <> b || c >= -1",
			expected: []string{"a", "::", "int", "<>", "b", "||", "c", ">=", "-", "1"},
		},
		{
			name:     "comments are tokens",
			sql:      "SELECT 1 -- one\n/* two */",
			expected: []string{"SELECT", "1", "-- one", "/* two */"},
		},
		{
			name:     "quoted identifiers and params",
			sql:      "SELECT \"Weird Name\", `x` FROM t WHERE id = $1 AND k = :key",
			expected: []string{"SELECT", "\"Weird Name\"", ",", "`x`", "FROM", "t", "WHERE", "id", "=", "$1", "AND", "k", "=", ":key"},
		},
		{
			name:     "union all",
			sql:      "SELECT 1 UNION ALL SELECT 2",
			expected: []string{"SELECT", "1", "UNION ALL", "SELECT", "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.sql)
			require.NoError(t, err)
			require.Equal(t, tt.expected, texts(tokens))
		})
	}
}

func TestTokenize_Kinds(t *testing.T) {
	tokens, err := Tokenize("SELECT Name, 'x', 42 FROM t; -- done")
	require.NoError(t, err)

	kinds := make([]Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}

	require.Equal(t, []Kind{
		Keyword, Identifier, Punctuation, Literal, Punctuation, Literal,
		Keyword, Identifier, Punctuation, Comment,
	}, kinds)
	require.Equal(t, "keyword", Keyword.String())
	require.Equal(t, "comment", Comment.String())
}

func TestTokenize_Positions(t *testing.T) {
	tokens, err := Tokenize("SELECT a\n  FROM t")
	require.NoError(t, err)
	require.Len(t, tokens, 4)

	from := tokens[2]
	require.Equal(t, "FROM", from.Text)
	require.Equal(t, Position{Offset: 11, Line: 2, Column: 3}, from.Pos)
	require.Equal(t, Position{Offset: 15, Line: 2, Column: 7}, from.End)
	require.True(t, from.Space)

	tokens, err = Tokenize("/* a\nb */x")
	require.NoError(t, err)
	require.Equal(t, 2, tokens[0].End.Line)
	require.Equal(t, 5, tokens[0].End.Column)
	require.True(t, tokens[1].Space)
}

func TestTokenize_FunctionKeywords(t *testing.T) {
	tokens, err := Tokenize("SELECT LEFT(name, 3) FROM a LEFT JOIN b ON 1 = 1")
	require.NoError(t, err)

	require.Equal(t, Identifier, tokens[1].Kind)
	require.Equal(t, "LEFT", tokens[1].Text)

	var join Token
	for _, tok := range tokens {
		if tok.Is("LEFT JOIN") {
			join = tok
		}
	}
	require.Equal(t, Keyword, join.Kind)
}

func TestTokenize_CompoundNotAcrossComments(t *testing.T) {
	tokens, err := Tokenize("GROUP /* x */ BY a")
	require.NoError(t, err)
	require.Equal(t, []string{"GROUP", "/* x */", "BY", "a"}, texts(tokens))
}

func TestTokenize_Failure(t *testing.T) {
	_, err := Tokenize("SELECT 'unterminated")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrTokenize))
	require.Equal(t, ErrTokenize, errors.Cause(err))
}

func TestIsKeyword(t *testing.T) {
	require.True(t, IsKeyword("select"))
	require.True(t, IsKeyword("WHERE"))
	require.False(t, IsKeyword("users"))

	for _, kw := range []string{"nulls", "last", "first", "rows", "range", "window", "preceding", "following", "unbounded", "current", "row"} {
		require.True(t, IsKeyword(kw), kw)
	}
}
