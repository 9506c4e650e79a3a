package format_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	. "github.com/pseudomuto/sqlriver/pkg/format"
	"github.com/pseudomuto/sqlriver/pkg/lexer"
	"github.com/pseudomuto/sqlriver/pkg/parser"
	"github.com/stretchr/testify/require"
)

func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

func pad(n int, s string) string {
	return strings.Repeat(" ", n) + s
}

func formatSQL(t *testing.T, opts *FormatterOptions, sql string) string {
	t.Helper()

	out, warnings, err := New(opts).Source(sql)
	require.NoError(t, err)
	require.Empty(t, warnings)
	return out
}

func TestFormat_Scenarios(t *testing.T) {
	t.Run("select list with terminator", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Terminate = true

		out := formatSQL(t, opts, "SELECT id,name FROM t WHERE a=1")
		require.Equal(t, lines(
			pad(3, "SELECT id"),
			pad(8, ", name"),
			pad(5, "FROM t"),
			pad(4, "WHERE a = 1"),
			pad(9, ";"),
		), out)
	})

	t.Run("join subquery", func(t *testing.T) {
		out := formatSQL(t, Defaults, "SELECT t.a FROM t LEFT JOIN (SELECT x FROM y) s ON s.id = t.id AND s.z = 1")
		require.Equal(t, lines(
			pad(3, "SELECT t.a"),
			pad(5, "FROM t"),
			"LEFT JOIN (",
			pad(13, "SELECT x"),
			pad(15, "FROM y"),
			pad(10, ") s ON s.id = t.id"),
			pad(13, "AND s.z = 1"),
		), out)
	})

	t.Run("trailing comment on keyword line", func(t *testing.T) {
		out := formatSQL(t, Defaults, "SELECT -- note\n id FROM t")
		require.Equal(t, lines(
			pad(3, "SELECT -- note"),
			pad(10, "id"),
			pad(5, "FROM t"),
		), out)
	})

	t.Run("two simple ctes", func(t *testing.T) {
		out := formatSQL(t, Defaults, "WITH a AS (SELECT 1 FROM x), b AS (SELECT 2 FROM y) SELECT * FROM a JOIN b ON a.k = b.k")
		require.Equal(t, lines(
			pad(5, "WITH a AS ("),
			pad(13, "SELECT 1"),
			pad(15, "FROM x"),
			pad(15, ")"),
			"",
			pad(8, ", b AS ("),
			pad(13, "SELECT 2"),
			pad(15, "FROM y"),
			pad(15, ")"),
			pad(3, "SELECT *"),
			pad(5, "FROM a"),
			pad(5, "JOIN b ON a.k = b.k"),
		), out)
	})

	t.Run("searched case", func(t *testing.T) {
		out := formatSQL(t, Defaults, "SELECT CASE WHEN a = 1 THEN 'one' WHEN a = 2 THEN 'two' ELSE 'many' END AS label, id FROM t;")
		require.Equal(t, lines(
			pad(3, "SELECT CASE WHEN a = 1"),
			pad(15, "THEN 'one'"),
			pad(15, "WHEN a = 2"),
			pad(15, "THEN 'two'"),
			pad(15, "ELSE 'many'"),
			pad(14, "END AS label"),
			pad(8, ", id"),
			pad(5, "FROM t"),
			pad(19, ";"),
		), out)
	})

	t.Run("subquery in predicate", func(t *testing.T) {
		out := formatSQL(t, Defaults, "SELECT a FROM t WHERE id IN (SELECT id FROM u WHERE ok)")
		require.Equal(t, lines(
			pad(3, "SELECT a"),
			pad(5, "FROM t"),
			pad(4, "WHERE id IN ("),
			pad(13, "SELECT id"),
			pad(15, "FROM u"),
			pad(14, "WHERE ok"),
			pad(16, ")"),
		), out)
	})

	t.Run("multiple statements", func(t *testing.T) {
		out := formatSQL(t, Defaults, "select 1; select 2;")
		require.Equal(t, lines(
			pad(3, "SELECT 1"),
			pad(9, ";"),
			"",
			pad(3, "SELECT 2"),
			pad(9, ";"),
		), out)
	})

	t.Run("leading comment on list item", func(t *testing.T) {
		out := formatSQL(t, Defaults, "SELECT a,\n-- the b column\nb FROM t")
		require.Equal(t, lines(
			pad(3, "SELECT a"),
			pad(8, "-- the b column"),
			pad(8, ", b"),
			pad(5, "FROM t"),
		), out)
	})

	t.Run("trailing line comment after case", func(t *testing.T) {
		out := formatSQL(t, Defaults, "SELECT CASE -- c\n WHEN a THEN 1 END FROM t")
		require.Equal(t, lines(
			pad(3, "SELECT CASE -- c"),
			pad(15, "WHEN a"),
			pad(15, "THEN 1"),
			pad(14, "END"),
			pad(5, "FROM t"),
		), out)
	})

	t.Run("ordering and window keywords", func(t *testing.T) {
		out := formatSQL(t, Defaults, "select sum(x) over (partition by g order by d rows between unbounded preceding and current row) from t order by a nulls last, b desc nulls first")
		require.Equal(t, lines(
			pad(3, "SELECT sum(x) OVER (PARTITION BY g ORDER BY d ROWS BETWEEN UNBOUNDED PRECEDING AND CURRENT ROW)"),
			pad(5, "FROM t"),
			pad(1, "ORDER BY a NULLS LAST, b DESC NULLS FIRST"),
		), out)
	})

	t.Run("trailing line comment mid expression", func(t *testing.T) {
		out := formatSQL(t, Defaults, "SELECT a + -- plus\n b FROM t")
		require.Equal(t, lines(
			pad(3, "SELECT a + -- plus"),
			pad(10, "b"),
			pad(5, "FROM t"),
		), out)
	})
}

func TestFormatter_Options(t *testing.T) {
	t.Run("lowercase keywords", func(t *testing.T) {
		opts := DefaultOptions()
		opts.UppercaseKeywords = false

		out := formatSQL(t, opts, "SELECT MyCol FROM T WHERE X IS NOT NULL")
		require.Equal(t, lines(
			pad(3, "select MyCol"),
			pad(5, "from T"),
			pad(4, "where X is not null"),
		), out)
	})

	t.Run("custom river", func(t *testing.T) {
		opts := &FormatterOptions{River: 12, NestOffset: 4, UppercaseKeywords: true}

		out := formatSQL(t, opts, "SELECT a, b FROM (SELECT a, b FROM t) x")
		require.Equal(t, lines(
			pad(6, "SELECT a"),
			pad(11, ", b"),
			pad(8, "FROM ("),
			pad(10, "SELECT a"),
			pad(15, ", b"),
			pad(12, "FROM t"),
			pad(13, ") x"),
		), out)
	})

	t.Run("zero values use defaults", func(t *testing.T) {
		f := New(&FormatterOptions{})
		opts := f.Options()

		require.Equal(t, 9, opts.River)
		require.Equal(t, 10, opts.NestOffset)
		require.Equal(t, parser.DefaultMaxDepth, opts.MaxDepth)
		require.False(t, opts.UppercaseKeywords)
	})

	t.Run("terminator only when present", func(t *testing.T) {
		out, err := String("SELECT id,name FROM t WHERE a=1")
		require.NoError(t, err)
		require.NotContains(t, out, ";")

		opts := DefaultOptions()
		opts.Terminate = true
		require.Equal(t, out+pad(9, ";\n"), formatSQL(t, opts, "SELECT id,name FROM t WHERE a=1"))
	})

	t.Run("nil options", func(t *testing.T) {
		require.Equal(t, *DefaultOptions(), New(nil).Options())
	})
}

func TestFormat_Recovery(t *testing.T) {
	t.Run("structural ambiguity", func(t *testing.T) {
		out, warnings, err := NewDefault().Source("select 1 from t);\nselect   2;")
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		require.True(t, errors.Is(warnings[0], parser.ErrStructuralAmbiguity))
		require.Equal(t, lines(
			"select 1 from t);",
			"",
			pad(3, "SELECT 2"),
			pad(9, ";"),
		), out)
	})

	t.Run("unclosed parenthesis", func(t *testing.T) {
		out, warnings, err := NewDefault().Source("select (1 from t;\nselect   2;")
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		require.True(t, errors.Is(warnings[0], parser.ErrStructuralAmbiguity))
		require.Equal(t, lines(
			"select (1 from t;",
			"",
			pad(3, "SELECT 2"),
			pad(9, ";"),
		), out)
	})

	t.Run("depth limit", func(t *testing.T) {
		opts := &FormatterOptions{UppercaseKeywords: true, MaxDepth: 1}

		out, warnings, err := New(opts).Source("SELECT f((a  +  b)) FROM t")
		require.NoError(t, err)
		require.Len(t, warnings, 1)
		require.True(t, errors.Is(warnings[0], parser.ErrDepthLimitExceeded))
		require.Equal(t, lines(
			pad(3, "SELECT f((a  +  b))"),
			pad(5, "FROM t"),
		), out)
	})

	t.Run("tokenization failure", func(t *testing.T) {
		sql := "SELECT 'unterminated"

		out, warnings, err := NewDefault().Source(sql)
		require.Error(t, err)
		require.True(t, errors.Is(err, lexer.ErrTokenize))
		require.Nil(t, warnings)
		require.Equal(t, sql, out)
	})

	t.Run("empty input", func(t *testing.T) {
		out, err := String("  \n")
		require.NoError(t, err)
		require.Empty(t, out)
	})

	t.Run("comments only", func(t *testing.T) {
		out, err := String("-- nothing to see\n/* here */")
		require.NoError(t, err)
		require.Equal(t, lines("-- nothing to see", "/* here */"), out)
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestFormatter_Format(t *testing.T) {
	doc, err := parser.ParseString("SELECT 1")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewDefault().Format(&buf, doc))
	require.Equal(t, lines(pad(3, "SELECT 1")), buf.String())

	err = NewDefault().Format(failingWriter{}, doc)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to write formatted SQL")
}
