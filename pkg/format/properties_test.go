package format_test

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"testing"

	. "github.com/pseudomuto/sqlriver/pkg/format"
	"github.com/pseudomuto/sqlriver/pkg/lexer"
	"github.com/stretchr/testify/require"
)

var corpus = []string{
	"SELECT id,name FROM t WHERE a=1",
	"select -1, +2, a - b, -(c) from t",
	"SELECT a FROM t WHERE x NOT BETWEEN 1 AND 2 AND (y OR z) OR NOT w",
	"SELECT f(a)[1], x::text, y->>'k', $1, :name FROM t",
	"SELECT (SELECT max(id) FROM u) AS m, CASE WHEN EXISTS (SELECT 1) THEN 1 END FROM t",
	"WITH RECURSIVE r (n) AS (SELECT 1 UNION ALL SELECT n + 1 FROM r WHERE n < 3) SELECT n FROM r",
	"SELECT a FROM t1 CROSS JOIN t2 NATURAL JOIN t3 FULL OUTER JOIN t4 USING (id) RIGHT JOIN t5 ON t5.x = t1.x OR t5.y = t1.y",
	"select 'ü' as \"ünïcode\", '漢字' as k, `tick` from t",
	"SELECT count(*) FILTER (WHERE a > 0) OVER (PARTITION BY b ORDER BY c) FROM t",
	"CREATE VIEW v AS SELECT a FROM t WHERE b",
	"SELECT a, /* x */ b\n     , c -- tail\n  FROM t /* block */ JOIN u -- j\n    ON t.id = u.id -- on\n   AND t.k = u.k\n WHERE z; -- done",
	"-- head\nSELECT 1\n-- before terminator\n;\n-- footer",
	"SELECT a FROM (SELECT b FROM (SELECT c FROM (SELECT d FROM e) x) y) z;",
	"SELECT CASE WHEN a THEN CASE b WHEN 1 THEN (SELECT 2) END ELSE 3 END FROM t;",
	"select 1 from t);\nselect 2",
	"UPDATE t SET a = CASE WHEN b THEN 1 ELSE 2 END, c = DEFAULT WHERE id = 1 RETURNING a, c",
	"INSERT INTO t (a) SELECT a FROM s UNION SELECT b FROM u ORDER BY 1 LIMIT 5;",
	"SELECT a\n-- about plus\n+ b FROM t",
	"SELECT x FROM t WHERE a = /* inline */ 1 AND b = 2 -- end\n",
}

// corpusInputs returns the corpus plus every golden input.
func corpusInputs(t *testing.T) []string {
	t.Helper()

	inputs := append([]string(nil), corpus...)

	matches, err := filepath.Glob(filepath.Join("testdata", "*.in.sql"))
	require.NoError(t, err)

	for _, m := range matches {
		data, err := os.ReadFile(m)
		require.NoError(t, err)
		inputs = append(inputs, string(data))
	}

	return inputs
}

func TestFormat_Idempotent(t *testing.T) {
	for _, sql := range corpusInputs(t) {
		once, err := String(sql)
		require.NoError(t, err)

		twice, err := String(once)
		require.NoError(t, err)
		require.Equal(t, once, twice, "input:\n%s", sql)
	}
}

// signature lists the tokens of sql, keywords upper-cased, sorted.
func signature(t *testing.T, sql string, comments bool) []string {
	t.Helper()

	tokens, err := lexer.Tokenize(sql)
	require.NoError(t, err)

	var out []string
	for _, tok := range tokens {
		switch {
		case tok.Kind == lexer.Comment && !comments:
			continue
		case tok.Kind == lexer.Keyword:
			out = append(out, tok.Upper())
		default:
			out = append(out, tok.Text)
		}
	}

	sort.Strings(out)
	return out
}

func TestFormat_PreservesTokens(t *testing.T) {
	for _, sql := range corpusInputs(t) {
		out, err := String(sql)
		require.NoError(t, err)

		require.Equal(t, signature(t, sql, false), signature(t, out, false), "input:\n%s", sql)
		require.Equal(t, signature(t, sql, true), signature(t, out, true), "input:\n%s", sql)
	}
}

func TestFormat_KeywordCase(t *testing.T) {
	out, err := String("select MyCol, other_Col from Some_Table where x is not null order by MyCol desc")
	require.NoError(t, err)

	tokens, err := lexer.Tokenize(out)
	require.NoError(t, err)

	for _, tok := range tokens {
		if tok.Kind == lexer.Keyword {
			require.Equal(t, strings.ToUpper(tok.Text), tok.Text)
		}
	}

	require.Contains(t, out, "MyCol")
	require.Contains(t, out, "other_Col")
	require.Contains(t, out, "Some_Table")
}

func TestFormat_Alignment(t *testing.T) {
	clauseLine := regexp.MustCompile(`^\s*(SELECT|FROM|WHERE|GROUP BY|HAVING|ORDER BY|LIMIT)\b`)

	sqls := []string{
		"select a, b from t where c group by a, b having count(*) > 1 order by a limit 1",
		"select a from t, u where t.id = u.id and u.ok order by 1",
	}

	for _, sql := range sqls {
		out, err := String(sql)
		require.NoError(t, err)

		found := 0
		for _, line := range strings.Split(out, "\n") {
			m := clauseLine.FindStringSubmatchIndex(line)
			if m == nil {
				continue
			}

			found++
			require.Equal(t, Defaults.River, m[3], "line %q", line)
		}
		require.GreaterOrEqual(t, found, 4)
	}
}

func TestFormat_CommaFirst(t *testing.T) {
	items := []string{"a", "b + 1", "f(c, d)", "'e'", "g AS h"}

	out, err := String("SELECT " + strings.Join(items, ", ") + " FROM t")
	require.NoError(t, err)

	var commaLines []string
	for _, line := range strings.Split(out, "\n") {
		if trimmed := strings.TrimSpace(line); strings.HasPrefix(trimmed, ",") {
			commaLines = append(commaLines, trimmed)
		}
	}

	require.Len(t, commaLines, len(items)-1)
	for i, line := range commaLines {
		require.Equal(t, ", "+items[i+1], line)
	}
}
