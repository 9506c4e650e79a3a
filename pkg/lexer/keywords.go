package lexer

// keywords are the words classified as Keyword. Everything else that looks like
// a word is an Identifier and keeps its original case.
var keywords = map[string]bool{
	"ALL": true, "ALTER": true, "AND": true, "ANY": true, "AS": true, "ASC": true,
	"BETWEEN": true, "BY": true, "CASE": true, "CREATE": true, "CROSS": true,
	"DEFAULT": true, "DELETE": true, "DESC": true, "DISTINCT": true, "DROP": true,
	"ELSE": true, "END": true, "EXCEPT": true, "EXISTS": true, "FALSE": true,
	"FILTER": true, "FROM": true, "FULL": true, "HAVING": true, "ILIKE": true,
	"IN": true, "INNER": true, "INSERT": true, "INTERSECT": true, "INTERVAL": true,
	"INTO": true, "IS": true, "JOIN": true, "LATERAL": true, "LEFT": true,
	"LIKE": true, "LIMIT": true, "NATURAL": true, "NOT": true, "NULL": true,
	"NULLS": true, "OFFSET": true, "ON": true, "OR": true, "OUTER": true,
	"OVER": true, "RECURSIVE": true, "RETURNING": true, "RIGHT": true,
	"SELECT": true, "SET": true, "SOME": true, "TABLE": true, "THEN": true,
	"TRUE": true, "UNION": true, "UPDATE": true, "USING": true, "VALUES": true,
	"VIEW": true, "WHEN": true, "WHERE": true, "WITH": true,

	// ordering and window frames
	"CURRENT": true, "FIRST": true, "FOLLOWING": true, "LAST": true,
	"PRECEDING": true, "RANGE": true, "ROW": true, "ROWS": true,
	"UNBOUNDED": true, "WINDOW": true,
}

// functionKeywords double as function names when a ( follows immediately.
var functionKeywords = map[string]bool{
	"LEFT":  true,
	"RIGHT": true,
	"ROW":   true,
}

// compounds are merged into a single keyword token, longest first.
var compounds = [][]string{
	{"LEFT", "OUTER", "JOIN"},
	{"RIGHT", "OUTER", "JOIN"},
	{"FULL", "OUTER", "JOIN"},
	{"LEFT", "JOIN"},
	{"RIGHT", "JOIN"},
	{"FULL", "JOIN"},
	{"INNER", "JOIN"},
	{"CROSS", "JOIN"},
	{"NATURAL", "JOIN"},
	{"GROUP", "BY"},
	{"ORDER", "BY"},
	{"PARTITION", "BY"},
	{"UNION", "ALL"},
	{"INSERT", "INTO"},
}
