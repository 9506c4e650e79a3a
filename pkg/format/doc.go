// Package format renders parsed SQL in river layout.
//
// River layout right-aligns clause keywords so that they all end on one shared
// column, the river, and starts clause content one column past it. Nested
// constructs (subqueries, CTE bodies and CASE expressions) move the river right
// by a fixed offset per level.
//
// Key features:
// - Comma-first SELECT, GROUP BY, SET and VALUES lists
// - WHERE and HAVING predicates split at top-level AND/OR
// - JOIN keywords aligned on the longest JOIN of the statement
// - Recursive layout of CTEs, subqueries and CASE expressions
// - Comments kept next to the tokens they annotate
// - Standardized keyword casing
//
// Example usage:
//
//	doc, err := parser.ParseString(`select a.id, b.name
//	from a left join b on a.id = b.a_id and b.active
//	where a.created > now() - interval '1 day'`)
//	if err != nil {
//		return err
//	}
//
//	format.New(format.DefaultOptions()).Format(os.Stdout, doc)
//
// Output:
//
//	   SELECT a.id
//	        , b.name
//	     FROM a
//	LEFT JOIN b ON a.id = b.a_id
//	           AND b.active
//	    WHERE a.created > now() - INTERVAL '1 day'
//
// Formatting is idempotent: formatting the output again yields the same text.
package format
