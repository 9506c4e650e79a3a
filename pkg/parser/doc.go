// Package parser segments tokenized SQL into the structure needed for river
// layout.
//
// The parser is deliberately shallow. It does not build a full expression tree
// or validate grammar; instead it recovers just enough structure to lay SQL out:
//
//   - statements, split on top-level terminators
//   - set-operation branches (UNION, UNION ALL, INTERSECT, EXCEPT)
//   - clauses introduced by river keywords (SELECT, FROM, WHERE, JOIN, ...)
//   - parenthesized groups and subqueries
//   - CASE expressions
//   - common table expressions introduced by WITH
//
// Every comment in the input is attached to a neighbouring token, so nothing is
// lost when the document is rendered again.
//
// Structural problems never abort the whole document. A statement with
// unbalanced parentheses or a malformed WITH list is kept verbatim, and a
// subtree nested deeper than the configured limit is passed through as raw
// text. Both cases are reported in Document.Warnings.
//
// Example usage:
//
//	doc, err := parser.ParseString("select id, name from users where active")
//	if err != nil {
//		// input could not be tokenized
//	}
//
//	for _, stmt := range doc.Statements {
//		for _, clause := range stmt.Branches[0].Clauses {
//			fmt.Println(clause.Kind)
//		}
//	}
package parser
