package parser

import (
	"github.com/pseudomuto/sqlriver/pkg/lexer"
)

// ClauseKind identifies the river keyword that opens a clause.
type ClauseKind int

const (
	// ClauseOther is a clause opened by a keyword that has no layout rules of
	// its own, or the keyword-less head of a statement.
	ClauseOther ClauseKind = iota
	ClauseSelect
	ClauseFrom
	ClauseWhere
	ClauseGroupBy
	ClauseHaving
	ClauseOrderBy
	ClauseLimit
	ClauseOffset
	ClauseJoin
	ClauseInsert
	ClauseValues
	ClauseUpdate
	ClauseSet
	ClauseDelete
	ClauseReturning
)

var clauseNames = map[ClauseKind]string{
	ClauseOther:     "OTHER",
	ClauseSelect:    "SELECT",
	ClauseFrom:      "FROM",
	ClauseWhere:     "WHERE",
	ClauseGroupBy:   "GROUP BY",
	ClauseHaving:    "HAVING",
	ClauseOrderBy:   "ORDER BY",
	ClauseLimit:     "LIMIT",
	ClauseOffset:    "OFFSET",
	ClauseJoin:      "JOIN",
	ClauseInsert:    "INSERT INTO",
	ClauseValues:    "VALUES",
	ClauseUpdate:    "UPDATE",
	ClauseSet:       "SET",
	ClauseDelete:    "DELETE",
	ClauseReturning: "RETURNING",
}

// clauseKeywords maps the canonical text of a river keyword to its clause.
// JOIN variants are recognized separately.
var clauseKeywords = map[string]ClauseKind{
	"SELECT":      ClauseSelect,
	"FROM":        ClauseFrom,
	"WHERE":       ClauseWhere,
	"GROUP BY":    ClauseGroupBy,
	"HAVING":      ClauseHaving,
	"ORDER BY":    ClauseOrderBy,
	"LIMIT":       ClauseLimit,
	"OFFSET":      ClauseOffset,
	"INSERT INTO": ClauseInsert,
	"VALUES":      ClauseValues,
	"UPDATE":      ClauseUpdate,
	"SET":         ClauseSet,
	"DELETE":      ClauseDelete,
	"RETURNING":   ClauseReturning,
}

var setOperators = map[string]bool{
	"UNION":     true,
	"UNION ALL": true,
	"INTERSECT": true,
	"EXCEPT":    true,
}

func (k ClauseKind) String() string {
	return clauseNames[k]
}

type (
	// Document is the result of parsing a SQL text.
	Document struct {
		// Statements in source order.
		Statements []*Statement
		// Comments holds the comments of a document that has no statements.
		Comments []lexer.Token
		// Warnings collects structural problems that were recovered from by
		// keeping part of the input verbatim.
		Warnings []error
	}

	// Statement is a single SQL statement.
	//
	// When Raw is non-empty the statement could not be segmented and Raw holds
	// its exact source text. All other fields are empty in that case.
	Statement struct {
		With       *With
		Branches   []*Branch
		Terminator *Leaf
		// Footer holds comments that follow the last token of the statement on
		// later lines.
		Footer []lexer.Token

		Raw string
		Err error
	}

	// With is the WITH list of a statement.
	With struct {
		With      *Leaf
		Recursive *Leaf
		CTEs      []*CTE
	}

	// CTE is one named query in a WITH list.
	CTE struct {
		// Comma separates this CTE from the previous one. It is nil for the
		// first CTE.
		Comma   *Leaf
		Name    *Leaf
		Columns *Group
		As      *Leaf
		Body    *Subquery
	}

	// Branch is one operand of a set operation.
	Branch struct {
		// Op is the set operator that precedes the branch. It is nil for the
		// first branch.
		Op      *Leaf
		Clauses []*Clause
	}

	// Clause is a run of nodes opened by a river keyword.
	Clause struct {
		Kind ClauseKind
		// Keyword is nil for a keyword-less head.
		Keyword *Leaf
		Body    []Node
	}
)

type (
	// Node is an element of a clause body.
	Node interface {
		node()
	}

	// Leaf is a single structural token together with its comments.
	Leaf struct {
		Token lexer.Token
		// Leading comments sit on their own lines before the token.
		Leading []lexer.Token
		// Trailing comments start on the line the token ends on.
		Trailing []lexer.Token
	}

	// Group is a parenthesized region that is not a subquery.
	Group struct {
		Open  *Leaf
		Nodes []Node
		Close *Leaf
	}

	// Subquery is a parenthesized statement.
	Subquery struct {
		Open      *Leaf
		Statement *Statement
		Close     *Leaf
	}

	// Case is a CASE ... END expression.
	Case struct {
		Case       *Leaf
		Operand    []Node
		Whens      []*When
		Else       *Leaf
		ElseResult []Node
		End        *Leaf
	}

	// When is a single WHEN ... THEN ... branch of a CASE expression.
	When struct {
		When      *Leaf
		Condition []Node
		Then      *Leaf
		Result    []Node
	}

	// Raw is a subtree kept verbatim. Text spans from the first token of Open
	// to the last token of Close, comments inside it included.
	Raw struct {
		Open  *Leaf
		Text  string
		Close *Leaf
		Err   error
	}
)

func (*Leaf) node()     {}
func (*Group) node()    {}
func (*Subquery) node() {}
func (*Case) node()     {}
func (*Raw) node()      {}

// First returns the first leaf of a node.
func First(n Node) *Leaf {
	switch n := n.(type) {
	case *Leaf:
		return n
	case *Group:
		return n.Open
	case *Subquery:
		return n.Open
	case *Case:
		return n.Case
	case *Raw:
		return n.Open
	}

	return nil
}

// FirstOf returns the first leaf of a node list, or nil when it is empty.
func FirstOf(nodes []Node) *Leaf {
	if len(nodes) == 0 {
		return nil
	}

	return First(nodes[0])
}

// IsKeyword reports whether n is a leaf holding the keyword kw.
func IsKeyword(n Node, kw string) bool {
	leaf, ok := n.(*Leaf)
	return ok && leaf.Token.Is(kw)
}

// IsPunct reports whether n is a leaf holding the punctuation p.
func IsPunct(n Node, p string) bool {
	leaf, ok := n.(*Leaf)
	return ok && leaf.Token.IsPunct(p)
}

// Tokens returns every structural token of the statement in source order.
// Comments are not included.
func (s *Statement) Tokens() []lexer.Token {
	var toks []lexer.Token
	s.Walk(func(l *Leaf) { toks = append(toks, l.Token) })
	return toks
}

// Walk calls fn for each leaf of the statement in source order. Raw subtrees
// contribute only their outer leaves.
func (s *Statement) Walk(fn func(*Leaf)) {
	if s.With != nil {
		fn(s.With.With)
		if s.With.Recursive != nil {
			fn(s.With.Recursive)
		}

		for _, cte := range s.With.CTEs {
			if cte.Comma != nil {
				fn(cte.Comma)
			}
			fn(cte.Name)
			if cte.Columns != nil {
				walk(cte.Columns, fn)
			}
			fn(cte.As)
			walk(cte.Body, fn)
		}
	}

	for _, br := range s.Branches {
		if br.Op != nil {
			fn(br.Op)
		}

		for _, c := range br.Clauses {
			if c.Keyword != nil {
				fn(c.Keyword)
			}
			walkAll(c.Body, fn)
		}
	}

	if s.Terminator != nil {
		fn(s.Terminator)
	}
}

func walkAll(nodes []Node, fn func(*Leaf)) {
	for _, n := range nodes {
		walk(n, fn)
	}
}

func walk(n Node, fn func(*Leaf)) {
	switch n := n.(type) {
	case *Leaf:
		fn(n)
	case *Group:
		fn(n.Open)
		walkAll(n.Nodes, fn)
		fn(n.Close)
	case *Subquery:
		fn(n.Open)
		n.Statement.Walk(fn)
		fn(n.Close)
	case *Case:
		fn(n.Case)
		walkAll(n.Operand, fn)
		for _, w := range n.Whens {
			fn(w.When)
			walkAll(w.Condition, fn)
			fn(w.Then)
			walkAll(w.Result, fn)
		}
		if n.Else != nil {
			fn(n.Else)
			walkAll(n.ElseResult, fn)
		}
		fn(n.End)
	case *Raw:
		fn(n.Open)
		if n.Close != n.Open {
			fn(n.Close)
		}
	}
}
