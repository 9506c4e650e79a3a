package parser

import (
	"strings"

	"github.com/pseudomuto/sqlriver/pkg/lexer"
)

// builder turns the leaves of a statement into clauses, groups and CASE
// expressions. It records recoverable problems as warnings.
type builder struct {
	src      string
	maxDepth int
	warnings []error
}

// statement segments leaves at the given nesting depth. Only unbalanced
// parentheses and malformed WITH lists are reported as errors; everything
// else is recovered from locally.
func (b *builder) statement(leaves []*Leaf, depth int) (*Statement, error) {
	nodes, err := b.tree(leaves, depth)
	if err != nil {
		return nil, err
	}

	stmt := new(Statement)
	if len(nodes) > 0 && IsKeyword(nodes[0], "WITH") {
		if stmt.With, nodes, err = b.with(nodes); err != nil {
			return nil, err
		}
	}

	stmt.Branches = branches(nodes)
	return stmt, nil
}

// tree nests parenthesized regions. Groups that open with a statement keyword
// become subqueries.
func (b *builder) tree(leaves []*Leaf, depth int) ([]Node, error) {
	var nodes []Node

	for i := 0; i < len(leaves); i++ {
		leaf := leaves[i]
		if leaf.Token.IsPunct(")") {
			return nil, ambiguity(leaf.Token.Pos, "unexpected %q", ")")
		}

		if !leaf.Token.IsPunct("(") {
			nodes = append(nodes, leaf)
			continue
		}

		j := closing(leaves, i)
		if j < 0 {
			return nil, ambiguity(leaf.Token.Pos, "unclosed %q", "(")
		}

		node, err := b.group(leaves[i], leaves[i+1:j], leaves[j], depth+1)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, node)
		i = j
	}

	return b.cases(nodes, depth), nil
}

func (b *builder) group(open *Leaf, inner []*Leaf, end *Leaf, depth int) (Node, error) {
	if depth > b.maxDepth {
		return b.raw(open, end, depthExceeded(open.Token.Pos, b.maxDepth)), nil
	}

	if len(inner) > 0 && startsStatement(inner[0].Token) {
		stmt, err := b.statement(inner, depth)
		if err != nil {
			// The parentheses around the subquery are balanced, so the damage
			// stays inside it.
			return b.raw(open, end, err), nil
		}

		return &Subquery{Open: open, Statement: stmt, Close: end}, nil
	}

	nodes, err := b.tree(inner, depth)
	if err != nil {
		return nil, err
	}

	return &Group{Open: open, Nodes: nodes, Close: end}, nil
}

func (b *builder) raw(open, end *Leaf, err error) *Raw {
	b.warnings = append(b.warnings, err)

	return &Raw{
		Open:  open,
		Text:  b.src[open.Token.Pos.Offset:end.Token.End.Offset],
		Close: end,
		Err:   err,
	}
}

// closing returns the index of the parenthesis matching the one at i, or -1.
func closing(leaves []*Leaf, i int) int {
	depth := 0
	for j := i; j < len(leaves); j++ {
		switch {
		case leaves[j].Token.IsPunct("("):
			depth++
		case leaves[j].Token.IsPunct(")"):
			depth--
			if depth == 0 {
				return j
			}
		}
	}

	return -1
}

func startsStatement(tok lexer.Token) bool {
	if tok.Kind != lexer.Keyword {
		return false
	}

	switch tok.Upper() {
	case "SELECT", "WITH", "VALUES", "INSERT INTO", "UPDATE", "DELETE":
		return true
	}

	return false
}

// cases folds CASE ... END runs into Case nodes. A CASE without a matching END
// or with an unexpected branch layout is left as plain leaves.
func (b *builder) cases(nodes []Node, depth int) []Node {
	out := make([]Node, 0, len(nodes))

	for i := 0; i < len(nodes); i++ {
		if !IsKeyword(nodes[i], "CASE") {
			out = append(out, nodes[i])
			continue
		}

		j := caseEnd(nodes, i)
		if j < 0 {
			out = append(out, nodes[i])
			continue
		}

		open, end := nodes[i].(*Leaf), nodes[j].(*Leaf)
		if depth+1 > b.maxDepth {
			out = append(out, b.raw(open, end, depthExceeded(open.Token.Pos, b.maxDepth)))
			i = j
			continue
		}

		c := b.caseExpr(open, nodes[i+1:j], end, depth+1)
		if c == nil {
			out = append(out, nodes[i])
			continue
		}

		out = append(out, c)
		i = j
	}

	return out
}

func caseEnd(nodes []Node, i int) int {
	depth := 0
	for j := i; j < len(nodes); j++ {
		switch {
		case IsKeyword(nodes[j], "CASE"):
			depth++
		case IsKeyword(nodes[j], "END"):
			depth--
			if depth == 0 {
				return j
			}
		}
	}

	return -1
}

func (b *builder) caseExpr(open *Leaf, body []Node, end *Leaf, depth int) *Case {
	var (
		c      = &Case{Case: open, End: end}
		when   *When
		target = &c.Operand
		nested int
	)

	for _, n := range body {
		switch {
		case IsKeyword(n, "CASE"):
			nested++
		case IsKeyword(n, "END"):
			nested--
		}

		leaf, _ := n.(*Leaf)
		switch {
		case nested > 0 || leaf == nil:
			*target = append(*target, n)
		case leaf.Token.Is("WHEN"):
			if c.Else != nil || (when != nil && when.Then == nil) {
				return nil
			}
			when = &When{When: leaf}
			c.Whens = append(c.Whens, when)
			target = &when.Condition
		case leaf.Token.Is("THEN"):
			if when == nil || when.Then != nil {
				return nil
			}
			when.Then = leaf
			target = &when.Result
		case leaf.Token.Is("ELSE"):
			if when == nil || when.Then == nil || c.Else != nil {
				return nil
			}
			c.Else = leaf
			target = &c.ElseResult
		default:
			*target = append(*target, n)
		}
	}

	if len(c.Whens) == 0 || when.Then == nil {
		return nil
	}

	c.Operand = b.cases(c.Operand, depth)
	for _, w := range c.Whens {
		w.Condition = b.cases(w.Condition, depth)
		w.Result = b.cases(w.Result, depth)
	}
	c.ElseResult = b.cases(c.ElseResult, depth)

	return c
}

// with consumes the WITH list at the head of nodes and returns the rest.
func (b *builder) with(nodes []Node) (*With, []Node, error) {
	w := &With{With: nodes[0].(*Leaf)}
	i := 1

	if i < len(nodes) && IsKeyword(nodes[i], "RECURSIVE") {
		w.Recursive = nodes[i].(*Leaf)
		i++
	}

	malformed := func() (*With, []Node, error) {
		pos := w.With.Token.Pos
		if i < len(nodes) {
			pos = First(nodes[i]).Token.Pos
		}
		return nil, nil, ambiguity(pos, "malformed WITH clause")
	}

	for {
		cte := new(CTE)
		if len(w.CTEs) > 0 {
			cte.Comma = nodes[i].(*Leaf)
			i++
		}

		if i >= len(nodes) || !isName(nodes[i]) {
			return malformed()
		}
		cte.Name = nodes[i].(*Leaf)
		i++

		if i < len(nodes) {
			if g, ok := nodes[i].(*Group); ok {
				cte.Columns = g
				i++
			}
		}

		if i >= len(nodes) || !IsKeyword(nodes[i], "AS") {
			return malformed()
		}
		cte.As = nodes[i].(*Leaf)
		i++

		if i >= len(nodes) {
			return malformed()
		}
		body, ok := nodes[i].(*Subquery)
		if !ok {
			return malformed()
		}
		cte.Body = body
		i++

		w.CTEs = append(w.CTEs, cte)
		if i >= len(nodes) || !IsPunct(nodes[i], ",") {
			break
		}
	}

	return w, nodes[i:], nil
}

func isName(n Node) bool {
	leaf, ok := n.(*Leaf)
	return ok && leaf.Token.Kind == lexer.Identifier
}

// branches splits a statement body at set operators and each branch into
// clauses.
func branches(nodes []Node) []*Branch {
	var (
		out    []*Branch
		branch = new(Branch)
		clause *Clause
	)

	for _, n := range nodes {
		leaf, _ := n.(*Leaf)
		if leaf != nil && leaf.Token.Kind == lexer.Keyword {
			text := leaf.Token.Upper()
			if setOperators[text] {
				out = append(out, branch)
				branch = &Branch{Op: leaf}
				clause = nil
				continue
			}

			if kind, ok := clauseKind(text); ok {
				clause = &Clause{Kind: kind, Keyword: leaf}
				branch.Clauses = append(branch.Clauses, clause)
				continue
			}
		}

		if clause == nil {
			clause = &Clause{Kind: ClauseOther}
			branch.Clauses = append(branch.Clauses, clause)
			if leaf != nil && leaf.Token.Kind == lexer.Keyword {
				clause.Keyword = leaf
				continue
			}
		}

		clause.Body = append(clause.Body, n)
	}

	return append(out, branch)
}

func clauseKind(text string) (ClauseKind, bool) {
	if text == "JOIN" || strings.HasSuffix(text, " JOIN") {
		return ClauseJoin, true
	}

	kind, ok := clauseKeywords[text]
	return kind, ok
}
