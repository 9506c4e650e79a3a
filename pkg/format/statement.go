package format

import (
	"github.com/pseudomuto/sqlriver/pkg/parser"
)

// statement lays out stmt with its clause keywords ending at the river of
// depth.
func (p *printer) statement(stmt *parser.Statement, depth int) {
	p.enter(depth)

	if stmt.With != nil {
		p.with(stmt.With, depth)
	}

	river := p.opts.river(depth)
	join := joinEdge(stmt, river, river-p.opts.River)

	for _, br := range stmt.Branches {
		if br.Op != nil {
			p.keywordLine(br.Op, river)
		}

		for _, c := range br.Clauses {
			p.clause(c, depth, join)
		}
	}
}

// keywordLine starts a line with kw ending at edge, or at its own width when
// it is longer, and returns the content column.
func (p *printer) keywordLine(kw *parser.Leaf, edge int) int {
	w := width(kw.Token.Text)
	end := max(edge, w)

	p.startLine(end-w, kw)
	p.leaf(kw, end+1)

	return end + 1
}

func (p *printer) clause(c *parser.Clause, depth, join int) {
	river := p.opts.river(depth)

	if c.Keyword == nil {
		p.startLine(river+1, parser.FirstOf(c.Body))
		p.nodes(c.Body, depth, river+1)
		return
	}

	if c.Kind == parser.ClauseJoin {
		p.join(c, depth, join)
		return
	}

	content := p.keywordLine(c.Keyword, river)

	switch c.Kind {
	case parser.ClauseSelect,
		parser.ClauseGroupBy,
		parser.ClauseSet,
		parser.ClauseValues,
		parser.ClauseReturning:
		p.list(c.Body, depth, content)
	case parser.ClauseWhere, parser.ClauseHaving:
		p.predicates(c.Body, depth, content-1)
	default:
		p.nodes(c.Body, depth, content)
	}
}

// predicates writes the first predicate inline and each further top-level
// AND/OR predicate on its own line with the operator ending at edge.
func (p *printer) predicates(body []parser.Node, depth, edge int) {
	preds, ops := splitPredicates(body)

	for i, pred := range preds {
		if i > 0 {
			op := ops[i-1]
			p.startLine(edge-width(op.Token.Text), op)
			p.leaf(op, edge+1)
		}

		p.nodes(pred, depth, edge+1)
	}
}

// splitPredicates splits body at top-level AND/OR. The AND of a BETWEEN
// range is not a split point.
func splitPredicates(body []parser.Node) ([][]parser.Node, []*parser.Leaf) {
	var (
		preds   [][]parser.Node
		ops     []*parser.Leaf
		cur     []parser.Node
		between bool
	)

	for _, n := range body {
		switch {
		case parser.IsKeyword(n, "BETWEEN"):
			between = true
		case parser.IsKeyword(n, "AND") && between:
			between = false
		case parser.IsKeyword(n, "AND"), parser.IsKeyword(n, "OR"):
			preds = append(preds, cur)
			ops = append(ops, n.(*parser.Leaf))
			cur = nil
			continue
		}

		cur = append(cur, n)
	}

	return append(preds, cur), ops
}

func (p *printer) nodes(nodes []parser.Node, depth, cont int) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *parser.Leaf:
			p.leaf(n, cont)
		case *parser.Group:
			p.group(n, depth, cont)
		case *parser.Subquery:
			p.subquery(n, depth, cont)
		case *parser.Case:
			p.caseExpr(n, depth, cont)
		case *parser.Raw:
			p.raw(n, cont)
		}
	}
}

func (p *printer) group(g *parser.Group, depth, cont int) {
	p.leaf(g.Open, cont)
	p.nodes(g.Nodes, depth, cont)
	p.leaf(g.Close, cont)
}

// subquery ends the line at the opening parenthesis, lays the body out one
// level deeper and puts the closing parenthesis under the opening one.
func (p *printer) subquery(sq *parser.Subquery, depth, cont int) {
	col := p.leaf(sq.Open, cont)
	p.statement(sq.Statement, depth+1)
	p.startLine(col, sq.Close)
	p.leaf(sq.Close, cont)
}

func (p *printer) raw(r *parser.Raw, cont int) {
	p.before(r.Open, cont)
	p.text(r.Text)
	p.last = &r.Close.Token
	p.trailing(r.Close)
}
