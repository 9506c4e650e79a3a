package format

import (
	"github.com/pseudomuto/sqlriver/pkg/parser"
)

// joinEdge returns the column JOIN keywords end at. It is the river, pushed
// right when the longest JOIN keyword of the statement does not fit before it.
func joinEdge(stmt *parser.Statement, river, base int) int {
	longest := 0
	for _, br := range stmt.Branches {
		for _, c := range br.Clauses {
			if c.Kind == parser.ClauseJoin {
				longest = max(longest, width(c.Keyword.Token.Text))
			}
		}
	}

	return max(river, base+longest)
}

// join writes the JOIN keyword, its target and the first ON predicate on one
// line. Further predicates get their own lines with the operator ending where
// ON ends.
func (p *printer) join(c *parser.Clause, depth, edge int) {
	p.startLine(edge-width(c.Keyword.Token.Text), c.Keyword)
	p.leaf(c.Keyword, edge+1)

	i := indexKeyword(c.Body, "ON")
	if i < 0 {
		p.nodes(c.Body, depth, edge+1)
		return
	}

	p.nodes(c.Body[:i], depth, edge+1)

	on := c.Body[i].(*parser.Leaf)
	start := p.leaf(on, edge+1)
	p.predicates(c.Body[i+1:], depth, start+width(on.Token.Text))
}

func indexKeyword(nodes []parser.Node, kw string) int {
	for i, n := range nodes {
		if parser.IsKeyword(n, kw) {
			return i
		}
	}

	return -1
}
