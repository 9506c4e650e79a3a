package format

import (
	"github.com/pseudomuto/sqlriver/pkg/parser"
)

const (
	caseBranchOffset  = 5
	caseEndOffset     = 4
	caseContentOffset = 10
)

// caseExpr writes a CASE expression starting where the current line is.
// WHEN, THEN and ELSE start caseBranchOffset columns past CASE and END one
// column to their left. A CASE without operand keeps its first WHEN on the
// CASE line unless a line comment ends it.
func (p *printer) caseExpr(c *parser.Case, depth, cont int) {
	start := p.leaf(c.Case, cont)
	depth++
	p.enter(depth)

	var (
		branch  = start + caseBranchOffset
		content = start + caseContentOffset
	)

	p.nodes(c.Operand, depth, content)

	for i, w := range c.Whens {
		if i > 0 || len(c.Operand) > 0 || p.broken {
			p.startLine(branch, w.When)
		}
		p.leaf(w.When, content)
		p.nodes(w.Condition, depth, content)

		p.startLine(branch, w.Then)
		p.leaf(w.Then, content)
		p.nodes(w.Result, depth, content)
	}

	if c.Else != nil {
		p.startLine(branch, c.Else)
		p.leaf(c.Else, content)
		p.nodes(c.ElseResult, depth, content)
	}

	p.startLine(start+caseEndOffset, c.End)
	p.leaf(c.End, cont)
}
