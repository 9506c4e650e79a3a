package format

import (
	"github.com/pseudomuto/sqlriver/pkg/parser"
)

// with writes the CTE list. WITH ends at the river, every body sits one level
// deeper, and further CTEs follow a blank line as ", name AS (".
func (p *printer) with(w *parser.With, depth int) {
	river := p.opts.river(depth)

	for i, cte := range w.CTEs {
		if i == 0 {
			content := p.keywordLine(w.With, river)
			if w.Recursive != nil {
				p.leaf(w.Recursive, content)
			}
		} else {
			p.hoist(cte.Comma, river-1)
			p.blank()
			p.startLine(river-1, cte.Comma, cte.Name)
			p.punct(cte.Comma)
		}

		p.leaf(cte.Name, river+1)
		if cte.Columns != nil {
			p.group(cte.Columns, depth, river+1)
		}
		p.leaf(cte.As, river+1)
		p.subquery(cte.Body, depth, river+1)
	}
}
