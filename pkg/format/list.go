package format

import (
	"github.com/pseudomuto/sqlriver/pkg/parser"
)

// list writes comma-first items: the first on the current line, each further
// item on its own line as ", item" with the item at content.
func (p *printer) list(body []parser.Node, depth, content int) {
	items, seps := splitList(body)

	for i, item := range items {
		if i > 0 {
			sep := seps[i-1]
			p.hoist(sep, content-2)
			p.startLine(content-2, sep, parser.FirstOf(item))
			p.punct(sep)
		}

		p.nodes(item, depth, content)
	}
}

// splitList splits body at top-level commas.
func splitList(body []parser.Node) ([][]parser.Node, []*parser.Leaf) {
	var (
		items [][]parser.Node
		seps  []*parser.Leaf
		cur   []parser.Node
	)

	for _, n := range body {
		if parser.IsPunct(n, ",") {
			items = append(items, cur)
			seps = append(seps, n.(*parser.Leaf))
			cur = nil
			continue
		}

		cur = append(cur, n)
	}

	return append(items, cur), seps
}

// hoist writes the trailing comments of a separator at the end of the current
// line. After a line comment they move to their own line at col.
func (p *printer) hoist(sep *parser.Leaf, col int) {
	for i := range sep.Trailing {
		c := sep.Trailing[i]

		if p.broken {
			p.newline()
			p.pad(col)
		} else {
			p.line.WriteByte(' ')
			p.col++
		}

		p.text(c.Text)
		p.last = &c
		p.broken = c.IsLineComment()
	}
}
