package format

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pseudomuto/sqlriver/pkg/lexer"
	"github.com/pseudomuto/sqlriver/pkg/parser"
)

// printer accumulates output lines and tracks the display column of the line
// being built.
type printer struct {
	opts  *FormatterOptions
	lines []string
	line  strings.Builder
	col   int

	// last is the previous token on the current line, used for spacing.
	last *lexer.Token
	// glue suppresses the space before the next token (after a unary sign).
	glue bool
	// broken is set once a line comment ends the current line.
	broken bool

	// emitted records leaves whose leading comments were already written.
	emitted map[*parser.Leaf]bool
	// depth is the deepest nesting level rendered so far.
	depth int
}

func newPrinter(opts *FormatterOptions) *printer {
	return &printer{
		opts:    opts,
		emitted: make(map[*parser.Leaf]bool),
	}
}

func (p *printer) String() string {
	p.newline()
	return strings.Join(p.lines, "\n")
}

func (p *printer) enter(depth int) {
	p.depth = max(p.depth, depth)
}

// newline finishes the current line. Blank lines are dropped.
func (p *printer) newline() {
	if text := strings.TrimRight(p.line.String(), " "); text != "" {
		p.lines = append(p.lines, text)
	}

	p.line.Reset()
	p.col = 0
	p.last = nil
	p.glue = false
	p.broken = false
}

// blank emits an empty line.
func (p *printer) blank() {
	p.newline()
	p.lines = append(p.lines, "")
}

// pad moves to col with spaces. It does nothing if the line is already past it.
func (p *printer) pad(col int) {
	if col > p.col {
		p.line.WriteString(strings.Repeat(" ", col-p.col))
		p.col = col
	}
}

// text writes s verbatim. Embedded newlines are kept and the column continues
// from the last line of s.
func (p *printer) text(s string) {
	parts := strings.Split(s, "\n")
	p.line.WriteString(parts[0])
	p.col += runewidth.StringWidth(parts[0])

	for _, part := range parts[1:] {
		p.lines = append(p.lines, p.line.String())
		p.line.Reset()
		p.line.WriteString(part)
		p.col = runewidth.StringWidth(part)
	}
}

// startLine begins a new line at col. Leading comments of the anchors are
// written first, each on its own line at the same column.
func (p *printer) startLine(col int, anchors ...*parser.Leaf) {
	p.newline()

	for _, a := range anchors {
		if a == nil || p.emitted[a] {
			continue
		}

		p.emitted[a] = true
		for _, c := range a.Leading {
			p.pad(col)
			p.text(c.Text)
			p.newline()
		}
	}

	p.pad(col)
}

// leaf writes a token with its comments and returns the column it starts at.
// cont is the column used if the token has to move to a new line.
func (p *printer) leaf(l *parser.Leaf, cont int) int {
	p.before(l, cont)

	start := p.col
	p.token(l.Token)
	p.trailing(l)

	return start
}

// before writes the leading comments of l and the separator between the
// previous token and l.
func (p *printer) before(l *parser.Leaf, cont int) {
	if !p.emitted[l] && len(l.Leading) > 0 {
		p.emitted[l] = true
		p.newline()
		for _, c := range l.Leading {
			p.pad(cont)
			p.text(c.Text)
			p.newline()
		}
		p.pad(cont)
	}

	if p.broken {
		p.newline()
		p.pad(cont)
	}

	if p.last != nil && p.space(*p.last, l.Token) {
		p.line.WriteByte(' ')
		p.col++
	}
	p.glue = false
}

func (p *printer) token(tok lexer.Token) {
	text := tok.Text
	if tok.Kind == lexer.Keyword {
		text = p.keyword(text)
	}

	unary := isSign(tok) && (p.last == nil || opens(*p.last))
	p.text(text)
	p.last = &tok
	p.glue = unary
}

// trailing writes the comments that follow l on its line.
func (p *printer) trailing(l *parser.Leaf) {
	for i := range l.Trailing {
		c := l.Trailing[i]
		p.line.WriteByte(' ')
		p.col++
		p.text(c.Text)
		p.last = &c

		if c.IsLineComment() {
			p.broken = true
		}
	}
}

// punct writes a separator whose comments are handled by the caller.
func (p *printer) punct(l *parser.Leaf) {
	p.text(l.Token.Text)
	p.last = &l.Token
	p.glue = false
}

func (p *printer) keyword(kw string) string {
	if p.opts.UppercaseKeywords {
		return strings.ToUpper(kw)
	}
	return strings.ToLower(kw)
}

// space reports whether a space separates prev and next on one line.
func (p *printer) space(prev, next lexer.Token) bool {
	switch {
	case merges(prev.Text, next.Text):
		return true
	case p.glue:
		return false
	case prev.Kind == lexer.Comment:
		return true
	case next.Kind == lexer.Punctuation && strings.Contains(",;.)]:", next.Text):
		return false
	case prev.Kind == lexer.Punctuation && strings.Contains("([.:", prev.Text):
		return false
	case next.Text == "::" || prev.Text == "::":
		return false
	case next.IsPunct("(") || next.IsPunct("["):
		if prev.Kind == lexer.Identifier || prev.IsPunct(")") || prev.IsPunct("]") {
			return next.Space
		}
		return true
	}

	return true
}

// merges reports whether a and b would lex as a comment opener when joined.
func merges(a, b string) bool {
	return (strings.HasSuffix(a, "-") && strings.HasPrefix(b, "-")) ||
		(strings.HasSuffix(a, "/") && strings.HasPrefix(b, "*"))
}

func isSign(tok lexer.Token) bool {
	if tok.Kind != lexer.Operator {
		return false
	}

	switch tok.Text {
	case "-", "+", "~":
		return true
	}

	return false
}

// opens reports whether an operand is expected after tok, making a following
// sign unary.
func opens(tok lexer.Token) bool {
	switch tok.Kind {
	case lexer.Operator:
		return true
	case lexer.Punctuation:
		return tok.Text == "(" || tok.Text == "," || tok.Text == "["
	case lexer.Keyword:
		switch tok.Upper() {
		case "END", "NULL", "TRUE", "FALSE", "FIRST", "LAST", "ROW", "CURRENT", "PRECEDING", "FOLLOWING":
			return false
		}
		return true
	}

	return false
}

func width(s string) int {
	return runewidth.StringWidth(s)
}
