package parser

import (
	"io"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlriver/pkg/lexer"
)

// DefaultMaxDepth is the nesting depth past which subtrees are kept verbatim.
const DefaultMaxDepth = 64

type (
	// Options controls how input is segmented.
	Options struct {
		// MaxDepth bounds parenthesis and CASE nesting. Deeper subtrees are kept
		// verbatim and reported as warnings. Values below one use
		// DefaultMaxDepth.
		MaxDepth int
	}

	// Parser segments SQL text into documents.
	Parser struct {
		maxDepth int
	}
)

// New creates a Parser with the given options.
func New(opts Options) *Parser {
	if opts.MaxDepth < 1 {
		opts.MaxDepth = DefaultMaxDepth
	}

	return &Parser{maxDepth: opts.MaxDepth}
}

// Parse reads all SQL from r and segments it.
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read SQL")
	}

	return p.ParseString(string(data))
}

// ParseString segments sql into statements.
//
// The only error returned is a tokenization failure (see lexer.ErrTokenize).
// Structural problems are recovered from and listed in Document.Warnings.
func (p *Parser) ParseString(sql string) (*Document, error) {
	tokens, err := lexer.Tokenize(sql)
	if err != nil {
		return nil, err
	}

	chunks, orphans := split(tokens)
	doc := &Document{Comments: orphans}

	for _, chunk := range chunks {
		b := &builder{src: sql, maxDepth: p.maxDepth}
		doc.Statements = append(doc.Statements, b.topLevel(chunk))
		doc.Warnings = append(doc.Warnings, b.warnings...)
	}

	return doc, nil
}

// topLevel builds a statement from a chunk produced by split. A chunk that
// cannot be segmented is kept verbatim, comments included.
func (b *builder) topLevel(chunk []lexer.Token) *Statement {
	leaves, footer := attach(chunk)

	var term *Leaf
	if n := len(leaves); n > 0 && leaves[n-1].Token.IsPunct(";") {
		term = leaves[n-1]
		leaves = leaves[:n-1]
	}

	stmt, err := b.statement(leaves, 0)
	if err != nil {
		b.warnings = []error{err}

		first, last := chunk[0], chunk[len(chunk)-1]
		return &Statement{Raw: b.src[first.Pos.Offset:last.End.Offset], Err: err}
	}

	stmt.Terminator = term
	stmt.Footer = footer
	return stmt
}

// Parse reads SQL from r using the default options.
func Parse(r io.Reader) (*Document, error) {
	return New(Options{}).Parse(r)
}

// ParseString segments sql using the default options.
//
// Example:
//
//	doc, err := parser.ParseString("SELECT 1; SELECT 2;")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(len(doc.Statements)) // 2
func ParseString(sql string) (*Document, error) {
	return New(Options{}).ParseString(sql)
}
