package format

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlriver/pkg/lexer"
	"github.com/pseudomuto/sqlriver/pkg/parser"
)

// Formatter renders parsed documents in river layout. A Formatter holds no
// mutable state and may be shared between goroutines.
type Formatter struct {
	options *FormatterOptions
}

// New creates a new formatter with the given options. Missing numeric options
// take their default values.
func New(options *FormatterOptions) *Formatter {
	if options == nil {
		options = DefaultOptions()
	}

	return &Formatter{options: options.normalize()}
}

// NewDefault creates a formatter with default options
func NewDefault() *Formatter {
	return New(DefaultOptions())
}

// Options returns a copy of the formatter's options.
func (f *Formatter) Options() FormatterOptions {
	return *f.options
}

// Format writes doc to w. Statements are separated by a blank line and the
// output ends with a newline unless doc is empty.
func (f *Formatter) Format(w io.Writer, doc *parser.Document) error {
	out := f.Document(doc)
	if _, err := io.WriteString(w, out); err != nil {
		return errors.Wrap(err, "failed to write formatted SQL")
	}

	return nil
}

// Document renders doc as a string.
func (f *Formatter) Document(doc *parser.Document) string {
	var parts []string
	for _, stmt := range doc.Statements {
		parts = append(parts, f.Statement(stmt))
	}

	if len(parts) == 0 {
		for _, c := range doc.Comments {
			parts = append(parts, c.Text)
		}

		if len(parts) == 0 {
			return ""
		}

		return strings.Join(parts, "\n") + "\n"
	}

	return strings.Join(parts, "\n\n") + "\n"
}

// Statement renders a single statement without a trailing newline. Raw
// statements are returned verbatim.
func (f *Formatter) Statement(stmt *parser.Statement) string {
	if stmt.Raw != "" {
		return stmt.Raw
	}

	p := newPrinter(f.options)
	p.statement(stmt, 0)

	col := f.options.river(p.depth)
	term := stmt.Terminator
	if term == nil && f.options.Terminate {
		term = &parser.Leaf{Token: lexer.Token{Kind: lexer.Punctuation, Text: ";"}}
	}

	if term != nil {
		p.startLine(col, term)
		p.leaf(term, col)
	}

	for _, c := range stmt.Footer {
		p.startLine(col)
		p.text(c.Text)
	}

	return p.String()
}

// Source parses sql and formats it in one step.
//
// If sql cannot be tokenized the error wraps lexer.ErrTokenize and sql is
// returned unchanged so callers can pass it through. Structural problems are
// returned as warnings alongside the formatted text.
func (f *Formatter) Source(sql string) (string, []error, error) {
	doc, err := parser.New(parser.Options{MaxDepth: f.options.MaxDepth}).ParseString(sql)
	if err != nil {
		return sql, nil, err
	}

	return f.Document(doc), doc.Warnings, nil
}

// Format writes doc to w using the given options.
func Format(w io.Writer, opts *FormatterOptions, doc *parser.Document) error {
	return New(opts).Format(w, doc)
}

// String formats sql with default options. A terminator line is only written
// for statements that end with one in sql; use FormatterOptions.Terminate to
// add it everywhere.
//
// Example:
//
//	out, err := format.String("select id,name from t where a=1")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(out)
//
// Output:
//
//	   SELECT id
//	        , name
//	     FROM t
//	    WHERE a = 1
//
// With Terminate set the same input ends with a terminator on its own line:
//
//	   SELECT id
//	        , name
//	     FROM t
//	    WHERE a = 1
//	        ;
func String(sql string) (string, error) {
	out, _, err := NewDefault().Source(sql)
	return out, err
}
