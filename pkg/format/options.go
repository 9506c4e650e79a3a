package format

import (
	"github.com/pseudomuto/sqlriver/pkg/parser"
)

// FormatterOptions controls formatting behavior
type FormatterOptions struct {
	// River is the column, counted from zero, where top-level clause keywords
	// end. Content starts one column past it.
	River int
	// NestOffset is how far the river moves right for each level of nesting.
	NestOffset int
	// UppercaseKeywords whether to uppercase SQL keywords
	UppercaseKeywords bool
	// Terminate adds a terminator to statements that have none.
	Terminate bool
	// MaxDepth bounds nesting before subtrees are kept verbatim.
	MaxDepth int
}

// Defaults are the standard formatting options.
var Defaults = DefaultOptions()

// DefaultOptions returns standard formatting options
func DefaultOptions() *FormatterOptions {
	return &FormatterOptions{
		River:             9,
		NestOffset:        10,
		UppercaseKeywords: true,
		MaxDepth:          parser.DefaultMaxDepth,
	}
}

// river returns the river column at the given nesting depth.
func (o *FormatterOptions) river(depth int) int {
	return o.River + depth*o.NestOffset
}

func (o *FormatterOptions) normalize() *FormatterOptions {
	n := *o
	defaults := DefaultOptions()

	if n.River < 1 {
		n.River = defaults.River
	}
	if n.NestOffset < 1 {
		n.NestOffset = defaults.NestOffset
	}
	if n.MaxDepth < 1 {
		n.MaxDepth = defaults.MaxDepth
	}

	return &n
}
