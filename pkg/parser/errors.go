package parser

import (
	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlriver/pkg/lexer"
)

var (
	// ErrStructuralAmbiguity is reported when a statement cannot be segmented,
	// e.g. unbalanced parentheses or a malformed WITH list. The statement is
	// kept verbatim.
	ErrStructuralAmbiguity = errors.New("structural ambiguity")

	// ErrDepthLimitExceeded is reported when nesting goes past the configured
	// maximum depth. The offending subtree is kept verbatim.
	ErrDepthLimitExceeded = errors.New("depth limit exceeded")
)

func ambiguity(pos lexer.Position, format string, args ...any) error {
	return errors.Wrapf(ErrStructuralAmbiguity, "line %d, column %d: "+format, append([]any{pos.Line, pos.Column}, args...)...)
}

func depthExceeded(pos lexer.Position, limit int) error {
	return errors.Wrapf(ErrDepthLimitExceeded, "line %d, column %d: nesting deeper than %d", pos.Line, pos.Column, limit)
}
