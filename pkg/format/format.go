// Package format implements the query-driven formatting engine: it tags
// syntax-tree nodes with formatting directives by running a rule query
// over the tree, renders the tree in document order into canonical
// output text, and verifies that the result is a fixed point of the
// whole pipeline.
//
// The engine is synchronous and performs no I/O: source text and rule
// set come in by value, formatted text goes out by value. Concurrent
// calls are independent as long as the shared rules.Language is treated
// as read-only, which it is by construction.
package format

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/Sumatoshi-tech/zeekfmt/pkg/rules"
	"github.com/Sumatoshi-tech/zeekfmt/pkg/syntax"
)

// Options configures one formatting call.
type Options struct {
	// Language is the compiled rule set and grammar to format with.
	Language *rules.Language

	// SkipIdempotence omits the second-pass fixed-point check.
	SkipIdempotence bool

	// TolerateParsingErrors renders unparseable regions verbatim instead
	// of failing the pass.
	TolerateParsingErrors bool

	// IndentUnit overrides the language's indent string when non-empty.
	IndentUnit string
}

// errNoLanguage indicates a Format call without a rule set.
var errNoLanguage = errors.New("format: options carry no language")

// Format produces canonical formatted text for source. On success the
// output is complete and directive-consistent; on failure the returned
// error is always a *Error from the closed taxonomy and no partial
// output is returned.
func Format(ctx context.Context, source []byte, opts Options) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = newErrorDetail(KindUnknown, "internal panic", fmt.Sprint(r))
		}
	}()

	if opts.Language == nil {
		return nil, classify(errNoLanguage)
	}

	if !utf8.Valid(source) {
		return nil, newError(KindEncoding, "source is not valid UTF-8")
	}

	first, err := runPass(ctx, source, opts)
	if err != nil {
		return nil, classify(err)
	}

	if !opts.SkipIdempotence {
		if err := verifyIdempotence(ctx, first, opts); err != nil {
			return nil, classify(err)
		}
	}

	return first, nil
}

// runPass executes one complete pipeline pass: parse, collect captures,
// resolve directives, render. Each pass builds and discards its own tree.
func runPass(ctx context.Context, source []byte, opts Options) ([]byte, error) {
	parser := syntax.NewParser(opts.Language.Grammar())

	tree, err := parser.Parse(ctx, source)
	if err != nil {
		return nil, newErrorDetail(KindParse, "source could not be parsed", err.Error())
	}
	defer tree.Close()

	if !opts.TolerateParsingErrors {
		if bad := tree.FirstParseError(); !bad.IsNull() {
			return nil, newErrorDetail(
				KindParse,
				"syntax error",
				fmt.Sprintf("line %d", bad.StartRow()+1),
			)
		}
	}

	captures := collectCaptures(tree, opts.Language)

	w := newWalker(tree, captures, opts.TolerateParsingErrors)
	if err := w.walk(tree.Root()); err != nil {
		return nil, err
	}

	indentUnit := opts.Language.IndentUnit()
	if opts.IndentUnit != "" {
		indentUnit = opts.IndentUnit
	}

	return renderAtoms(w.atoms, indentUnit)
}
