// Package rules loads and validates the per-language formatting rule
// sets. A rule set is a tree-sitter query whose capture names form a
// fixed, language-agnostic vocabulary of formatting directives; the query
// patterns select which tree positions the directives attach to.
//
// Rule sets are compiled once at process start and shared by immutable
// reference across formatting calls.
package rules

import (
	"errors"
	"fmt"
	"strings"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// Sentinel errors for rule loading.
var (
	// ErrQueryCompile indicates the rule pattern does not compile against
	// the grammar's node kind vocabulary.
	ErrQueryCompile = errors.New("rules: query compilation failed")
	// ErrEmptyQuery indicates a rule file with no patterns.
	ErrEmptyQuery = errors.New("rules: empty rule set")
)

// Language bundles everything the engine needs to format one language:
// the grammar, the compiled rule query, the indent unit, and the file
// extensions the language claims.
type Language struct {
	name       string
	indentUnit string
	extensions []string
	grammar    *sitter.Language
	query      *sitter.Query
	captures   map[string]CaptureSpec
}

// Option configures a Language during construction.
type Option func(*Language)

// WithIndentUnit sets the string emitted once per indentation level.
func WithIndentUnit(unit string) Option {
	return func(l *Language) {
		l.indentUnit = unit
	}
}

// WithExtensions sets the file extensions the language claims, each
// including the leading dot.
func WithExtensions(exts ...string) Option {
	return func(l *Language) {
		l.extensions = exts
	}
}

// defaultIndentUnit is one tab per indentation level.
const defaultIndentUnit = "\t"

// New compiles a rule set against a grammar. It fails when the query does
// not compile, when the rule file is empty, or when any capture name falls
// outside the directive vocabulary.
func New(name string, grammar *sitter.Language, querySource string, opts ...Option) (*Language, error) {
	lang := &Language{
		name:       name,
		indentUnit: defaultIndentUnit,
		grammar:    grammar,
	}

	for _, opt := range opts {
		opt(lang)
	}

	names := scanCaptureNames(querySource)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyQuery, name)
	}

	lang.captures = make(map[string]CaptureSpec, len(names))

	for _, captureName := range names {
		spec, err := ParseCaptureName(captureName)
		if err != nil {
			return nil, err
		}

		lang.captures[captureName] = spec
	}

	query, err := sitter.NewQuery(grammar, []byte(querySource))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQueryCompile, err)
	}

	lang.query = query

	return lang, nil
}

// Name returns the language name, e.g. "zeek".
func (l *Language) Name() string {
	return l.name
}

// IndentUnit returns the string emitted once per indentation level.
func (l *Language) IndentUnit() string {
	return l.indentUnit
}

// Extensions returns the file extensions the language claims.
func (l *Language) Extensions() []string {
	return l.extensions
}

// Grammar returns the tree-sitter grammar for parsing.
func (l *Language) Grammar() *sitter.Language {
	return l.grammar
}

// Query returns the compiled rule query for matching.
func (l *Language) Query() *sitter.Query {
	return l.query
}

// Capture resolves a capture name seen in a match to its directive spec.
func (l *Language) Capture(name string) (CaptureSpec, bool) {
	spec, ok := l.captures[name]

	return spec, ok
}

// Matches reports whether the language claims the given filename by
// extension.
func (l *Language) Matches(filename string) bool {
	for _, ext := range l.extensions {
		if strings.HasSuffix(filename, ext) {
			return true
		}
	}

	return false
}

// scanCaptureNames extracts every "@name" capture identifier from a query
// source, skipping string literals and line comments. Validating names
// before query compilation gives rule authors a vocabulary error instead
// of a generic compile failure.
func scanCaptureNames(source string) []string {
	var (
		names     []string
		seen      = map[string]bool{}
		inString  bool
		inComment bool
	)

	isNameByte := func(b byte) bool {
		return b == '_' || b == '.' ||
			(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
	}

	for i := 0; i < len(source); i++ {
		b := source[i]

		switch {
		case inComment:
			if b == '\n' {
				inComment = false
			}
		case inString:
			if b == '\\' {
				i++
			} else if b == '"' {
				inString = false
			}
		case b == '"':
			inString = true
		case b == ';':
			inComment = true
		case b == '@':
			start := i + 1
			end := start

			for end < len(source) && isNameByte(source[end]) {
				end++
			}

			if end > start {
				name := source[start:end]
				if !seen[name] {
					seen[name] = true

					names = append(names, name)
				}
			}

			i = end - 1
		}
	}

	return names
}
