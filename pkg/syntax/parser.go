package syntax

import (
	"context"
	"errors"
	"fmt"
	"sync"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// Sentinel errors for parsing.
var (
	errNoRootNode = errors.New("syntax: parse produced no root node")
	errPoolType   = errors.New("syntax: pool returned unexpected type")
)

// Parser turns source bytes into Trees for a single grammar. It keeps a
// pool of tree-sitter parsers so concurrent formatting calls do not
// contend on a single parser instance.
type Parser struct {
	lang *sitter.Language
	pool sync.Pool
}

// NewParser creates a Parser for the given tree-sitter grammar.
func NewParser(lang *sitter.Language) *Parser {
	return &Parser{
		lang: lang,
		pool: sync.Pool{
			New: func() any {
				tsParser := sitter.NewParser()
				tsParser.SetLanguage(lang)

				return tsParser
			},
		},
	}
}

// Parse parses source into a fresh Tree. Each call produces an
// independent tree; nothing is cached or reused across calls.
func (p *Parser) Parse(ctx context.Context, source []byte) (*Tree, error) {
	tsParser, ok := p.pool.Get().(*sitter.Parser)
	if !ok {
		return nil, errPoolType
	}

	defer p.pool.Put(tsParser)

	tree, err := tsParser.ParseString(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("syntax: parse failed: %w", err)
	}

	root := tree.RootNode()
	if root.IsNull() {
		tree.Close()

		return nil, errNoRootNode
	}

	return &Tree{source: source, tree: tree, root: root}, nil
}
