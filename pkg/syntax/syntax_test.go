package syntax_test

import (
	"context"
	"testing"

	"github.com/alexaandru/go-sitter-forest/zeek"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/zeekfmt/pkg/syntax"
)

func zeekGrammar() *sitter.Language {
	return sitter.NewLanguage(zeek.GetLanguage())
}

func parse(t *testing.T, source string) *syntax.Tree {
	t.Helper()

	parser := syntax.NewParser(zeekGrammar())

	tree, err := parser.Parse(context.Background(), []byte(source))
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	return tree
}

func TestParseProducesTree(t *testing.T) {
	t.Parallel()

	source := "global x = 1;\n"
	tree := parse(t, source)

	root := tree.Root()
	assert.False(t, root.IsNull())
	assert.True(t, root.IsNamed())
	assert.Equal(t, source, string(root.Text(tree.Source())))
	assert.Positive(t, root.ChildCount())
}

func TestChildRangesAreOrderedWithinParent(t *testing.T) {
	t.Parallel()

	tree := parse(t, "global x = 1;\nglobal y = 2;\n")

	tree.Root().Walk(func(n syntax.Node) bool {
		prevEnd := n.StartByte()

		for _, child := range n.Children() {
			assert.GreaterOrEqual(t, child.StartByte(), prevEnd)
			assert.LessOrEqual(t, child.EndByte(), n.EndByte())
			prevEnd = child.EndByte()
		}

		return true
	})
}

func TestLeafTextMatchesSourceRange(t *testing.T) {
	t.Parallel()

	source := "global answer = 42;\n"
	tree := parse(t, source)

	tree.Root().Walk(func(n syntax.Node) bool {
		if n.IsLeaf() {
			assert.Equal(t,
				source[n.StartByte():n.EndByte()],
				string(n.Text(tree.Source())),
			)
		}

		return true
	})
}

func TestCleanParseHasNoErrors(t *testing.T) {
	t.Parallel()

	tree := parse(t, "global x = 1;\n")
	assert.False(t, tree.HasParseError())
	assert.True(t, tree.FirstParseError().IsNull())
}

func TestMalformedInputReportsParseError(t *testing.T) {
	t.Parallel()

	tree := parse(t, "1 +$")
	assert.True(t, tree.HasParseError())
	assert.False(t, tree.FirstParseError().IsNull())
}

func TestNodesAreMapKeys(t *testing.T) {
	t.Parallel()

	tree := parse(t, "global x = 1;\n")

	seen := map[syntax.Node]int{}
	tree.Root().Walk(func(n syntax.Node) bool {
		seen[n]++

		return true
	})

	for node, count := range seen {
		assert.Equal(t, 1, count, "node %s visited twice", node.Kind())
	}
}
