// Package syntax provides a read-only view over tree-sitter parse trees.
//
// The formatting engine never mutates a tree: a Tree owns the source bytes
// it was parsed from plus the underlying tree-sitter tree, and Node is a
// cheap value wrapper that navigates it. Nodes are comparable and can be
// used as map keys within a single formatting pass.
package syntax

import (
	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/zeekfmt/pkg/safeconv"
)

// errorKind is the node type tree-sitter assigns to unparseable regions.
const errorKind = "ERROR"

// Tree is an immutable parse tree together with the source it was built from.
type Tree struct {
	source []byte
	tree   *sitter.Tree
	root   sitter.Node
}

// Source returns the raw bytes the tree was parsed from.
func (t *Tree) Source() []byte {
	return t.source
}

// Root returns the root node of the tree.
func (t *Tree) Root() Node {
	return Node{inner: t.root}
}

// Close releases the underlying tree-sitter tree. The Tree and all Nodes
// derived from it must not be used afterwards.
func (t *Tree) Close() {
	if t.tree != nil {
		t.tree.Close()
		t.tree = nil
	}
}

// FirstParseError returns the first error or missing node in document
// order, or a null Node when the tree parsed cleanly.
func (t *Tree) FirstParseError() Node {
	var found Node

	t.Root().Walk(func(n Node) bool {
		if !found.IsNull() {
			return false
		}

		if n.IsError() || n.IsMissing() {
			found = n

			return false
		}

		return true
	})

	return found
}

// HasParseError reports whether the tree contains any error or missing
// nodes. This walks the whole tree; callers that need the offending node
// should use FirstParseError instead.
func (t *Tree) HasParseError() bool {
	return !t.FirstParseError().IsNull()
}

// Node is a non-owning view of a single tree position. The zero value is
// the null node.
type Node struct {
	inner sitter.Node
}

// IsNull reports whether this is the null node.
func (n Node) IsNull() bool {
	return n.inner.IsNull()
}

// Kind returns the grammar type tag of the node, e.g. "stmt" or ";".
func (n Node) Kind() string {
	return n.inner.Type()
}

// StartByte returns the offset of the node's first byte in the source.
func (n Node) StartByte() int {
	return safeconv.MustUintToInt(n.inner.StartByte())
}

// EndByte returns the offset one past the node's last byte in the source.
func (n Node) EndByte() int {
	return safeconv.MustUintToInt(n.inner.EndByte())
}

// StartRow returns the zero-based line the node starts on.
func (n Node) StartRow() int {
	return int(n.inner.StartPoint().Row)
}

// IsNamed reports whether the node is the root of a grammar rule, as
// opposed to an anonymous token such as ";" or "{".
func (n Node) IsNamed() bool {
	return n.inner.IsNamed()
}

// IsError reports whether the node groups unparseable content.
func (n Node) IsError() bool {
	return n.Kind() == errorKind
}

// IsMissing reports whether tree-sitter inserted this node to recover from
// a parse error. Missing nodes are zero-width and carry no source text.
func (n Node) IsMissing() bool {
	return n.inner.IsMissing()
}

// ChildCount returns the number of children, including anonymous tokens
// and extras such as comments and newlines.
func (n Node) ChildCount() int {
	return safeconv.MustUintToInt(uint(n.inner.ChildCount()))
}

// Children returns all concrete children in document order.
func (n Node) Children() []Node {
	out := make([]Node, 0, n.inner.ChildCount())

	for idx := range n.inner.ChildCount() {
		out = append(out, Node{inner: n.inner.Child(idx)})
	}

	return out
}

// IsLeaf reports whether the node has no children of its own.
func (n Node) IsLeaf() bool {
	return n.ChildCount() == 0
}

// Text returns the node's exact byte range from the given source. The
// source must be the one the node's tree was parsed from.
func (n Node) Text(source []byte) []byte {
	start, end := n.StartByte(), n.EndByte()
	if start < 0 || end > len(source) || start > end {
		return nil
	}

	return source[start:end]
}

// Walk visits the node and its subtree in depth-first document order.
// Returning false from the visitor skips the node's children.
func (n Node) Walk(visit func(Node) bool) {
	if n.IsNull() {
		return
	}

	if !visit(n) {
		return
	}

	for _, child := range n.Children() {
		child.Walk(visit)
	}
}

// Wrap converts a raw tree-sitter node into a Node. It is used when
// translating query captures back into tree positions.
func Wrap(inner sitter.Node) Node {
	return Node{inner: inner}
}

// Raw returns the underlying tree-sitter node for query matching.
func (n Node) Raw() sitter.Node {
	return n.inner
}
