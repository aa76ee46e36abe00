package format

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Sumatoshi-tech/zeekfmt/pkg/syntax"
)

// atomKind discriminates entries in the flat render stream the tree walk
// produces. Whitespace atoms are obligations, not output: the fold below
// collapses a run of them into the single strongest pending request and
// only materializes it right before the next text atom.
type atomKind int

const (
	atomText atomKind = iota
	atomSpace
	atomNewline
	atomNoSpace
	atomIndentStart
	atomIndentEnd
)

type atom struct {
	kind      atomKind
	text      []byte
	count     int  // newline count for atomNewline
	exclusive bool // for atomNoSpace: suppress spaces from any later boundary
}

// walker performs the single depth-first, left-to-right traversal of the
// tree, consulting resolved directives at every node boundary and
// emitting the atom stream.
type walker struct {
	source   []byte
	captures captureMap
	tolerate bool
	atoms    []atom

	// lastLeafEnd is the source offset just past the last rendered leaf,
	// used to detect blank lines present in the input.
	lastLeafEnd int
}

func newWalker(tree *syntax.Tree, captures captureMap, tolerate bool) *walker {
	return &walker{
		source:   tree.Source(),
		captures: captures,
		tolerate: tolerate,
	}
}

func (w *walker) walk(n syntax.Node) error {
	if n.IsNull() {
		return nil
	}

	d := resolveNode(w.captures[n])
	if d.remove {
		return nil
	}

	if n.IsError() {
		return w.walkError(n)
	}

	if n.IsMissing() {
		// Zero-width recovery node: nothing to render.
		if w.tolerate {
			return nil
		}

		return newErrorDetail(KindParse, "missing syntax", fmt.Sprintf("line %d", n.StartRow()+1))
	}

	w.emitBefore(n, d)

	if n.IsLeaf() || d.leaf {
		w.emitText(n.Text(w.source))
		w.lastLeafEnd = n.EndByte()
	} else {
		for _, child := range n.Children() {
			if err := w.walk(child); err != nil {
				return err
			}
		}
	}

	w.emitAfter(d)

	return nil
}

// walkError renders an error node. Under tolerance the node's raw source
// text passes through with no directive processing; otherwise the pass
// aborts.
func (w *walker) walkError(n syntax.Node) error {
	if !w.tolerate {
		return newErrorDetail(KindParse, "syntax error", fmt.Sprintf("line %d", n.StartRow()+1))
	}

	w.emitText(n.Text(w.source))
	w.lastLeafEnd = n.EndByte()

	return nil
}

func (w *walker) emitBefore(n syntax.Node, d nodeDirectives) {
	b := d.before

	if d.allowBlankBefore && w.inputHasBlankBefore(n) && b.ws < wsBlankline {
		b.ws = wsBlankline
	}

	w.emitBoundary(b, true)
}

func (w *walker) emitAfter(d nodeDirectives) {
	w.emitBoundary(d.after, false)
}

// emitBoundary lowers one resolved boundary into atoms. For a before
// boundary literals follow the whitespace so they sit next to the node's
// text; for an after boundary they precede it.
func (w *walker) emitBoundary(b boundary, before bool) {
	ws := b.ws
	if b.noSpaceExclusive && ws == wsSpace {
		ws = wsNone
	}

	emitWS := func() {
		for range b.indentStarts {
			w.atoms = append(w.atoms, atom{kind: atomIndentStart})
		}

		for range b.indentEnds {
			w.atoms = append(w.atoms, atom{kind: atomIndentEnd})
		}

		switch {
		case ws >= wsHardline:
			w.atoms = append(w.atoms, atom{kind: atomNewline, count: ws.newlineCount()})
		case ws == wsSpace:
			w.atoms = append(w.atoms, atom{kind: atomSpace})
		case b.noSpace:
			w.atoms = append(w.atoms, atom{kind: atomNoSpace, exclusive: b.noSpaceExclusive})
		}
	}

	emitLiterals := func() {
		for _, lit := range b.literals {
			w.emitText([]byte(lit))
		}
	}

	if before {
		emitWS()
		emitLiterals()
	} else {
		emitLiterals()
		emitWS()
	}
}

func (w *walker) emitText(text []byte) {
	if len(text) == 0 {
		return
	}

	w.atoms = append(w.atoms, atom{kind: atomText, text: text})
}

// inputHasBlankBefore reports whether the original source contains at
// least one blank line between the previously rendered leaf and this
// node.
func (w *walker) inputHasBlankBefore(n syntax.Node) bool {
	start, end := w.lastLeafEnd, n.StartByte()
	if start >= end || end > len(w.source) {
		return false
	}

	newlines := bytes.Count(w.source[start:end], []byte("\n"))

	return newlines >= 2
}

// renderState is the mutable single-pass state of the atom fold: the
// output buffer, the indentation depth, and the pending whitespace
// accumulator. It is owned by exactly one rendering invocation.
type renderState struct {
	out        bytes.Buffer
	indentUnit string
	depth      int
	pending    whitespace
	noSpace    bool
	wroteAny   bool
}

// renderAtoms folds the atom stream into output bytes. Whitespace is
// never emitted eagerly: obligations accumulate into the strongest
// pending request and flush immediately before the next text atom.
func renderAtoms(atoms []atom, indentUnit string) ([]byte, error) {
	r := renderState{indentUnit: indentUnit}

	for _, a := range atoms {
		switch a.kind {
		case atomIndentStart:
			r.depth++
		case atomIndentEnd:
			r.depth--
			if r.depth < 0 {
				return nil, newError(KindQuery, "indentation depth underflow")
			}
		case atomSpace:
			if !r.noSpace && r.pending < wsSpace {
				r.pending = wsSpace
			}
		case atomNoSpace:
			if a.exclusive {
				r.noSpace = true
			}

			if r.pending == wsSpace {
				r.pending = wsNone
			}
		case atomNewline:
			want := wsHardline
			if a.count >= 2 {
				want = wsBlankline
			}

			if r.pending < want {
				r.pending = want
			}
		case atomText:
			r.flush()
			r.out.Write(a.text)
			r.wroteAny = true
		}
	}

	out := finishOutput(r.out.Bytes())
	if !utf8.Valid(out) {
		return nil, newError(KindEncoding, "rendered output is not valid UTF-8")
	}

	return out, nil
}

// flush materializes the pending whitespace obligation ahead of a text
// atom. Leading whitespace at the very start of the output is dropped.
func (r *renderState) flush() {
	pending := r.pending
	r.pending = wsNone
	r.noSpace = false

	if !r.wroteAny {
		return
	}

	switch {
	case pending >= wsHardline:
		// Text that carries its own trailing newline (verbatim comments)
		// already satisfies part of the obligation.
		missing := pending.newlineCount() - r.trailingNewlines()
		for range max(missing, 0) {
			r.out.WriteByte('\n')
		}

		r.writeIndent()
	case r.atLineStart():
		// A space or empty obligation at a line start means the previous
		// text ended with its own newline; indent the continuation.
		r.writeIndent()
	case pending == wsSpace:
		r.out.WriteByte(' ')
	}
}

func (r *renderState) writeIndent() {
	if r.depth > 0 {
		r.out.WriteString(strings.Repeat(r.indentUnit, r.depth))
	}
}

func (r *renderState) atLineStart() bool {
	b := r.out.Bytes()

	return len(b) > 0 && b[len(b)-1] == '\n'
}

func (r *renderState) trailingNewlines() int {
	b := r.out.Bytes()
	count := 0

	for i := len(b) - 1; i >= 0 && b[i] == '\n'; i-- {
		count++
	}

	return count
}

// finishOutput normalizes the end of the rendered text: non-empty output
// ends with exactly one newline.
func finishOutput(out []byte) []byte {
	if len(out) == 0 {
		return out
	}

	out = bytes.TrimRight(out, "\n")

	return append(out, '\n')
}
