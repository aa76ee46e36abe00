package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) atom     { return atom{kind: atomText, text: []byte(s)} }
func space() atom            { return atom{kind: atomSpace} }
func newline(n int) atom     { return atom{kind: atomNewline, count: n} }
func noSpace(excl bool) atom { return atom{kind: atomNoSpace, exclusive: excl} }
func indentStart() atom      { return atom{kind: atomIndentStart} }
func indentEnd() atom        { return atom{kind: atomIndentEnd} }

func render(t *testing.T, atoms ...atom) string {
	t.Helper()

	out, err := renderAtoms(atoms, "\t")
	require.NoError(t, err)

	return string(out)
}

func TestRenderCollapsesRepeatedSpaces(t *testing.T) {
	t.Parallel()

	got := render(t, text("a"), space(), space(), space(), text("b"))
	assert.Equal(t, "a b\n", got)
}

func TestRenderNewlineAbsorbsSpace(t *testing.T) {
	t.Parallel()

	got := render(t, text("a"), space(), newline(1), space(), text("b"))
	assert.Equal(t, "a\nb\n", got)
}

func TestRenderBlankLine(t *testing.T) {
	t.Parallel()

	got := render(t, text("a"), newline(2), text("b"))
	assert.Equal(t, "a\n\nb\n", got)
}

func TestRenderIndentation(t *testing.T) {
	t.Parallel()

	got := render(t,
		text("{"), indentStart(), newline(1),
		text("x"), text(";"), newline(1),
		indentEnd(), text("}"),
	)
	assert.Equal(t, "{\n\tx;\n}\n", got)
}

func TestRenderIndentUnderflow(t *testing.T) {
	t.Parallel()

	_, err := renderAtoms([]atom{text("a"), indentEnd(), text("b")}, "\t")
	require.Error(t, err)
	assert.Equal(t, KindQuery, KindOf(err))
}

func TestRenderLeadingWhitespaceDropped(t *testing.T) {
	t.Parallel()

	got := render(t, newline(2), space(), text("a"))
	assert.Equal(t, "a\n", got)
}

func TestRenderTrailingNewlineNormalized(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a\n", render(t, text("a")))
	assert.Equal(t, "a\n", render(t, text("a\n\n\n")))
	assert.Empty(t, render(t))
}

func TestRenderTextOwningNewlineSatisfiesHardline(t *testing.T) {
	t.Parallel()

	// Verbatim comments carry their own newline; a pending hardline must
	// not double it.
	got := render(t, text("# c\n"), newline(1), text("x"))
	assert.Equal(t, "# c\nx\n", got)
}

func TestRenderExclusiveNoSpaceBeatsLaterSpace(t *testing.T) {
	t.Parallel()

	got := render(t, text("a"), noSpace(true), space(), text("b"))
	assert.Equal(t, "ab\n", got)
}

func TestRenderPlainNoSpaceYieldsToLaterSpace(t *testing.T) {
	t.Parallel()

	got := render(t, text("a"), space(), noSpace(false), text("b"))
	assert.Equal(t, "ab\n", got)

	got = render(t, text("a"), noSpace(false), space(), text("b"))
	assert.Equal(t, "a b\n", got)
}

func TestRenderIndentAfterOwnedNewline(t *testing.T) {
	t.Parallel()

	// When the previous text ends with its own newline, the next text
	// still gets the current indentation.
	got := render(t, indentStart(), text("# c\n"), text("x"))
	assert.Equal(t, "# c\n\tx\n", got)
}

func TestRenderInvalidUTF8Output(t *testing.T) {
	t.Parallel()

	_, err := renderAtoms([]atom{{kind: atomText, text: []byte{0xff, 0xfe}}}, "\t")
	require.Error(t, err)
	assert.Equal(t, KindEncoding, KindOf(err))
}
