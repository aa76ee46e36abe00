package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCaptureNameBaseVocabulary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		op        Op
		placement Placement
	}{
		{"prepend_space", OpSpace, PlaceBefore},
		{"append_space", OpSpace, PlaceAfter},
		{"prepend_hardline", OpHardline, PlaceBefore},
		{"append_hardline", OpHardline, PlaceAfter},
		{"prepend_blankline", OpBlankline, PlaceBefore},
		{"append_blankline", OpBlankline, PlaceAfter},
		{"prepend_nospace", OpNoSpace, PlaceBefore},
		{"append_nospace", OpNoSpace, PlaceAfter},
		{"prepend_indent_start", OpIndentStart, PlaceBefore},
		{"append_indent_start", OpIndentStart, PlaceAfter},
		{"prepend_indent_end", OpIndentEnd, PlaceBefore},
		{"append_indent_end", OpIndentEnd, PlaceAfter},
		{"delete", OpDelete, PlaceOn},
		{"leaf", OpLeaf, PlaceOn},
		{"allow_blank_line_before", OpAllowBlankBefore, PlaceOn},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			spec, err := ParseCaptureName(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.op, spec.Op)
			assert.Equal(t, tc.placement, spec.Placement)
			assert.False(t, spec.Exclusive)
		})
	}
}

func TestParseCaptureNameExclusiveModifier(t *testing.T) {
	t.Parallel()

	spec, err := ParseCaptureName("prepend_nospace.exclusive")
	require.NoError(t, err)
	assert.Equal(t, OpNoSpace, spec.Op)
	assert.True(t, spec.Exclusive)

	_, err = ParseCaptureName("append_space.exclusive")
	require.ErrorIs(t, err, ErrBadModifier)
}

func TestParseCaptureNameDelimiters(t *testing.T) {
	t.Parallel()

	spec, err := ParseCaptureName("append_delimiter.comma")
	require.NoError(t, err)
	assert.Equal(t, OpDelimiter, spec.Op)
	assert.Equal(t, PlaceAfter, spec.Placement)
	assert.Equal(t, ",", spec.Text)

	spec, err = ParseCaptureName("prepend_delimiter.semicolon")
	require.NoError(t, err)
	assert.Equal(t, PlaceBefore, spec.Placement)
	assert.Equal(t, ";", spec.Text)

	_, err = ParseCaptureName("append_delimiter")
	require.ErrorIs(t, err, ErrUnknownDelimiter)

	_, err = ParseCaptureName("append_delimiter.bogus")
	require.ErrorIs(t, err, ErrUnknownDelimiter)
}

func TestParseCaptureNameUnknown(t *testing.T) {
	t.Parallel()

	_, err := ParseCaptureName("make_it_pretty")
	require.ErrorIs(t, err, ErrUnknownCapture)
}
