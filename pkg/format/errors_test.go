package format

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/zeekfmt/pkg/rules"
)

func TestErrorString(t *testing.T) {
	t.Parallel()

	err := newError(KindParse, "syntax error")
	assert.Equal(t, "parse error: syntax error", err.Error())

	err = newErrorDetail(KindQuery, "invalid rule set", "unknown capture")
	assert.Equal(t, "query error: invalid rule set: unknown capture", err.Error())
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindIdempotence, KindOf(newError(KindIdempotence, "unstable")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("some other error")))

	wrapped := fmt.Errorf("outer: %w", newError(KindEncoding, "bad bytes"))
	assert.Equal(t, KindEncoding, KindOf(wrapped))
}

func TestClassifyRuleErrors(t *testing.T) {
	t.Parallel()

	for _, src := range []error{
		rules.ErrQueryCompile,
		rules.ErrEmptyQuery,
		rules.ErrUnknownCapture,
		rules.ErrUnknownDelimiter,
		rules.ErrBadModifier,
	} {
		classified := classify(fmt.Errorf("wrapped: %w", src))
		assert.Equal(t, KindQuery, classified.Kind, "source error: %v", src)
	}
}

func TestClassifyFallsBackToUnknown(t *testing.T) {
	t.Parallel()

	classified := classify(errors.New("never seen before"))
	assert.Equal(t, KindUnknown, classified.Kind)
}

func TestClassifyPassesThroughClassified(t *testing.T) {
	t.Parallel()

	original := newError(KindIdempotence, "unstable")
	assert.Same(t, original, classify(original))
}

func TestKindNames(t *testing.T) {
	t.Parallel()

	names := map[Kind]string{
		KindParse:       "parse",
		KindQuery:       "query",
		KindIdempotence: "idempotence",
		KindEncoding:    "encoding",
		KindUnknown:     "unknown",
	}

	for kind, want := range names {
		assert.Equal(t, want, kind.String())
	}
}
