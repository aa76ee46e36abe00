package safeconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMustUintToInt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, MustUintToInt(0))
	assert.Equal(t, 42, MustUintToInt(42))
	assert.Equal(t, MaxInt, MustUintToInt(uint(MaxInt)))

	assert.Panics(t, func() {
		MustUintToInt(uint(MaxInt) + 1)
	})
}

func TestMustIntToUint64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(0), MustIntToUint64(0))
	assert.Equal(t, uint64(7), MustIntToUint64(7))

	assert.Panics(t, func() {
		MustIntToUint64(-1)
	})
}

func TestMustInt64ToUint64(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint64(0), MustInt64ToUint64(0))
	assert.Equal(t, uint64(1<<40), MustInt64ToUint64(1<<40))

	assert.Panics(t, func() {
		MustInt64ToUint64(-5)
	})
}
