package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaultSuppressesDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	log := New(&buf, false)
	log.Debug("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewVerboseEmitsDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	log := New(&buf, true)
	log.Debug("visible", "file", "local.zeek")

	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "local.zeek")
}
