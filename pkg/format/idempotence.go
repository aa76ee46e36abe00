package format

import (
	"bytes"
	"context"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// verifyIdempotence re-runs the entire pipeline on the first pass's
// output and compares the results byte for byte. The second pass parses
// its own independent tree; nothing derived from the first pass is
// reused, so instabilities that only manifest on already-formatted input
// cannot hide.
func verifyIdempotence(ctx context.Context, first []byte, opts Options) error {
	second, err := runPass(ctx, first, opts)
	if err != nil {
		return err
	}

	if bytes.Equal(first, second) {
		return nil
	}

	return newErrorDetail(KindIdempotence, "formatting is not stable", diffSummary(first, second))
}

// diffSummary renders a compact line diff between the two passes for the
// error detail.
func diffSummary(first, second []byte) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(first), string(second), false)

	var sb strings.Builder

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString("-" + d.Text)
		case diffmatchpatch.DiffInsert:
			sb.WriteString("+" + d.Text)
		case diffmatchpatch.DiffEqual:
			// Unchanged spans are noise in an error message.
		}
	}

	return strings.TrimSpace(sb.String())
}
