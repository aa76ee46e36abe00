package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/Sumatoshi-tech/zeekfmt/pkg/format"
	"github.com/Sumatoshi-tech/zeekfmt/pkg/safeconv"
)

// renderDiff produces a line-oriented diff between the original and the
// formatted text, colored unless noColor is set.
func renderDiff(path, before, after string, noColor bool) string {
	dmp := diffmatchpatch.New()
	beforeRunes, afterRunes, lines := dmp.DiffLinesToRunes(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(beforeRunes, afterRunes, false), lines)

	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen)
	header := color.New(color.Bold)

	if noColor {
		removed.DisableColor()
		added.DisableColor()
		header.DisableColor()
	}

	var buf strings.Builder

	buf.WriteString(header.Sprintf("--- %s (original)\n", path))
	buf.WriteString(header.Sprintf("+++ %s (formatted)\n", path))

	for _, diff := range diffs {
		var prefix string
		var paint *color.Color

		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			prefix, paint = "-", removed
		case diffmatchpatch.DiffInsert:
			prefix, paint = "+", added
		case diffmatchpatch.DiffEqual:
			prefix, paint = " ", nil
		}

		for _, line := range splitDiffLines(diff.Text) {
			if paint != nil {
				buf.WriteString(paint.Sprintf("%s%s\n", prefix, line))
			} else {
				buf.WriteString(prefix + line + "\n")
			}
		}
	}

	return buf.String()
}

func splitDiffLines(text string) []string {
	trimmed := strings.TrimSuffix(text, "\n")
	if trimmed == "" && text != "" {
		return []string{""}
	}

	return strings.Split(trimmed, "\n")
}

// renderSummary prints a per-file result table.
func renderSummary(out io.Writer, results []fileResult) {
	writer := table.NewWriter()
	writer.SetOutputMirror(out)
	writer.AppendHeader(table.Row{"File", "Size", "Lines", "Status", "Time"})

	changed := 0

	for _, result := range results {
		status := "unchanged"

		switch {
		case result.err != nil:
			status = "error: " + format.KindOf(result.err).String()
		case result.changed:
			status = "reformatted"

			changed++
		}

		writer.AppendRow(table.Row{
			result.path,
			humanize.IBytes(safeconv.MustIntToUint64(result.size)),
			result.lines,
			status,
			result.duration.Round(time.Microsecond),
		})
	}

	writer.AppendFooter(table.Row{fmt.Sprintf("%d files", len(results)), "", "", fmt.Sprintf("%d reformatted", changed), ""})
	writer.Render()
}
