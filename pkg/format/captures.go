package format

import (
	"slices"

	sitter "github.com/alexaandru/go-tree-sitter-bare"

	"github.com/Sumatoshi-tech/zeekfmt/pkg/rules"
	"github.com/Sumatoshi-tech/zeekfmt/pkg/syntax"
)

// capture is one directive request attached to a node by a rule match.
// rule is the pattern's declaration index in the rule file; seq is the
// global match order, used only to keep resolution deterministic within a
// single rule.
type capture struct {
	spec rules.CaptureSpec
	rule int
	seq  int
}

// captureMap holds the per-node capture lists for one formatting pass.
type captureMap map[syntax.Node][]capture

// collectCaptures runs the rule query over the tree and gathers captures
// into a per-node multimap. Matching is non-exclusive: a node may receive
// captures from several rules and several match positions. Predicates are
// evaluated by the matcher; captures from failed predicates never surface
// here. Per-node lists are ordered by rule declaration, then match order.
func collectCaptures(tree *syntax.Tree, lang *rules.Language) captureMap {
	query := lang.Query()
	cursor := sitter.NewQueryCursor()
	matches := cursor.Matches(query, tree.Root().Raw(), tree.Source())

	out := make(captureMap)
	seq := 0

	for {
		match := matches.Next()
		if match == nil {
			break
		}

		for _, cap := range match.Captures {
			if cap.Node.IsNull() {
				continue
			}

			name := query.CaptureNameForID(cap.Index)

			spec, ok := lang.Capture(name)
			if !ok {
				// Vocabulary is validated at rule load; an unknown name
				// here cannot come from a well-formed Language.
				continue
			}

			node := syntax.Wrap(cap.Node)
			out[node] = append(out[node], capture{
				spec: spec,
				rule: int(match.PatternIndex),
				seq:  seq,
			})
			seq++
		}
	}

	for node := range out {
		slices.SortStableFunc(out[node], func(a, b capture) int {
			if a.rule != b.rule {
				return a.rule - b.rule
			}

			return a.seq - b.seq
		})
	}

	return out
}
