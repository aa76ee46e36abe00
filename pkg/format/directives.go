package format

import (
	"github.com/Sumatoshi-tech/zeekfmt/pkg/rules"
)

// whitespace is a pending whitespace obligation, ordered by strength:
// a stronger obligation always absorbs a weaker one.
type whitespace int

const (
	wsNone whitespace = iota
	wsSpace
	wsHardline
	wsBlankline
)

// newlineCount returns how many line breaks the obligation requires.
func (w whitespace) newlineCount() int {
	switch w {
	case wsHardline:
		return 1
	case wsBlankline:
		return 2
	default:
		return 0
	}
}

// boundary is the resolved directive set for one side of a node.
type boundary struct {
	ws               whitespace
	noSpace          bool
	noSpaceExclusive bool
	indentStarts     int
	indentEnds       int
	literals         []string
}

// nodeDirectives is the fully resolved directive set for a node. remove
// suppresses everything else for the node, per the resolution policy.
type nodeDirectives struct {
	before           boundary
	after            boundary
	remove           bool
	leaf             bool
	allowBlankBefore bool
}

// resolveNode reduces a node's ordered capture list to directives using
// the total precedence policy:
//
//   - Delete suppresses all other directives on the node.
//   - Within whitespace requests, stronger beats weaker
//     (blank line > line break > space), regardless of rule order.
//   - An exclusive NoSpace beats space requests from any rule but never
//     cancels a line break.
//   - A plain NoSpace against a space request resolves by declaration
//     order: the later rule wins.
//
// The captures slice must already be ordered by rule declaration.
func resolveNode(captures []capture) nodeDirectives {
	var d nodeDirectives

	for _, c := range captures {
		if c.spec.Op == rules.OpDelete {
			d.remove = true

			return d
		}
	}

	for _, c := range captures {
		d.apply(c.spec)
	}

	return d
}

func (d *nodeDirectives) apply(spec rules.CaptureSpec) {
	switch spec.Op {
	case rules.OpLeaf:
		d.leaf = true
	case rules.OpAllowBlankBefore:
		d.allowBlankBefore = true
	default:
		d.side(spec.Placement).apply(spec)
	}
}

// side selects the boundary a placement refers to. PlaceOn operations
// never reach here.
func (d *nodeDirectives) side(p rules.Placement) *boundary {
	if p == rules.PlaceAfter {
		return &d.after
	}

	return &d.before
}

func (b *boundary) apply(spec rules.CaptureSpec) {
	switch spec.Op {
	case rules.OpSpace:
		if b.ws < wsSpace {
			b.ws = wsSpace
		}
	case rules.OpHardline:
		if b.ws < wsHardline {
			b.ws = wsHardline
		}
	case rules.OpBlankline:
		if b.ws < wsBlankline {
			b.ws = wsBlankline
		}
	case rules.OpNoSpace:
		b.noSpace = true

		if spec.Exclusive {
			b.noSpaceExclusive = true
		}

		// Later-declared NoSpace cancels an earlier space request; line
		// breaks stay.
		if b.ws == wsSpace {
			b.ws = wsNone
		}
	case rules.OpIndentStart:
		b.indentStarts++
	case rules.OpIndentEnd:
		b.indentEnds++
	case rules.OpDelimiter:
		b.literals = append(b.literals, spec.Text)
	}
}
