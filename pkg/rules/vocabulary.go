package rules

import (
	"errors"
	"fmt"
	"strings"
)

// Op identifies the formatting operation a capture name requests. The set
// is closed: rule files compose these operations, they cannot define new
// ones.
type Op int

// Formatting operations addressable from rule files.
const (
	// OpSpace requires a single space at the boundary.
	OpSpace Op = iota
	// OpHardline requires a line break at the boundary.
	OpHardline
	// OpBlankline requires a line break plus one empty line.
	OpBlankline
	// OpNoSpace requests that no space be emitted at the boundary.
	OpNoSpace
	// OpIndentStart increases the indentation depth.
	OpIndentStart
	// OpIndentEnd decreases the indentation depth.
	OpIndentEnd
	// OpDelete drops the node's rendered text entirely.
	OpDelete
	// OpLeaf renders the whole subtree verbatim from the source.
	OpLeaf
	// OpAllowBlankBefore preserves one blank line present in the input.
	OpAllowBlankBefore
	// OpDelimiter inserts a fixed literal at the boundary.
	OpDelimiter
)

// Placement says where, relative to the captured node, an operation
// applies.
type Placement int

// Boundary placements.
const (
	// PlaceOn applies to the node as a whole (delete, leaf, blank-line
	// preservation).
	PlaceOn Placement = iota
	// PlaceBefore applies to the boundary preceding the node's first byte.
	PlaceBefore
	// PlaceAfter applies to the boundary following the node's last byte.
	PlaceAfter
)

// CaptureSpec is the parsed form of a capture name: which operation it
// requests, where it applies, and any argument carried in the name.
type CaptureSpec struct {
	Name      string
	Op        Op
	Placement Placement
	Exclusive bool
	Text      string
}

// Sentinel errors for vocabulary parsing.
var (
	// ErrUnknownCapture indicates a capture name outside the fixed vocabulary.
	ErrUnknownCapture = errors.New("rules: unknown capture name")
	// ErrUnknownDelimiter indicates a delimiter suffix with no registered literal.
	ErrUnknownDelimiter = errors.New("rules: unknown delimiter name")
	// ErrBadModifier indicates an unsupported capture-name modifier.
	ErrBadModifier = errors.New("rules: unsupported capture modifier")
)

// exclusiveModifier marks a nospace capture that beats space requests
// regardless of rule order.
const exclusiveModifier = "exclusive"

// delimiterLiterals maps delimiter suffixes to the literal text inserted.
var delimiterLiterals = map[string]string{
	"comma":     ",",
	"semicolon": ";",
	"colon":     ":",
	"space":     " ",
}

// baseCaptures is the fixed capture-name table. Rule files for every
// language target this vocabulary; a capture name outside it fails rule
// loading.
var baseCaptures = map[string]CaptureSpec{
	"prepend_space":           {Op: OpSpace, Placement: PlaceBefore},
	"append_space":            {Op: OpSpace, Placement: PlaceAfter},
	"prepend_hardline":        {Op: OpHardline, Placement: PlaceBefore},
	"append_hardline":         {Op: OpHardline, Placement: PlaceAfter},
	"prepend_blankline":       {Op: OpBlankline, Placement: PlaceBefore},
	"append_blankline":        {Op: OpBlankline, Placement: PlaceAfter},
	"prepend_nospace":         {Op: OpNoSpace, Placement: PlaceBefore},
	"append_nospace":          {Op: OpNoSpace, Placement: PlaceAfter},
	"prepend_indent_start":    {Op: OpIndentStart, Placement: PlaceBefore},
	"append_indent_start":     {Op: OpIndentStart, Placement: PlaceAfter},
	"prepend_indent_end":      {Op: OpIndentEnd, Placement: PlaceBefore},
	"append_indent_end":       {Op: OpIndentEnd, Placement: PlaceAfter},
	"delete":                  {Op: OpDelete, Placement: PlaceOn},
	"leaf":                    {Op: OpLeaf, Placement: PlaceOn},
	"allow_blank_line_before": {Op: OpAllowBlankBefore, Placement: PlaceOn},
}

// ParseCaptureName resolves a capture name (without the leading "@") into
// its CaptureSpec. Dotted suffixes carry arguments: ".exclusive" on
// nospace captures, and a literal name on delimiter captures.
func ParseCaptureName(name string) (CaptureSpec, error) {
	base, suffix, hasSuffix := strings.Cut(name, ".")

	if spec, ok := baseCaptures[base]; ok {
		spec.Name = name

		if !hasSuffix {
			return spec, nil
		}

		if spec.Op == OpNoSpace && suffix == exclusiveModifier {
			spec.Exclusive = true

			return spec, nil
		}

		return CaptureSpec{}, fmt.Errorf("%w: %q on @%s", ErrBadModifier, suffix, base)
	}

	if base == "prepend_delimiter" || base == "append_delimiter" {
		return parseDelimiter(name, base, suffix, hasSuffix)
	}

	return CaptureSpec{}, fmt.Errorf("%w: @%s", ErrUnknownCapture, name)
}

func parseDelimiter(name, base, suffix string, hasSuffix bool) (CaptureSpec, error) {
	if !hasSuffix {
		return CaptureSpec{}, fmt.Errorf("%w: @%s requires a literal suffix", ErrUnknownDelimiter, base)
	}

	text, ok := delimiterLiterals[suffix]
	if !ok {
		return CaptureSpec{}, fmt.Errorf("%w: %q", ErrUnknownDelimiter, suffix)
	}

	placement := PlaceBefore
	if base == "append_delimiter" {
		placement = PlaceAfter
	}

	return CaptureSpec{Name: name, Op: OpDelimiter, Placement: placement, Text: text}, nil
}
