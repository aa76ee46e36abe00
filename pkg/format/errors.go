package format

import (
	"errors"
	"fmt"

	"github.com/Sumatoshi-tech/zeekfmt/pkg/rules"
)

// Kind classifies a formatting failure. The taxonomy is closed: every
// internal failure maps to exactly one Kind before it crosses the package
// boundary.
type Kind int

// Failure kinds.
const (
	// KindParse covers unparseable input or intolerable error nodes.
	KindParse Kind = iota
	// KindQuery covers malformed rule sets: bad patterns, unknown capture
	// names, or directive inconsistencies such as indent underflow.
	KindQuery
	// KindIdempotence signals that a second formatting pass produced
	// different bytes than the first.
	KindIdempotence
	// KindEncoding covers invalid text on input or output.
	KindEncoding
	// KindUnknown is the defensive catch-all for unclassified failures.
	KindUnknown
)

// String returns the kind's short name.
func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindQuery:
		return "query"
	case KindIdempotence:
		return "idempotence"
	case KindEncoding:
		return "encoding"
	default:
		return "unknown"
	}
}

// Error is the single error type the engine returns. Message is short and
// stable; Detail carries optional context such as a byte offset or a diff.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
	}

	return fmt.Sprintf("%s error: %s: %s", e.Kind, e.Message, e.Detail)
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func newErrorDetail(kind Kind, message, detail string) *Error {
	return &Error{Kind: kind, Message: message, Detail: detail}
}

// KindOf extracts the failure kind from an error returned by Format.
// Errors from other sources report KindUnknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}

	return KindUnknown
}

// classify maps an arbitrary internal error onto the closed taxonomy.
// Errors that are already classified pass through unchanged.
func classify(err error) *Error {
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}

	switch {
	case errors.Is(err, rules.ErrQueryCompile),
		errors.Is(err, rules.ErrEmptyQuery),
		errors.Is(err, rules.ErrUnknownCapture),
		errors.Is(err, rules.ErrUnknownDelimiter),
		errors.Is(err, rules.ErrBadModifier):
		return newErrorDetail(KindQuery, "invalid rule set", err.Error())
	default:
		return newErrorDetail(KindUnknown, "internal failure", err.Error())
	}
}
