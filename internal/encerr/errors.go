// Package encerr defines the error-kind model used across the decoder,
// ingestion, and topology layers.
//
// S-57 and ISO 8211 failures fall into a small, closed set of kinds (S-57
// Part 3 §7, ISO/IEC 8211 leader/directory rules). Rather than one Go type
// per condition, a single kind-tagged Error carries whichever identifying
// fields apply to that kind, so callers can switch on Kind without type
// assertions.
package encerr

import "fmt"

// Kind identifies the class of failure.
type Kind int

const (
	// IoError is a file read failure. Fatal for the file.
	IoError Kind = iota
	// LeaderMalformed is structural damage in a record leader. Fatal.
	LeaderMalformed
	// SchemaError is an unparsable DDR format string, or a data-record tag
	// absent from the DDR. Fatal.
	SchemaError
	// SubfieldOverrun is a record byte budget exceeded. Fatal.
	SubfieldOverrun
	// UnknownRecordKind is an RCNM outside the defined set. The record is
	// skipped with a diagnostic, not fatal.
	UnknownRecordKind
	// DanglingReference is a spatial or topology reference to an unknown
	// name. Per policy, the offending feature yields an error geometry or
	// the whole file fails.
	DanglingReference
	// TopologyError is a cycle-policy violation, continuity-policy
	// violation, or unclosed ring. Surfaces per feature.
	TopologyError
	// CatalogueMiss is an object-class or attribute code absent from the
	// catalogue. Degrades to Unknown, never fatal.
	CatalogueMiss
)

func (k Kind) String() string {
	switch k {
	case IoError:
		return "IoError"
	case LeaderMalformed:
		return "LeaderMalformed"
	case SchemaError:
		return "SchemaError"
	case SubfieldOverrun:
		return "SubfieldOverrun"
	case UnknownRecordKind:
		return "UnknownRecordKind"
	case DanglingReference:
		return "DanglingReference"
	case TopologyError:
		return "TopologyError"
	case CatalogueMiss:
		return "CatalogueMiss"
	default:
		return "Unknown"
	}
}

// Error is the single error type for every kind above. Offset and Tag apply
// to decoder-layer errors; Name and FeatureID apply to ingestion/TTS errors.
// Fields that don't apply to a given Kind are left zero.
type Error struct {
	Kind      Kind
	Msg       string
	Offset    int    // byte offset, decoder-layer errors
	Tag       string // field tag, decoder-layer errors
	Name      string // entity name (RCNM:RCID), ingestion/TTS errors
	FeatureID int64  // feature RCID, TTS errors
	Cause     error
}

func (e *Error) Error() string {
	switch {
	case e.Tag != "" && e.Offset != 0:
		return fmt.Sprintf("%s: %s (tag=%s offset=%d)", e.Kind, e.Msg, e.Tag, e.Offset)
	case e.Tag != "":
		return fmt.Sprintf("%s: %s (tag=%s)", e.Kind, e.Msg, e.Tag)
	case e.Offset != 0:
		return fmt.Sprintf("%s: %s (offset=%d)", e.Kind, e.Msg, e.Offset)
	case e.FeatureID != 0 && e.Name != "":
		return fmt.Sprintf("%s: %s (feature=%d ref=%s)", e.Kind, e.Msg, e.FeatureID, e.Name)
	case e.Name != "":
		return fmt.Sprintf("%s: %s (name=%s)", e.Kind, e.Msg, e.Name)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}

// New constructs a bare kind + message error.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap constructs a kind + message error that wraps cause.
func Wrap(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}

// AtOffset constructs a decoder-layer error anchored to a byte offset.
func AtOffset(kind Kind, msg string, offset int) *Error {
	return &Error{Kind: kind, Msg: msg, Offset: offset}
}

// ForTag constructs a decoder-layer error anchored to a field tag.
func ForTag(kind Kind, msg string, tag string) *Error {
	return &Error{Kind: kind, Msg: msg, Tag: tag}
}

// ForName constructs an ingestion/TTS-layer error anchored to an entity name.
func ForName(kind Kind, msg string, name string) *Error {
	return &Error{Kind: kind, Msg: msg, Name: name}
}

// ForFeature constructs a TTS-layer error anchored to a feature and the
// offending reference name.
func ForFeature(kind Kind, msg string, featureID int64, name string) *Error {
	return &Error{Kind: kind, Msg: msg, FeatureID: featureID, Name: name}
}

// Diagnostic is a non-fatal, logged-by-the-caller condition: NULL
// orientation treated as Forward, an unusual TOPI combination silently
// accepted, a catalogue miss degraded to Unknown, and so on.
type Diagnostic struct {
	Kind    Kind
	Message string
	Name    string // entity or feature name this diagnostic concerns, if any
}

func (d Diagnostic) String() string {
	if d.Name != "" {
		return fmt.Sprintf("%s: %s (%s)", d.Kind, d.Message, d.Name)
	}
	return fmt.Sprintf("%s: %s", d.Kind, d.Message)
}
