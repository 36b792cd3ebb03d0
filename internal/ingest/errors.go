package ingest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedDocument marks document-level structural failures. These abort
// the run before validation begins, unlike per-record errors which are
// accumulated and skipped.
var ErrMalformedDocument = errors.New("malformed input document")

// ErrorKind identifies why a record was excluded from the report.
type ErrorKind string

const (
	MissingRequiredField ErrorKind = "missing_required_field"
	InvalidEnumValue     ErrorKind = "invalid_enum_value"
	InvalidDateFormat    ErrorKind = "invalid_date_format"
	DuplicateRecord      ErrorKind = "duplicate_record"
)

// RecordError describes a single rejected record. Index is the record's
// zero-based position in the input sequence; Title is whatever title the raw
// record carried, so rejections can be traced back to their source entries.
type RecordError struct {
	Kind    ErrorKind
	Index   int
	Title   string
	Field   string
	Value   string
	Allowed []string
}

func (e *RecordError) Error() string {
	switch e.Kind {
	case MissingRequiredField:
		return fmt.Sprintf("record %d (%s): missing required field %q", e.Index, e.titleOrPlaceholder(), e.Field)
	case InvalidEnumValue:
		return fmt.Sprintf("record %d (%s): field %q has value %q, allowed: %s",
			e.Index, e.titleOrPlaceholder(), e.Field, e.Value, strings.Join(e.Allowed, ", "))
	case InvalidDateFormat:
		return fmt.Sprintf("record %d (%s): field %q has unparsable date %q", e.Index, e.titleOrPlaceholder(), e.Field, e.Value)
	case DuplicateRecord:
		return fmt.Sprintf("record %d (%s): duplicate of an earlier record", e.Index, e.titleOrPlaceholder())
	}
	return fmt.Sprintf("record %d (%s): rejected", e.Index, e.titleOrPlaceholder())
}

func (e *RecordError) titleOrPlaceholder() string {
	if e.Title == "" {
		return "untitled"
	}
	return e.Title
}
