package gentypes

import (
	"fmt"
)

// MalformedOutputError is returned when an expression parses but does not
// assemble into a valid query document: a literal used where a filter is
// required, a non field on the left of a comparison, a composite value, or
// a document failing the envelope schema.
type MalformedOutputError struct {
	Doc string // the offending expression or document text
	Err error
}

// Malformed creates a new MalformedOutputError for the given text and cause.
func Malformed(doc string, err error) *MalformedOutputError {
	return &MalformedOutputError{Doc: doc, Err: err}
}

// Malformedf creates a new MalformedOutputError with a formatted cause.
func Malformedf(doc string, format string, args ...interface{}) *MalformedOutputError {
	return &MalformedOutputError{Doc: doc, Err: fmt.Errorf(format, args...)}
}

func (m *MalformedOutputError) Unwrap() error { return m.Err }

func (m *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed output for %q: %v", m.Doc, m.Err)
}
