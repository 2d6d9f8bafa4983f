package session

import (
	"errors"
	"fmt"
)

// ErrRunInFlight is returned when Start is called while another run is
// active. The busy policy is reject, not cancel-and-replace.
var ErrRunInFlight = errors.New("an analysis run is already in flight")

// ValidationError reports empty or malformed user input. It is recovered
// locally and never starts a run.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ExtractionError reports an upstream text-extraction failure or an empty
// extraction result. The message is surfaced to the user as-is.
type ExtractionError struct {
	Message string
	Err     error
}

func (e *ExtractionError) Error() string { return e.Message }
func (e *ExtractionError) Unwrap() error { return e.Err }

// TransportError reports a network or streaming failure talking to the
// generation service. Distinct from SchemaParseError so callers can tell
// "service failed" from "service answered unusably".
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("generation transport failure: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// SchemaParseError reports generation output that could not be decoded as
// the expected structured schema.
type SchemaParseError struct {
	Err error
}

func (e *SchemaParseError) Error() string { return fmt.Sprintf("unparseable analysis output: %v", e.Err) }
func (e *SchemaParseError) Unwrap() error { return e.Err }
