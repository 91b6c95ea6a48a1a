// Package parsererror defines the error taxonomy of the consolidation run:
// skippable source errors, identifier failures and the fatal no-data condition.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrNoValidData is returned when no source produced usable rows.
var ErrNoValidData = errors.New("no valid data: no source could be read")

// ErrUnparseable marks file names the identifier parser cannot interpret.
var ErrUnparseable = errors.New("unparseable identifier")

// UnparseableIdentifierError reports a file name without a recognizable
// month/year.
type UnparseableIdentifierError struct {
	Name   string
	Reason string
}

func (e *UnparseableIdentifierError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot parse identifier '%s': %s", e.Name, e.Reason)
	}
	return fmt.Sprintf("cannot parse identifier '%s'", e.Name)
}

func (e *UnparseableIdentifierError) Unwrap() error {
	return ErrUnparseable
}

// SourceError reports a source that is excluded from the run. It never aborts
// the run on its own.
type SourceError struct {
	Path   string
	Reason string
	Err    error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source '%s' skipped: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("source '%s' skipped: %s", e.Path, e.Reason)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// IsSkippable reports whether err only disqualifies a single source.
func IsSkippable(err error) bool {
	var se *SourceError
	return errors.As(err, &se)
}

// ParseError reports a cell or field that could not be interpreted.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError reports a descriptor or configuration that failed validation.
type ValidationError struct {
	Subject string
	Reason  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Subject, e.Reason)
}

// InvalidFormatError reports an input file that does not have the expected
// layout for its reader.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}
