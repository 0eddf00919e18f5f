package region

import (
	"errors"
	"fmt"
)

var (
	// ErrNestedSection indicates a region was opened while another was still open.
	ErrNestedSection = errors.New("region: nested user section")

	// ErrMismatchedSection indicates an end marker names a different region than the open one.
	ErrMismatchedSection = errors.New("region: mismatched user section")

	// ErrInvalidSection indicates an end marker with no open region, or an unusable marker.
	ErrInvalidSection = errors.New("region: invalid user section")

	// ErrUnclosedSection indicates the input ended while a region was open.
	ErrUnclosedSection = errors.New("region: unclosed user section")

	// ErrUnknownSection indicates a name that has no definition in the registry.
	ErrUnknownSection = errors.New("region: unknown user section")

	// ErrCaptureFailed indicates the source file could not be read.
	ErrCaptureFailed = errors.New("region: capture failed")
)

// ScanError describes a well-formedness violation found by the scanner.
// Kind is one of the Err*Section sentinels and is what errors.Is matches.
type ScanError struct {
	Kind     error
	Line     int    // 1-based line where the violation was detected
	Section  string // open region (nested, unclosed) or offending name (invalid)
	Expected string // mismatched only
	Found    string // mismatched only
	Reason   string // invalid only
}

func (e *ScanError) Error() string {
	switch e.Kind {
	case ErrNestedSection:
		return fmt.Sprintf("nested user section at line %d: already in section '%s'", e.Line, e.Section)
	case ErrMismatchedSection:
		return fmt.Sprintf("mismatched user section at line %d: expected '%s', found '%s'", e.Line, e.Expected, e.Found)
	case ErrUnclosedSection:
		return fmt.Sprintf("unclosed user section at end of file: '%s'", e.Section)
	case ErrInvalidSection:
		return fmt.Sprintf("invalid user section at line %d: %s", e.Line, e.Reason)
	default:
		return fmt.Sprintf("user section error at line %d", e.Line)
	}
}

func (e *ScanError) Unwrap() error {
	return e.Kind
}

// UnknownSectionError reports a region name with no definition.
type UnknownSectionError struct {
	Name string
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown user section: '%s'", e.Name)
}

func (e *UnknownSectionError) Unwrap() error {
	return ErrUnknownSection
}

// DefinitionError reports a definition that cannot be emitted: a name the
// scanner would not read back, or a description that would corrupt the
// comment above the region.
type DefinitionError struct {
	Name   string
	Reason string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid user section '%s': %s", e.Name, e.Reason)
}

func (e *DefinitionError) Unwrap() error {
	return ErrInvalidSection
}

// CaptureError wraps an I/O failure while reading a previously generated file.
type CaptureError struct {
	Path string
	Err  error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("failed to capture user sections from file %s: %v", e.Path, e.Err)
}

// Unwrap exposes both ErrCaptureFailed and the underlying cause.
func (e *CaptureError) Unwrap() []error {
	return []error{ErrCaptureFailed, e.Err}
}
