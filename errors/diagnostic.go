// Package errors defines the IFC-Lite error taxonomy: a stable ErrorKind
// enumeration plus a Diagnostic/DiagnosticList pair used everywhere the core
// reports a failure, from a malformed byte offset to a boolean that could
// not be evaluated.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind is a stable, programmatically matchable error category.
// Values never change meaning across releases; new values may be added.
type ErrorKind string

const (
	// Input errors.
	ErrMalformed          ErrorKind = "malformed"
	ErrUnsupportedEncoding ErrorKind = "unsupported-encoding"
	ErrMissingHeader      ErrorKind = "missing-header"
	ErrUnsupportedSchema  ErrorKind = "unsupported-schema"
	ErrDuplicateID        ErrorKind = "duplicate-id"

	// Schema errors.
	ErrUnknownType   ErrorKind = "unknown-type"
	ErrArityMismatch ErrorKind = "arity-mismatch"
	ErrTypeMismatch  ErrorKind = "type-mismatch"
	ErrBadEnum       ErrorKind = "bad-enum"

	// Model errors.
	ErrNoProject         ErrorKind = "no-project"
	ErrSpatialCycle      ErrorKind = "spatial-cycle"
	ErrDanglingReference ErrorKind = "dangling-reference"

	// Geometry errors.
	ErrProfileInvalid ErrorKind = "profile-invalid"
	ErrCurveGap       ErrorKind = "curve-gap"
	ErrDegenerateMesh ErrorKind = "degenerate-mesh"
	ErrBooleanFailed  ErrorKind = "boolean-failed"

	// Control errors.
	ErrCancelled   ErrorKind = "cancelled"
	ErrOutOfMemory ErrorKind = "out-of-memory"
)

// Diagnostic is a single reported error or warning, carrying enough context
// (byte position, express id) for a caller to locate the offending input.
type Diagnostic struct {
	Kind      ErrorKind
	Message   string
	Position  *uint32 // byte offset into the raw window, when applicable
	ExpressID *uint32 // express id of the offending entity, when applicable
}

// DiagnosticList is an error wrapping one or more Diagnostic values.
type DiagnosticList []Diagnostic

// NewDiagnostic builds a Diagnostic with a kind and message.
func NewDiagnostic(kind ErrorKind, msg string) Diagnostic {
	return Diagnostic{Kind: kind, Message: msg}
}

// NewDiagnosticf formats a message and builds a Diagnostic.
func NewDiagnosticf(kind ErrorKind, format string, args ...any) Diagnostic {
	return NewDiagnostic(kind, fmt.Sprintf(format, args...))
}

// AtPosition returns a copy of d with Position set.
func (d Diagnostic) AtPosition(pos uint32) Diagnostic {
	d.Position = &pos
	return d
}

// AtEntity returns a copy of d with ExpressID set.
func (d Diagnostic) AtEntity(id uint32) Diagnostic {
	d.ExpressID = &id
	return d
}

// Error formats the diagnostic for display, including kind and context.
func (d Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", d.Kind, d.Message))
	if d.ExpressID != nil {
		b.WriteString(fmt.Sprintf(" (entity #%d)", *d.ExpressID))
	}
	if d.Position != nil {
		b.WriteString(fmt.Sprintf(" (byte %d)", *d.Position))
	}
	return b.String()
}

// Error returns a compact summary of the diagnostic list.
func (l DiagnosticList) Error() string {
	switch len(l) {
	case 0:
		return "no diagnostics"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more)", l[0].Error(), len(l)-1)
	}
}

// NewDiagnosticList builds a DiagnosticList from the given diagnostics.
func NewDiagnosticList(diags ...Diagnostic) DiagnosticList {
	return DiagnosticList(diags)
}

// AsDiagnostics extracts diagnostics from an error returned by the core.
func AsDiagnostics(err error) ([]Diagnostic, bool) {
	if err == nil {
		return nil, false
	}
	var list DiagnosticList
	if errors.As(err, &list) {
		return []Diagnostic(list), true
	}
	var listPtr *DiagnosticList
	if errors.As(err, &listPtr) && listPtr != nil {
		return []Diagnostic(*listPtr), true
	}
	var single *Diagnostic
	if errors.As(err, &single) && single != nil {
		return []Diagnostic{*single}, true
	}
	return nil, false
}
