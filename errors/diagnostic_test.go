package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestDiagnosticError(t *testing.T) {
	pos := uint32(42)
	d := &Diagnostic{Kind: ErrMalformed, Message: "unexpected byte", Position: &pos}
	got := d.Error()
	if !strings.Contains(got, string(ErrMalformed)) {
		t.Fatalf("Error() = %q, want kind %q present", got, ErrMalformed)
	}
	if !strings.Contains(got, "byte 42") {
		t.Fatalf("Error() = %q, want byte position present", got)
	}
}

func TestDiagnosticListError(t *testing.T) {
	list := DiagnosticList{
		NewDiagnostic(ErrDuplicateID, "duplicate id 7"),
		NewDiagnostic(ErrDanglingReference, "dangling ref"),
	}
	got := list.Error()
	if !strings.Contains(got, "and 1 more") {
		t.Fatalf("Error() = %q, want summary of remaining diagnostics", got)
	}
}

func TestAsDiagnostics(t *testing.T) {
	err := fmt.Errorf("wrap: %w", DiagnosticList{NewDiagnostic(ErrNoProject, "missing IfcProject")})
	diags, ok := AsDiagnostics(err)
	if !ok || len(diags) != 1 {
		t.Fatalf("AsDiagnostics() = %v, %v, want one diagnostic", diags, ok)
	}
	if diags[0].Kind != ErrNoProject {
		t.Fatalf("Kind = %s, want %s", diags[0].Kind, ErrNoProject)
	}
}

func TestAtPositionAtEntity(t *testing.T) {
	d := NewDiagnostic(ErrTypeMismatch, "bad type").AtPosition(10).AtEntity(3)
	if d.Position == nil || *d.Position != 10 {
		t.Fatalf("Position = %v, want 10", d.Position)
	}
	if d.ExpressID == nil || *d.ExpressID != 3 {
		t.Fatalf("ExpressID = %v, want 3", d.ExpressID)
	}
}
