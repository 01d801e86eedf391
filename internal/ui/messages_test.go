package ui

import (
	"errors"
	"strings"
	"testing"

	"github.com/skydz/manifest/internal/api"
	syncsvc "github.com/skydz/manifest/internal/sync"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "conflict surfaces service wording",
			err:  &api.Error{Status: 409, Message: "Anna Ti is committed to plan #3"},
			want: "Anna Ti is committed to plan #3",
		},
		{
			name: "bad input picks first field error",
			err:  &api.Error{Status: 400, Message: "Validation failed", Fields: map[string][]string{"Date": {"Date is required"}}},
			want: "Save failed: Date is required",
		},
		{
			name: "bad input without fields",
			err:  &api.Error{Status: 400, Message: "Validation failed"},
			want: "Save failed: Validation failed",
		},
		{
			name: "server fault is generic",
			err:  &api.Error{Status: 500, Message: "boom"},
			want: "Save failed: service error, try again",
		},
		{
			name: "unsaved plan hint",
			err:  syncsvc.ErrNoPlanID,
			want: "Save the plan before dispatching it",
		},
		{
			name: "unready draft shows the diagnostic alone",
			err:  &syncsvc.NotReadyError{Diagnostic: "At least one slot has no parachute assigned."},
			want: "At least one slot has no parachute assigned.",
		},
		{
			name: "network error falls through",
			err:  &api.Error{Message: "network error: connection refused"},
			want: "Save failed: network error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, d := classifyError(tt.err, "Save failed")
			if got != tt.want {
				t.Errorf("classifyError() = %q, want %q", got, tt.want)
			}
			if d <= 0 {
				t.Errorf("duration = %v, want positive", d)
			}
		})
	}
}

func TestClassifyErrorWrapped(t *testing.T) {
	wrapped := errors.Join(errors.New("fetch exit plans"), &api.Error{Status: 409, Message: "conflict"})
	got, _ := classifyError(wrapped, "Refresh failed")
	if !strings.Contains(got, "conflict") {
		t.Errorf("classifyError(wrapped) = %q, want the conflict message", got)
	}
}

func TestThemeCycling(t *testing.T) {
	if len(Themes) < 2 {
		t.Fatal("need at least two themes to cycle")
	}

	first := Themes[0]
	second := NextTheme(first.Name)
	if second.Name == first.Name {
		t.Error("NextTheme did not advance")
	}

	// Cycling through every theme returns to the start.
	current := first
	for range Themes {
		current = NextTheme(current.Name)
	}
	if current.Name != first.Name {
		t.Errorf("cycle ended on %q, want %q", current.Name, first.Name)
	}

	if got := ThemeByName("no such theme"); got.Name != Themes[0].Name {
		t.Errorf("ThemeByName(unknown) = %q, want first theme", got.Name)
	}
}

func TestOpFallback(t *testing.T) {
	for _, op := range []string{opRefresh, opSave, opDispatch, opUndo, opDelete, opRoster} {
		if opFallback(op) == "Operation failed" {
			t.Errorf("opFallback(%q) fell through to the generic message", op)
		}
	}
	if opFallback("???") != "Operation failed" {
		t.Error("unknown op should use the generic message")
	}
}
