package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ironsheep/polarity-mcp/internal/imaging"
	"github.com/ironsheep/polarity-mcp/internal/negative"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Empty, "Empty"},
		{Loaded, "Loaded"},
		{Baseline, "Baseline"},
		{Corrected, "Corrected"},
		{State(42), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String(): got %s, want %s", tt.state, got, tt.want)
		}
	}
}

func TestState_Status(t *testing.T) {
	if Baseline.Status() != Corrected.Status() {
		t.Error("Baseline and Corrected should share a status message")
	}
	if Empty.Status() == Loaded.Status() {
		t.Error("Empty and Loaded should have distinct status messages")
	}
	if State(-1).Status() != msgFailure {
		t.Errorf("unknown state: got %q", State(-1).Status())
	}
}

func TestStatusMessage(t *testing.T) {
	errs := []error{
		imaging.ErrDecode,
		imaging.ErrInvalidImage,
		negative.ErrInvalidParameter,
		imaging.ErrInvalidPercent,
		imaging.ErrUnsupportedFormat,
		ErrNotReady,
		ErrSuperseded,
		context.Canceled,
		errors.New("boom"),
	}

	seen := make(map[string]error)
	for _, err := range errs {
		msg := StatusMessage(fmt.Errorf("wrapped: %w", err))
		if msg == "" {
			t.Errorf("%v: empty message", err)
		}
		if prev, dup := seen[msg]; dup {
			t.Errorf("%v and %v share message %q", prev, err, msg)
		}
		seen[msg] = err
	}

	if StatusMessage(errors.New("boom")) != "Error: Processing Core Failure." {
		t.Error("unknown errors should map to the generic failure message")
	}
	if StatusMessage(nil) != "" {
		t.Error("nil error should map to the empty string")
	}
}
