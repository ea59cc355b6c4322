package session

import (
	"context"
	"errors"

	"github.com/ironsheep/polarity-mcp/internal/imaging"
	"github.com/ironsheep/polarity-mcp/internal/negative"
)

var (
	// ErrNotReady is returned when an operation is invoked before the
	// session reaches the state it requires.
	ErrNotReady = errors.New("session not ready")

	// ErrSuperseded is returned when a newer request replaced this one
	// before its result could be stored.
	ErrSuperseded = errors.New("request superseded")
)

const msgFailure = "Error: Processing Core Failure."

// StatusMessage maps an operation error to the message shown to the user.
// A nil error yields the empty string.
func StatusMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, imaging.ErrDecode):
		return "Error: Target Image Unreadable."
	case errors.Is(err, imaging.ErrInvalidImage):
		return "Error: Target Image Corrupted."
	case errors.Is(err, negative.ErrInvalidParameter):
		return "Error: Correction Intensity Out Of Range (0-100)."
	case errors.Is(err, imaging.ErrInvalidPercent):
		return "Error: Comparison Position Out Of Range (0-100)."
	case errors.Is(err, imaging.ErrUnsupportedFormat):
		return "Error: Export Format Not Supported."
	case errors.Is(err, ErrNotReady):
		return "Error: System Not Ready. Load And Invert A Target Image First."
	case errors.Is(err, ErrSuperseded):
		return "Notice: Request Superseded By A Newer Command."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Notice: Operation Cancelled."
	default:
		return msgFailure
	}
}
