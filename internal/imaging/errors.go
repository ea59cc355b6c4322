package imaging

import "errors"

// Error categories returned by this package. Callers match them with
// errors.Is; the returned errors wrap them with the failing detail.
var (
	// ErrDecode reports a source image that could not be opened or decoded.
	ErrDecode = errors.New("image decode failed")

	// ErrInvalidImage reports a nil, empty, zero-area or malformed buffer.
	ErrInvalidImage = errors.New("invalid image")

	// ErrUnsupportedFormat reports an export format other than png, jpg or webp.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrInvalidPercent reports a comparison percentage outside [0, 100].
	ErrInvalidPercent = errors.New("comparison percent outside [0, 100]")
)
