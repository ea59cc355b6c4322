package negative

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/polarity-mcp/internal/imaging"
)

// Correction intensity range and channel gains.
const (
	MinIntensity = 0
	MaxIntensity = 100

	// BlueGain and GreenGain scale the intensity into the amount added to
	// the blue and green channels. Red is never adjusted.
	BlueGain  = 1.2
	GreenGain = 0.2
)

// ErrInvalidParameter reports a correction intensity outside
// [MinIntensity, MaxIntensity].
var ErrInvalidParameter = errors.New("invalid correction parameter")

// ValidateIntensity returns ErrInvalidParameter unless intensity is in range.
// Out-of-range values are rejected, never clamped.
func ValidateIntensity(intensity int) error {
	if intensity < MinIntensity || intensity > MaxIntensity {
		return fmt.Errorf("%w: intensity %d outside [%d, %d]",
			ErrInvalidParameter, intensity, MinIntensity, MaxIntensity)
	}
	return nil
}

// Bias returns the amounts added to the green and blue samples at intensity.
//
// Fractions are rounded half away from zero. Samples are integers, so
// rounding the bias alone equals rounding sample+bias.
func Bias(intensity int) (green, blue int) {
	return int(math.Round(float64(intensity) * GreenGain)),
		int(math.Round(float64(intensity) * BlueGain))
}

// Correct applies the channel correction at intensity to baseline and
// returns the result as a new buffer.
//
// At intensity 0 the result is a clone of baseline: byte-identical but not
// sharing storage. The baseline is expected to come from Invert, though
// this is not enforced.
func Correct(baseline *imaging.Buffer, intensity int) (*imaging.Buffer, error) {
	if err := ValidateIntensity(intensity); err != nil {
		return nil, err
	}
	if err := baseline.Validate(); err != nil {
		return nil, err
	}
	if intensity == 0 {
		return baseline.Clone(), nil
	}

	green, blue := Bias(intensity)
	return baseline.Map(func(dst, src []uint8) {
		for i := 0; i+2 < len(src); i += imaging.Channels {
			dst[i] = src[i]
			dst[i+1] = addSaturate(src[i+1], green)
			dst[i+2] = addSaturate(src[i+2], blue)
		}
	}), nil
}

// addSaturate adds delta to v, clamping at 255.
func addSaturate(v uint8, delta int) uint8 {
	sum := int(v) + delta
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}
