package imaging

import (
	"fmt"
	"image"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
)

// ValidatePercent returns ErrInvalidPercent unless 0 <= percent <= 100.
func ValidatePercent(percent float64) error {
	if math.IsNaN(percent) || percent < 0 || percent > 100 {
		return fmt.Errorf("%w: %v", ErrInvalidPercent, percent)
	}
	return nil
}

// WipeClip returns the CSS clip-path that shows the rendered image over the
// left percent of the comparison view:
//
//	polygon(0 0, P% 0, P% 100%, 0 100%)
func WipeClip(percent float64) (string, error) {
	if err := ValidatePercent(percent); err != nil {
		return "", err
	}
	p := strconv.FormatFloat(percent, 'f', -1, 64)
	return fmt.Sprintf("polygon(0 0, %s%% 0, %s%% 100%%, 0 100%%)", p, p), nil
}

// WipeColumn returns the first column of width that still shows the
// original image when percent of it is revealed.
func WipeColumn(width int, percent float64) int {
	col := int(math.Round(float64(width) * percent / 100))
	if col < 0 {
		return 0
	}
	if col > width {
		return width
	}
	return col
}

// Wipe renders a comparison preview: the left percent of the result comes
// from rendered, the rest from original. Both images must have the same size.
//
// This is the pixel-level counterpart of WipeClip for clients that cannot
// apply a clip-path themselves.
func Wipe(original, rendered image.Image, percent float64) (*image.NRGBA, error) {
	if err := ValidatePercent(percent); err != nil {
		return nil, err
	}
	if original == nil || rendered == nil {
		return nil, fmt.Errorf("%w: nil comparison input", ErrInvalidImage)
	}
	ob, rb := original.Bounds(), rendered.Bounds()
	if ob.Dx() != rb.Dx() || ob.Dy() != rb.Dy() {
		return nil, fmt.Errorf("%w: original %dx%d does not match rendered %dx%d",
			ErrInvalidImage, ob.Dx(), ob.Dy(), rb.Dx(), rb.Dy())
	}

	out := imaging.Clone(original)
	col := WipeColumn(rb.Dx(), percent)
	if col == 0 {
		return out, nil
	}
	revealed := imaging.Crop(rendered, image.Rect(rb.Min.X, rb.Min.Y, rb.Min.X+col, rb.Max.Y))
	return imaging.Paste(out, revealed, image.Pt(0, 0)), nil
}
