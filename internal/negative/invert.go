package negative

import (
	"image"

	"github.com/ironsheep/polarity-mcp/internal/imaging"
)

// Invert returns the photographic negative of src as a three-channel buffer.
//
// Sources carrying alpha are normalized first: the non-premultiplied colour
// is kept and alpha dropped. Returns imaging.ErrInvalidImage for a nil or
// zero-area source.
func Invert(src image.Image) (*imaging.Buffer, error) {
	b, err := imaging.FromImage(src)
	if err != nil {
		return nil, err
	}
	return InvertBuffer(b)
}

// InvertBuffer returns a new buffer where every sample v of b becomes 255-v.
// InvertBuffer(InvertBuffer(b)) equals b.
func InvertBuffer(b *imaging.Buffer) (*imaging.Buffer, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b.Map(invertSamples), nil
}
