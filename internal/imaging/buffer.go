package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
)

// Channels is the number of 8-bit samples stored per pixel in a Buffer,
// in red, green, blue order.
const Channels = 3

// Buffer is an immutable, tightly packed RGB image.
//
// Samples are laid out row-major: the pixel at (x, y) occupies
// pix[(y*width+x)*3 : (y*width+x)*3+3]. The sample slice is never exposed;
// every accessor returns a copy and every transform returns a new Buffer, so
// a Buffer may be shared freely between goroutines.
//
// Buffer implements image.Image as a fully opaque image, which lets it be
// handed directly to encoders and to the disintegration/imaging helpers.
type Buffer struct {
	width  int
	height int
	pix    []uint8
}

// NewBuffer builds a Buffer from a copy of pix.
//
// Returns ErrInvalidImage if either dimension is not positive or if
// len(pix) != width*height*3.
func NewBuffer(width, height int, pix []uint8) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidImage, width, height)
	}
	if len(pix) != width*height*Channels {
		return nil, fmt.Errorf("%w: got %d samples, want %d for %dx%d",
			ErrInvalidImage, len(pix), width*height*Channels, width, height)
	}
	owned := make([]uint8, len(pix))
	copy(owned, pix)
	return &Buffer{width: width, height: height, pix: owned}, nil
}

// FromImage converts any decoded image into a Buffer.
//
// Alpha is discarded: each pixel is first converted to non-premultiplied
// RGBA and only its colour samples are kept. The result always starts at
// the origin regardless of img.Bounds().Min.
func FromImage(img image.Image) (*Buffer, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: zero-area image %v", ErrInvalidImage, bounds)
	}

	if b, ok := img.(*Buffer); ok {
		return b.Clone(), nil
	}

	nrgba := imaging.Clone(img)
	width, height := bounds.Dx(), bounds.Dy()
	pix := make([]uint8, width*height*Channels)
	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			src := nrgba.Pix[y*nrgba.Stride : y*nrgba.Stride+width*4]
			dst := pix[y*width*Channels : (y+1)*width*Channels]
			for x := 0; x < width; x++ {
				dst[x*3+0] = src[x*4+0]
				dst[x*3+1] = src[x*4+1]
				dst[x*3+2] = src[x*4+2]
			}
		}
	})

	return &Buffer{width: width, height: height, pix: pix}, nil
}

// Validate reports whether b is a well-formed, non-empty buffer.
// It is safe to call on a nil receiver.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidImage)
	}
	if b.width <= 0 || b.height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidImage, b.width, b.height)
	}
	if len(b.pix) != b.width*b.height*Channels {
		return fmt.Errorf("%w: %d samples for %dx%d", ErrInvalidImage, len(b.pix), b.width, b.height)
	}
	return nil
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.height }

// Samples returns a copy of the packed RGB samples.
func (b *Buffer) Samples() []uint8 {
	out := make([]uint8, len(b.pix))
	copy(out, b.pix)
	return out
}

// RGB returns the samples of the pixel at (x, y). ok is false outside the buffer.
func (b *Buffer) RGB(x, y int) (r, g, bl uint8, ok bool) {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return 0, 0, 0, false
	}
	i := (y*b.width + x) * Channels
	return b.pix[i], b.pix[i+1], b.pix[i+2], true
}

// Clone returns a deep copy of b.
func (b *Buffer) Clone() *Buffer {
	return &Buffer{width: b.width, height: b.height, pix: b.Samples()}
}

// Equal reports whether b and o have the same dimensions and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.width == o.width && b.height == o.height && bytes.Equal(b.pix, o.pix)
}

// Map returns a new buffer of the same size whose samples are produced by fn.
//
// The rows are split into bands processed concurrently; fn receives the
// destination and source samples of one band (equal length, whole pixels)
// and must not retain either slice. b itself is never modified.
func (b *Buffer) Map(fn func(dst, src []uint8)) *Buffer {
	out := &Buffer{width: b.width, height: b.height, pix: make([]uint8, len(b.pix))}
	stride := b.width * Channels
	parallel.Line(b.height, func(start, end int) {
		fn(out.pix[start*stride:end*stride], b.pix[start*stride:end*stride])
	})
	return out
}

// NRGBA returns an opaque *image.NRGBA copy of b.
func (b *Buffer) NRGBA() *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for i, j := 0, 0; i < len(b.pix); i, j = i+Channels, j+4 {
		dst.Pix[j+0] = b.pix[i+0]
		dst.Pix[j+1] = b.pix[i+1]
		dst.Pix[j+2] = b.pix[i+2]
		dst.Pix[j+3] = 0xff
	}
	return dst
}

// ColorModel implements image.Image.
func (b *Buffer) ColorModel() color.Model { return color.RGBAModel }

// Bounds implements image.Image.
func (b *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, b.width, b.height) }

// At implements image.Image. Pixels outside the buffer are transparent black.
func (b *Buffer) At(x, y int) color.Color {
	r, g, bl, ok := b.RGB(x, y)
	if !ok {
		return color.RGBA{}
	}
	return color.RGBA{R: r, G: g, B: bl, A: 0xff}
}
