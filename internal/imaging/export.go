package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
)

// Export formats.
const (
	FormatPNG  = "png"
	FormatJPG  = "jpg"
	FormatWebP = "webp"
)

// ExportBaseName is the file name stem offered for exported images.
const ExportBaseName = "polarity-io-export"

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 90

var mimeTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatJPG:  "image/jpeg",
	FormatWebP: "image/webp",
}

// ExportResult contains an encoded image ready to be offered for download.
type ExportResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Format      string `json:"format"`
	Filename    string `json:"filename"`
	MimeType    string `json:"mime_type"`
	SizeBytes   int    `json:"size_bytes"`
	ImageBase64 string `json:"image_base64,omitempty"`
}

// NormalizeFormat lower-cases format and maps "jpeg" to "jpg".
// Anything other than png, jpg or webp returns ErrUnsupportedFormat.
func NormalizeFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	if f == "jpeg" {
		f = FormatJPG
	}
	if _, ok := mimeTypes[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return f, nil
}

// MimeType returns the MIME type for a normalized format, or "" if unknown.
func MimeType(format string) string {
	return mimeTypes[format]
}

// Flatten composites img over an opaque background of color bg.
// Formats without transparency are flattened over black before encoding.
func Flatten(img image.Image, bg color.Color) *image.NRGBA {
	bounds := img.Bounds()
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), bg)
	return imaging.Overlay(canvas, img, image.Pt(0, 0), 1.0)
}

// EncodeTo writes img to w in the given format.
//
// jpg output is first flattened over black since JPEG has no alpha; quality
// must be in [1, 100]. webp output is lossless. png ignores quality.
func EncodeTo(w io.Writer, img image.Image, format string, quality int) error {
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("%w: nothing to encode", ErrInvalidImage)
	}
	f, err := NormalizeFormat(format)
	if err != nil {
		return err
	}

	switch f {
	case FormatPNG:
		err = imaging.Encode(w, img, imaging.PNG)
	case FormatJPG:
		if quality < 1 || quality > 100 {
			return fmt.Errorf("jpeg quality %d outside [1, 100]", quality)
		}
		err = imaging.Encode(w, Flatten(img, color.Black), imaging.JPEG, imaging.JPEGQuality(quality))
	case FormatWebP:
		err = nativewebp.Encode(w, imaging.Clone(img), &nativewebp.Options{})
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", f, err)
	}
	return nil
}

// Export encodes img and returns it base64-encoded together with the
// download metadata a client needs.
func Export(img image.Image, format string, quality int) (*ExportResult, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, img, format, quality); err != nil {
		return nil, err
	}
	f, _ := NormalizeFormat(format)

	bounds := img.Bounds()
	return &ExportResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		Format:      f,
		Filename:    ExportBaseName + "." + f,
		MimeType:    MimeType(f),
		SizeBytes:   buf.Len(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}
