// Package imaging provides the image plumbing around the negative pipeline:
// decoding sources, the packed RGB Buffer the pipeline operates on, pixel
// sampling, comparison previews and export encoding.
//
// All operations work with standard Go image.Image types and use a coordinate
// system where (0,0) is at the top-left corner, X increases rightward, and Y
// increases downward.
//
// # Buffer
//
// Buffer is the pipeline's pixel representation: exactly three 8-bit
// channels (red, green, blue), tightly packed, immutable once built. Sources
// with an alpha channel are normalized by FromImage, which keeps the
// non-premultiplied colour and drops alpha.
//
// # Thread Safety
//
// Buffer values are immutable and SourceCache is safe for concurrent use.
// The remaining functions are stateless.
//
// # Export
//
// Export and EncodeTo support png, jpg and webp. JPEG has no transparency,
// so jpg output is flattened over opaque black before encoding; png and webp
// are lossless.
//
// # Error Handling
//
// Failures are reported through the sentinel errors in errors.go, wrapped
// with detail; match them with errors.Is:
//   - ErrDecode for unreadable or undecodable sources
//   - ErrInvalidImage for nil, empty or malformed buffers
//   - ErrUnsupportedFormat for unknown export formats
//   - ErrInvalidPercent for comparison percentages outside [0, 100]
package imaging
