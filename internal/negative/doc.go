// Package negative implements the two pixel transforms of the pipeline:
// full colour inversion of a source image, and the single-parameter
// channel correction applied on top of the inverted baseline.
//
// Both transforms are pure. They never modify their input and always return
// a new imaging.Buffer of the same dimensions, so rendering the same
// (baseline, intensity) pair twice yields byte-identical output.
//
// # Inversion
//
// Invert first normalizes the source to three channels, dropping any alpha,
// then replaces every sample v with 255-v. Building with the opencv tag
// performs the per-sample step with OpenCV's bitwise_not through gocv; the
// output is identical.
//
// # Correction
//
// Correct adds round(intensity*1.2) to blue and round(intensity*0.2) to
// green, saturating at 255, and leaves red untouched. The coefficients are
// a fixed warm/cool cast, not a white-balance model.
package negative
