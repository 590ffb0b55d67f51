// Package imaging provides the pixel-level core of the color matcher.
//
// This package implements masked average-color measurement, the global
// additive color shift, and the codec adapter that moves images between
// disk and the in-memory representation. All operations work with
// standard Go image.Image types; the codec flattens every decoded image
// to opaque 8-bit RGB before the core sees it.
//
// # Color Representation
//
// Two color types appear throughout:
//   - RGBColor: an 8-bit integer triple, used for pixels and mask colors
//   - Color: a float64 triple, used for per-channel means (never rounded
//     by the averaging step itself)
//
// # Masking
//
// A Mask excludes background-like pixels from an average. A pixel is
// excluded only when every one of its three channels is within the
// tolerance of the mask color; a pixel that is close on one channel but
// far on another is still included. If a mask would exclude every pixel
// of an image, Average falls back to the full-image mean so the result
// is always defined.
//
// # Error Handling
//
// The codec returns typed *DecodeError and *EncodeError values so the
// batch engine can record per-item failures without aborting a run.
// Encoding is atomic: output is written to a temporary file and renamed
// into place, so a failed encode never leaves a partial file behind.
package imaging
