package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder (decode only)
)

// acceptedExtensions lists the file extensions the codec will decode.
// BMP and TIFF decoders are registered by the disintegration/imaging
// import; WebP comes from golang.org/x/image and has no encoder.
var acceptedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
	".tiff": true,
	".webp": true,
}

// IsImageFile reports whether path has an accepted image extension.
// The check is case-insensitive and looks at the name only, not the
// file contents.
func IsImageFile(path string) bool {
	return acceptedExtensions[strings.ToLower(filepath.Ext(path))]
}

// DecodeError reports that an input file could not be decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports that an output file could not be written.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %s: %v", filepath.Base(e.Path), e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// Codec reads and writes image files, flattening everything it decodes
// to opaque 8-bit RGB.
//
// Decode always reads from disk; DecodeCached consults an in-memory
// cache first, which suits repeated inspection of the same file. The
// cache is safe for concurrent use. Batch runs read each file exactly
// once and use the uncached path.
type Codec struct {
	mu    sync.RWMutex
	cache map[string]*image.NRGBA
}

// NewCodec returns a Codec with an empty cache.
func NewCodec() *Codec {
	return &Codec{cache: make(map[string]*image.NRGBA)}
}

// Decode reads and decodes an image file.
//
// Parameters:
//   - path: File to read. The extension must be one of the accepted
//     image extensions (case-insensitive).
//
// Returns the image flattened to opaque NRGBA, or a *DecodeError if the
// extension is not accepted, the file cannot be opened, or the contents
// cannot be decoded.
func (c *Codec) Decode(path string) (*image.NRGBA, error) {
	if !IsImageFile(path) {
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("unsupported extension %q", filepath.Ext(path))}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}

	return flatten(img), nil
}

// DecodeCached is Decode with an in-memory cache keyed by the exact
// path string. Different spellings of the same path cache separately.
func (c *Codec) DecodeCached(path string) (*image.NRGBA, error) {
	c.mu.RLock()
	if img, ok := c.cache[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := c.Decode(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[path] = img
	c.mu.Unlock()

	return img, nil
}

// Evict removes a cached entry. Unknown paths are ignored.
func (c *Codec) Evict(path string) {
	c.mu.Lock()
	delete(c.cache, path)
	c.mu.Unlock()
}

// Clear empties the decode cache.
func (c *Codec) Clear() {
	c.mu.Lock()
	c.cache = make(map[string]*image.NRGBA)
	c.mu.Unlock()
}

// Encode writes an image to path, choosing the format from the path's
// extension.
//
// The write is atomic: the image is encoded to a temporary file in the
// destination directory and renamed into place only on success, so a
// failed encode never leaves a partial output behind. WebP output is
// rejected because the WebP support in golang.org/x/image is
// decode-only.
//
// Returns a *EncodeError on any failure.
func (c *Codec) Encode(img image.Image, path string) error {
	format, err := imaging.FormatFromExtension(filepath.Ext(path))
	if err != nil {
		return &EncodeError{Path: path, Err: fmt.Errorf("unsupported output format %q: %w", filepath.Ext(path), err)}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".colormatch-*")
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}

	if err := imaging.Encode(tmp, img, format); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &EncodeError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &EncodeError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return &EncodeError{Path: path, Err: err}
	}
	return nil
}

// flatten converts any decoded image to straight-alpha NRGBA and forces
// every pixel opaque, discarding alpha the way the rest of the core
// expects.
func flatten(img image.Image) *image.NRGBA {
	out := imaging.Clone(img)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 255
	}
	return out
}
