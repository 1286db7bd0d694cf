// Package imagemeta reads the pixel dimensions of source images.
package imagemeta

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
)

// ErrImageDecode is returned when a file is not a decodable JPEG or PNG.
var ErrImageDecode = errors.New("image decode failure")

// supportedMIMETypes are the formats with a registered decoder.
var supportedMIMETypes = []string{"image/jpeg", "image/png"}

// Size is the stored pixel size of an image. EXIF orientation is ignored.
type Size struct {
	Width  int
	Height int
}

// Decode sniffs the content type of path and reads its header. Only the
// header is decoded, not the pixel data.
func Decode(path string) (Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return Size{}, fmt.Errorf("%w: %s: %v", ErrImageDecode, path, err)
	}
	defer f.Close()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return Size{}, fmt.Errorf("%w: %s: %v", ErrImageDecode, path, err)
	}
	if !mimetype.EqualsAny(mtype.String(), supportedMIMETypes...) {
		return Size{}, fmt.Errorf("%w: %s: unsupported file type %s", ErrImageDecode, path, mtype.String())
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Size{}, fmt.Errorf("%w: %s: %v", ErrImageDecode, path, err)
	}
	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return Size{}, fmt.Errorf("%w: %s: %v", ErrImageDecode, path, err)
	}

	logf(path, "format=%s mime=%s size=%dx%d", format, mtype.String(), cfg.Width, cfg.Height)
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}
