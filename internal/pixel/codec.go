package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/go-forks/gopnm"
)

// JPEGQuality is the quality every JPEG export uses.
const JPEGQuality = 95

var ErrUnknownFormat = errors.New("pixel: unknown image format")

// EncodeJPEG writes b as a JPEG at JPEGQuality. Alpha is discarded.
func EncodeJPEG(w io.Writer, b *Buffer) error {
	if b.Empty() {
		return errors.New("pixel: encode empty buffer")
	}
	return jpeg.Encode(w, b.NRGBA(), &jpeg.Options{Quality: JPEGQuality})
}

// EncodePNG writes b as a PNG.
func EncodePNG(w io.Writer, b *Buffer) error {
	if b.Empty() {
		return errors.New("pixel: encode empty buffer")
	}
	return png.Encode(w, b.NRGBA())
}

// Decode reads a JPEG, PNG or PNM image and returns it with its format name.
func Decode(r io.Reader) (*Buffer, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("pixel: decode: %w", err)
	}
	return FromImage(img), format, nil
}

// ReadFile decodes the image stored at path.
func ReadFile(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// WriteFile encodes b to path, choosing the codec from the file extension.
// The file is written to a temporary name first and renamed into place, so
// a failed encode never leaves a truncated image behind.
func WriteFile(path string, b *Buffer) error {
	var encode func(io.Writer, *Buffer) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		encode = EncodeJPEG
	case ".png":
		encode = EncodePNG
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapbook-*"+filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := encode(tmp, b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
