package pixel

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPNGRoundTrip(t *testing.T) {
	b := gradient(7, 5)
	var buf bytes.Buffer
	if err := EncodePNG(&buf, b); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, format, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if !got.Equal(b) {
		t.Error("PNG round trip is not lossless")
	}
}

func TestJPEGKeepsSize(t *testing.T) {
	b := gradient(16, 8)
	var buf bytes.Buffer
	if err := EncodeJPEG(&buf, b); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, format, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if format != "jpeg" || got.Width != 16 || got.Height != 8 {
		t.Errorf("got %s %dx%d, want jpeg 16x8", format, got.Width, got.Height)
	}
}

func TestDecodePNM(t *testing.T) {
	ppm := []byte("P6\n2 1\n255\n\xff\x00\x00\x00\x00\xff")
	got, _, err := Decode(bytes.NewReader(ppm))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ARGB(0, 0) != 0xFFFF0000 || got.ARGB(1, 0) != 0xFF0000FF {
		t.Errorf("pixels = %#x %#x", got.ARGB(0, 0), got.ARGB(1, 0))
	}
}

func TestEncodeEmpty(t *testing.T) {
	if err := EncodePNG(&bytes.Buffer{}, nil); err == nil {
		t.Error("expected error for nil buffer")
	}
}

func TestWriteReadFile(t *testing.T) {
	dir := t.TempDir()
	b := gradient(3, 3)

	path := filepath.Join(dir, "shot.png")
	if err := WriteFile(path, b); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !got.Equal(b) {
		t.Error("file round trip changed pixels")
	}

	err = WriteFile(filepath.Join(dir, "shot.bmp"), b)
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only shot.png", len(entries))
	}
}
