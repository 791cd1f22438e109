package raster

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/image/bmp"
)

// Encoder serializes a finished buffer.
type Encoder interface {
	Encode(w io.Writer, b *Buffer) error
}

// BMPEncoder writes 24-bit Windows bitmaps.
type BMPEncoder struct{}

// Encode implements Encoder.
func (BMPEncoder) Encode(w io.Writer, b *Buffer) error {
	if b.Width() == 0 || b.Height() == 0 {
		return fmt.Errorf("cannot encode empty %dx%d buffer", b.Width(), b.Height())
	}

	return bmp.Encode(w, b.Image())
}

// WriteFile encodes b into the file at path, replacing any existing file.
func WriteFile(path string, enc Encoder, b *Buffer) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("cannot close %s: %w", path, cerr)
		}
	}()

	if err := enc.Encode(f, b); err != nil {
		return fmt.Errorf("cannot encode %s: %w", path, err)
	}

	return nil
}
