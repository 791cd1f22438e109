package raster_test

import (
	"bytes"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/image/bmp"

	"turtle/pkg/raster"
)

var (
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestOutOfBoundsWritesNeverTouchGrid(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("pixels outside the grid are absorbed", prop.ForAll(
		func(x, y int) bool {
			b := raster.New(8, 6)
			b.Clear(white)

			*b.Pixel(x, y) = red

			if b.InBounds(x, y) {
				got, _ := b.At(x, y)
				return got == red
			}

			for py := 0; py < b.Height(); py++ {
				for px := 0; px < b.Width(); px++ {
					if c, _ := b.At(px, py); c != white {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(-20, 20),
		gen.IntRange(-20, 20),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestStamp(t *testing.T) {
	tests := []struct {
		size     int
		expected int // pixels painted
	}{
		{size: 0, expected: 1},
		{size: 1, expected: 1},
		{size: 2, expected: 4},
		{size: 3, expected: 9},
	}

	for _, test := range tests {
		b := raster.New(10, 10)
		b.Stamp(5, 5, test.size, red)

		painted := 0
		for y := 0; y < 10; y++ {
			for x := 0; x < 10; x++ {
				if c, _ := b.At(x, y); c == red {
					painted++
				}
			}
		}

		if painted != test.expected {
			t.Errorf("size %d: expected %d pixels, got %d", test.size, test.expected, painted)
		}
		if c, _ := b.At(5, 5); c != red {
			t.Errorf("size %d: center pixel not painted", test.size)
		}
	}
}

func TestStampClipsAtEdge(t *testing.T) {
	b := raster.New(4, 4)
	b.Stamp(0, 0, 3, red)

	for _, p := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if c, _ := b.At(p[0], p[1]); c != red {
			t.Errorf("expected (%d,%d) painted", p[0], p[1])
		}
	}
}

func TestStampHugeSizeOnSmallGrid(t *testing.T) {
	for _, size := range []int{200000, math.MaxInt32, 1 << 40} {
		b := raster.New(10, 10)
		b.Clear(white)
		b.Stamp(5, 5, size, red)

		for y := 0; y < 10; y++ {
			for x := 0; x < 10; x++ {
				if c, _ := b.At(x, y); c != red {
					t.Fatalf("size %d: (%d, %d) not painted", size, x, y)
				}
			}
		}
	}

	// a huge brush entirely off the grid paints nothing
	b := raster.New(10, 10)
	b.Clear(white)
	b.Stamp(-1000000, 5, 3, red)
	b.Stamp(5, 1000000, 1001, red)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c, _ := b.At(x, y); c != white {
				t.Fatalf("(%d, %d) painted by an off-grid stamp", x, y)
			}
		}
	}
}

func TestFloodFillStopsAtBorder(t *testing.T) {
	b := raster.New(7, 7)
	b.Clear(white)

	// 5x5 blue outline from (1,1) to (5,5)
	for i := 1; i <= 5; i++ {
		*b.Pixel(i, 1) = blue
		*b.Pixel(i, 5) = blue
		*b.Pixel(1, i) = blue
		*b.Pixel(5, i) = blue
	}

	if n := b.FloodFill(3, 3, red); n != 9 {
		t.Errorf("expected 9 interior pixels filled, got %d", n)
	}
	if c, _ := b.At(0, 0); c != white {
		t.Errorf("fill leaked outside the outline")
	}
	if c, _ := b.At(1, 1); c != blue {
		t.Errorf("fill overwrote the outline")
	}
}

func TestFloodFillNoop(t *testing.T) {
	b := raster.New(3, 3)
	b.Clear(red)

	if n := b.FloodFill(1, 1, red); n != 0 {
		t.Errorf("same-color fill should change nothing, changed %d", n)
	}
	if n := b.FloodFill(-1, 9, blue); n != 0 {
		t.Errorf("out-of-bounds seed should change nothing, changed %d", n)
	}
}

func TestResetReleasesOldGrid(t *testing.T) {
	b := raster.New(2, 2)
	b.Clear(red)
	b.Reset(3, 1)

	if b.Width() != 3 || b.Height() != 1 {
		t.Fatalf("unexpected size %dx%d", b.Width(), b.Height())
	}
	if c, _ := b.At(0, 0); c == red {
		t.Errorf("reset buffer should not keep old pixels")
	}
}

func TestImageIsBottomUp(t *testing.T) {
	b := raster.New(2, 3)
	b.Clear(white)
	*b.Pixel(0, 0) = red

	img := b.Image()
	if got := img.RGBAAt(0, 2); got != red {
		t.Errorf("turtle (0,0) should be the bottom-left image pixel, got %v", got)
	}
	if got := img.RGBAAt(0, 0); got != white {
		t.Errorf("top-left image pixel should be background, got %v", got)
	}
}

func TestBMPEncoder(t *testing.T) {
	b := raster.New(4, 2)
	b.Clear(blue)
	*b.Pixel(3, 1) = red

	var buf bytes.Buffer
	if err := (raster.BMPEncoder{}).Encode(&buf, b); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	img, err := bmp.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if size := img.Bounds().Size(); size.X != 4 || size.Y != 2 {
		t.Fatalf("unexpected decoded size %v", size)
	}

	r, g, bl, _ := img.At(3, 0).RGBA()
	if r>>8 != 255 || g != 0 || bl != 0 {
		t.Errorf("expected red at top-right, got %v", img.At(3, 0))
	}
}

func TestBMPEncoderRejectsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := (raster.BMPEncoder{}).Encode(&buf, raster.New(0, 5)); err == nil {
		t.Errorf("expected error for empty buffer")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.bmp")

	if err := raster.WriteFile(path, raster.BMPEncoder{}, raster.New(3, 3)); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := raster.WriteFile(filepath.Join(t.TempDir(), "missing", "out.bmp"), raster.BMPEncoder{}, raster.New(3, 3)); err == nil {
		t.Errorf("expected error writing into a missing directory")
	}
}
