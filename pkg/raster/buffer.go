// Package raster holds the pixel grid the turtle draws into.
//
// Coordinates follow the turtle's view of the page: (0, 0) is the bottom-left
// pixel and y grows upward. Image converts to the top-down layout expected by
// image encoders.
package raster

import (
	"image"
	"image/color"

	"turtle/pkg/stack"
)

// Buffer is a fixed-size width x height grid of pixels.
type Buffer struct {
	width  int
	height int
	pix    []color.RGBA // row-major, row 0 is the bottom row

	// sink absorbs writes to coordinates outside the grid
	sink color.RGBA
}

// New allocates a buffer of the given size filled with transparent black.
func New(width, height int) *Buffer {
	b := &Buffer{}
	b.Reset(width, height)
	return b
}

// MaxPixels bounds width*height of a grid, which also keeps both sides
// within the signed 32-bit fields of a bitmap header.
const MaxPixels = 1 << 28

// Reset drops the current pixels and allocates a new grid.
// Negative dimensions are treated as zero; callers validate against
// MaxPixels first.
func (b *Buffer) Reset(width, height int) {
	width = max(width, 0)
	height = max(height, 0)

	b.pix = nil
	b.width = width
	b.height = height
	b.pix = make([]color.RGBA, width*height)
}

// Width returns the number of columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *Buffer) Height() int { return b.height }

// InBounds reports whether (x, y) addresses a pixel of the grid.
func (b *Buffer) InBounds(x, y int) bool {
	return 0 <= x && x < b.width && 0 <= y && y < b.height
}

// Pixel returns a writable reference to the pixel at (x, y). Out-of-bounds
// coordinates yield a shared sink pixel that never reaches the grid, so
// callers may write unconditionally.
func (b *Buffer) Pixel(x, y int) *color.RGBA {
	if !b.InBounds(x, y) {
		return &b.sink
	}

	return &b.pix[y*b.width+x]
}

// At reads the pixel at (x, y); ok is false outside the grid.
func (b *Buffer) At(x, y int) (c color.RGBA, ok bool) {
	if !b.InBounds(x, y) {
		return color.RGBA{}, false
	}

	return b.pix[y*b.width+x], true
}

// Clear paints every pixel with c.
func (b *Buffer) Clear(c color.RGBA) {
	for i := range b.pix {
		b.pix[i] = c
	}
}

// Stamp paints a size x size square centered on (x, y). Sizes below 2 paint
// the single pixel at (x, y). Pixels falling off the grid are dropped.
func (b *Buffer) Stamp(x, y, size int, c color.RGBA) {
	if size < 2 {
		*b.Pixel(x, y) = c
		return
	}

	lo := -(size - 1) / 2
	hi := lo + size

	// visit only the part of the square that overlaps the grid
	x0, x1 := x+max(lo, -x), x+min(hi, b.width-x)
	y0, y1 := y+max(lo, -y), y+min(hi, b.height-y)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			b.pix[py*b.width+px] = c
		}
	}
}

// FloodFill replaces the 4-connected region of the seed pixel's color with c
// and returns the number of pixels changed.
func (b *Buffer) FloodFill(x, y int, c color.RGBA) int {
	seed, ok := b.At(x, y)
	if !ok || seed == c {
		return 0
	}

	filled := 0
	work := stack.NewStack(image.Pt(x, y))
	for !work.Empty() {
		p, _ := work.Pop()
		if cur, ok := b.At(p.X, p.Y); !ok || cur != seed {
			continue
		}

		b.pix[p.Y*b.width+p.X] = c
		filled++

		work.Push(image.Pt(p.X+1, p.Y))
		work.Push(image.Pt(p.X-1, p.Y))
		work.Push(image.Pt(p.X, p.Y+1))
		work.Push(image.Pt(p.X, p.Y-1))
	}

	return filled
}

// Image returns a top-down copy of the grid suitable for image encoders.
func (b *Buffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		row := b.height - 1 - y
		for x := 0; x < b.width; x++ {
			p := b.pix[y*b.width+x]
			p.A = 0xff
			img.SetRGBA(x, row, p)
		}
	}

	return img
}
