package cpu

import (
	"iter"
	"strings"
)

const (
	DISPLAY_WIDTH  = 64 // Display width, in pixels.
	DISPLAY_HEIGHT = 32 // Display height, in pixels.
)

// Display is the monochrome framebuffer, stored row-major.
type Display struct {
	Pixels [DISPLAY_WIDTH * DISPLAY_HEIGHT]bool
}

// Clear turns every pixel off.
func (d *Display) Clear() {
	clear(d.Pixels[:])
}

// Pixel returns the state of the pixel at (x, y). Coordinates wrap.
func (d *Display) Pixel(x, y int) bool {
	return d.Pixels[offset(x, y)]
}

// Blit XORs an 8-pixel wide sprite, one byte per row with the MSB leftmost,
// onto the display at (x, y). Coordinates wrap around both edges.
// Returns true if any lit pixel was turned off.
func (d *Display) Blit(x, y int, sprite []uint8) (collision bool) {
	for row, data := range sprite {
		for col := range 8 {
			if (data>>(7-col))&1 == 0 {
				continue
			}
			n := offset(x+col, y+row)
			if d.Pixels[n] {
				collision = true
			}
			d.Pixels[n] = !d.Pixels[n]
		}
	}

	return
}

// Lit returns the number of pixels that are on.
func (d *Display) Lit() (count int) {
	for _, on := range d.Pixels {
		if on {
			count++
		}
	}
	return
}

// Rows returns an iterator over the rows of the display, top to bottom.
// The yielded slice aliases the framebuffer.
func (d *Display) Rows() iter.Seq2[int, []bool] {
	return func(yield func(y int, row []bool) bool) {
		for y := range DISPLAY_HEIGHT {
			if !yield(y, d.Pixels[y*DISPLAY_WIDTH:(y+1)*DISPLAY_WIDTH]) {
				return
			}
		}
	}
}

// String renders the display with '#' for lit and '.' for unlit pixels.
func (d *Display) String() string {
	var sb strings.Builder
	for _, row := range d.Rows() {
		for _, on := range row {
			if on {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func offset(x, y int) int {
	x %= DISPLAY_WIDTH
	if x < 0 {
		x += DISPLAY_WIDTH
	}
	y %= DISPLAY_HEIGHT
	if y < 0 {
		y += DISPLAY_HEIGHT
	}
	return y*DISPLAY_WIDTH + x
}
