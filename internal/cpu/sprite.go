package cpu

import "math/bits"

const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Bitmap is the 64x32 monochrome display, one word per row. Bit k of row y
// is the pixel at column k, so bit 0 is the leftmost pixel.
type Bitmap [ScreenHeight]uint64

// Pixel reports whether the pixel at (x, y) is lit.
func (b Bitmap) Pixel(x, y int) bool {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return false
	}
	return b[y]&(1<<uint(x)) != 0
}

// Display renders a complete bitmap. It is called after every instruction
// that changes the bitmap, never with a diff.
type Display interface {
	Draw(bitmap Bitmap)
}

// drawSprite XORs the sprite rows into the bitmap at (x, y) and reports
// whether any lit pixel was turned off. Columns past 63 are shifted out of
// the row and rows past 31 are not drawn.
func (b *Bitmap) drawSprite(x, y uint8, sprite []byte) bool {
	collision := false
	for row, data := range sprite {
		line := int(y) + row
		if line >= ScreenHeight {
			continue
		}

		previous := b[line] & (uint64(0xFF) << x)
		b[line] ^= uint64(bits.Reverse8(data)) << x

		if b[line]&previous != previous {
			collision = true
		}
	}
	return collision
}

func (b *Bitmap) clear() {
	*b = Bitmap{}
}
