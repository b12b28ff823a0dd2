package chip8

// Display dimensions of the standard CHIP-8.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Display is the monochrome framebuffer. Only sprite draws and CLS mutate
// it; the renderer reads it through Pixel.
type Display struct {
	pixels [DisplayWidth * DisplayHeight]uint8
}

func NewDisplay() *Display {
	return &Display{}
}

// Clear blanks every pixel.
func (d *Display) Clear() {
	d.pixels = [DisplayWidth * DisplayHeight]uint8{}
}

// Pixel reports whether the pixel at (x, y) is lit. The origin is the top
// left corner.
func (d *Display) Pixel(x, y int) bool {
	return d.pixels[y*DisplayWidth+x] == 1
}

// Draw XORs an 8-pixel-wide sprite onto the buffer at (x, y), one byte per
// row, most significant bit leftmost. Coordinates wrap on both axes, per
// pixel, so sprites crossing an edge continue on the opposite side. It
// reports whether any lit pixel was flipped off (a collision).
func (d *Display) Draw(x, y uint8, sprite []byte) bool {
	collision := false
	for dy, row := range sprite {
		for dx := 0; dx < 8; dx++ {
			if row&(0x80>>dx) == 0 {
				continue
			}
			tx := (int(x) + dx) % DisplayWidth
			ty := (int(y) + dy) % DisplayHeight
			idx := ty*DisplayWidth + tx
			if d.pixels[idx] == 1 {
				collision = true
			}
			d.pixels[idx] ^= 1
		}
	}
	return collision
}
