package interpreter

// Display dimensions in pixels.
const (
	Width  = 64
	Height = 32
)

// Frame is a 64x32 framebuffer with one byte per pixel valued 0 or 1,
// stored row by row.
type Frame [Width * Height]uint8

// Pixel returns the pixel value at the given coordinates.
func (f *Frame) Pixel(x, y int) uint8 {
	return f[y*Width+x]
}

func (f *Frame) clear() {
	*f = Frame{}
}

// flip inverts the pixel at the wrapped coordinates and returns true if the
// pixel was set before, which is a collision.
func (f *Frame) flip(x, y int) bool {
	index := (y%Height)*Width + x%Width
	collision := f[index] == 1
	f[index] ^= 1
	return collision
}
