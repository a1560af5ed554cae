// Package camera provides a pan and zoom viewport onto an unbounded noise field.
package camera

// Camera controls the viewport into the noise field.
//
// The centre is kept in lattice space, so zooming (changing the sample
// frequency) leaves the point under the centre of the view fixed.
type Camera struct {
	// Position is the camera center in lattice coordinates
	X, Y float64

	// Frequency is the lattice distance between neighbouring samples
	Frequency float64

	// Viewport dimensions in samples
	ViewportW, ViewportH int

	// Frequency constraints
	MinFrequency, MaxFrequency float64
}

// New creates a camera centered on the lattice origin.
func New(viewportW, viewportH int, frequency float64) *Camera {
	return &Camera{
		Frequency:    frequency,
		ViewportW:    viewportW,
		ViewportH:    viewportH,
		MinFrequency: 1e-5,
		MaxFrequency: 10,
	}
}

// NewAt creates a camera whose top-left sample sits at world coordinate (x, y).
func NewAt(x, y float64, viewportW, viewportH int, frequency float64) *Camera {
	c := New(viewportW, viewportH, frequency)
	c.X = (x + float64(viewportW)/2) * frequency
	c.Y = (y + float64(viewportH)/2) * frequency
	return c
}

// Origin returns the world coordinate of the top-left sample, the start
// point for a batch fill at the camera's frequency.
func (c *Camera) Origin() (x, y float64) {
	return c.X/c.Frequency - float64(c.ViewportW)/2, c.Y/c.Frequency - float64(c.ViewportH)/2
}

// ScreenToLattice converts a sample position in the viewport to lattice coordinates.
func (c *Camera) ScreenToLattice(sx, sy float64) (lx, ly float64) {
	lx = c.X + (sx-float64(c.ViewportW)/2)*c.Frequency
	ly = c.Y + (sy-float64(c.ViewportH)/2)*c.Frequency
	return lx, ly
}

// LatticeToScreen converts lattice coordinates to a sample position in the viewport.
func (c *Camera) LatticeToScreen(lx, ly float64) (sx, sy float64) {
	sx = float64(c.ViewportW)/2 + (lx-c.X)/c.Frequency
	sy = float64(c.ViewportH)/2 + (ly-c.Y)/c.Frequency
	return sx, sy
}

// Resize updates viewport dimensions. The centre stays put.
func (c *Camera) Resize(viewportW, viewportH int) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in samples.
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx * c.Frequency
	c.Y += dy * c.Frequency
}

// SetFrequency sets the sample frequency, clamped to min/max.
func (c *Camera) SetFrequency(frequency float64) {
	c.Frequency = clamp(frequency, c.MinFrequency, c.MaxFrequency)
}

// ZoomBy multiplies the current frequency by the given factor. Factors below
// one zoom in.
func (c *Camera) ZoomBy(factor float64) {
	c.SetFrequency(c.Frequency * factor)
}

// VisibleBounds returns the lattice-coordinate bounds of the visible area.
func (c *Camera) VisibleBounds() (minX, minY, maxX, maxY float64) {
	halfW := float64(c.ViewportW) * c.Frequency / 2
	halfH := float64(c.ViewportH) * c.Frequency / 2
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
