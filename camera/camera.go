// Package camera provides a 2D camera for viewing the plant and its soil.
package camera

// Camera controls the viewport into the world. World space is Y-up with the
// plant at the origin; screen space is Y-down in pixels. The camera scrolls
// vertically between the deepest soil and the top of the canopy.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Scale is pixels per world unit at zoom 1
	Scale float32

	// Zoom level (1.0 = default scale)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Vertical scroll limits for the camera center
	MinY, MaxY float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the plant origin.
func New(viewportW, viewportH, scale, minY, maxY float32) *Camera {
	return &Camera{
		Scale:     scale,
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinY:      minY,
		MaxY:      maxY,
		MinZoom:   0.25,
		MaxZoom:   4.0,
	}
}

func (c *Camera) pixelsPerUnit() float32 {
	return c.Scale * c.Zoom
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	ppu := c.pixelsPerUnit()
	sx = c.ViewportW/2 + (wx-c.X)*ppu
	sy = c.ViewportH/2 - (wy-c.Y)*ppu
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	ppu := c.pixelsPerUnit()
	wx = c.X + (sx-c.ViewportW/2)/ppu
	wy = c.Y - (sy-c.ViewportH/2)/ppu
	return wx, wy
}

// WorldLength converts a world distance to pixels.
func (c *Camera) WorldLength(d float32) float32 {
	return d * c.pixelsPerUnit()
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX && wy+radius >= minY && wy-radius <= maxY
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Scroll moves the camera vertically by dy world units, clamped to the limits.
func (c *Camera) Scroll(dy float32) {
	c.Y = clamp(c.Y+dy, c.MinY, c.MaxY)
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	ppu := c.pixelsPerUnit()
	c.X += dx / ppu
	c.Scroll(-dy / ppu)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the plant origin and default zoom.
func (c *Camera) Reset() {
	c.X = 0
	c.Y = clamp(0, c.MinY, c.MaxY)
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	ppu := c.pixelsPerUnit()
	halfW := c.ViewportW / (2 * ppu)
	halfH := c.ViewportH / (2 * ppu)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
