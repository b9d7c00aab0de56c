package newton

// RGBA represents a root's basin color with red, green, blue, and alpha
// components. Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Scale returns the color with R, G, and B multiplied by s.
// Alpha is unchanged.
func (c RGBA) Scale(s float64) RGBA {
	return RGBA{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}
