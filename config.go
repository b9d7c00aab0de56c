package newton

import "github.com/gogpu/newton/gpucore"

// Root is one zero of the visualized polynomial together with the display
// color of its basin of attraction. Roots are ordered and index-addressable;
// removing a root shifts all higher indices down by one.
type Root struct {
	Position Complex
	Color    RGBA
}

// DefaultRoot returns the root appended by AddRoot: origin position,
// opaque black color.
func DefaultRoot() Root {
	return Root{
		Position: Complex{},
		Color:    RGBA{R: 0, G: 0, B: 0, A: 1},
	}
}

// Camera holds the user-editable view parameters.
//
// Camera is configurable through SetCameraPosition and SetCameraZoom but is
// deliberately not applied to the encoded viewport bounds yet: the shader
// contract fixes the viewport to (-1,1)..(1,-1), and wiring the camera in is
// a joint host+shader protocol change. See gpucore.DefaultParams.
type Camera struct {
	Position Complex
	Zoom     float64
}

// DefaultCamera returns a camera at the origin with zoom 1.
func DefaultCamera() Camera {
	return Camera{Position: Complex{}, Zoom: 1.0}
}

// Config is the editable application state: iteration count, root set, and
// camera. It is created once, mutated only through sequential Apply calls,
// and read every frame by the params packer.
//
// Config is NOT safe for concurrent use. The frame loop is the single
// writer and single reader; events are applied strictly between frames.
//
// Invariant: len(Roots) < gpucore.MaxRoots, so the derived coefficient
// vector (degree+1 entries) always fits the fixed ABI capacity.
type Config struct {
	Iterations uint32
	Roots      []Root
	Camera     Camera
}

// DefaultConfig returns the initial application state: 30 iterations and
// two roots at (0.5, 0) and (-0.5, 0), giving P(x) = x^2 - 0.25.
func DefaultConfig() *Config {
	return &Config{
		Iterations: 30,
		Roots: []Root{
			{Position: C(0.5, 0), Color: RGBA{R: 0, G: 0.75, B: 0, A: 1}},
			{Position: C(-0.5, 0), Color: RGBA{R: 0, G: 0, B: 1, A: 0}},
		},
		Camera: DefaultCamera(),
	}
}

// RootPositions returns the positions of all roots in order.
// The returned slice is freshly allocated.
func (c *Config) RootPositions() []Complex {
	out := make([]Complex, len(c.Roots))
	for i, r := range c.Roots {
		out[i] = r.Position
	}
	return out
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	out := &Config{
		Iterations: c.Iterations,
		Roots:      make([]Root, len(c.Roots)),
		Camera:     c.Camera,
	}
	copy(out.Roots, c.Roots)
	return out
}

// canAddRoot reports whether one more root fits under the ABI capacity.
func (c *Config) canAddRoot() bool {
	return len(c.Roots)+1 < gpucore.MaxRoots
}
