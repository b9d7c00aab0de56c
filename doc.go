// Package newton provides the numeric core of an interactive Newton-fractal
// visualization for the GoGPU ecosystem.
//
// # Overview
//
// A Newton fractal colors each point of the complex plane by the root that
// Newton's method converges to when started there. The heavy per-pixel work
// happens in a GPU fragment shader; this package owns everything on the host
// side of that boundary:
//
//   - Config: the live-editable application state (roots, camera, iteration
//     count), mutated only through ConfigChangeEvent values.
//   - Coefficients: expansion of the root set into the monic polynomial
//     P(x) = Π(x − rᵢ) consumed by the shader.
//
// The gpucore subpackage defines the fixed byte layout shared with the
// shader, and the render subpackage drives the wgpu pipeline each frame.
//
// # Quick Start
//
//	cfg := newton.DefaultConfig()
//	if err := cfg.Apply(newton.AddRoot{}); err != nil {
//	    // event rejected, cfg unchanged
//	}
//	coeffs, _ := newton.Coefficients(cfg.RootPositions())
//
// # Event Protocol
//
// Config is single-writer: events are applied one at a time, strictly
// between frames. Apply validates before mutating, so a rejected event
// never leaves partial state behind.
//
// # Logging
//
// By default the package produces no log output. Call SetLogger to enable
// structured logging via log/slog.
package newton

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
