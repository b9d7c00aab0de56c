// Package gpucore defines the wire-level parameter block shared between
// the host and the fractal shader.
//
// The layout is a fixed-size, little-endian byte contract: every field
// sits at an explicit offset, unused capacity is zero-filled, and the
// encoded size never varies with the root count. Host-side editing types
// live in the parent package; gpucore holds only what crosses the GPU
// boundary.
package gpucore
