package gpucore

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ABI capacity constants. The shader declares fixed-size arrays with
// these bounds; changing them is a joint host+shader change.
const (
	// MaxRoots is the root array capacity. The editable root set must stay
	// strictly below it so the derived coefficient vector (degree+1
	// entries) fits MaxCoefficients.
	MaxRoots = 10

	// MaxCoefficients is the coefficient array capacity, enough for a
	// monic polynomial of degree MaxRoots.
	MaxCoefficients = MaxRoots + 1
)

// Byte layout of the encoded parameter block. All fields little-endian,
// floats as IEEE-754 bits.
//
//	offset  size  field
//	     0     4  iterations (u32)
//	     4     4  padding
//	     8     8  viewport_min (2 x f32)
//	    16     8  viewport_max (2 x f32)
//	    24     4  root_count (u32)
//	    28     4  padding
//	    32   320  roots (10 x 32 bytes)
//	   352    88  coefficients (11 x 2 x f32)
//
// Each 32-byte root slot:
//
//	offset  size  field
//	     0    16  color (4 x f32)
//	    16     8  position (2 x f32)
//	    24     8  padding
const (
	// ParamsByteSize is the exact encoded size of a Params block.
	ParamsByteSize = 440

	rootsOffset        = 32
	rootStride         = 32
	coefficientsOffset = rootsOffset + MaxRoots*rootStride
)

// Root is the wire form of one polynomial root: basin color first, then
// position, padded to a 16-byte-aligned 32-byte slot.
type Root struct {
	Color    [4]float32
	Position [2]float32
}

// Params is the complete per-frame parameter block consumed by the
// fractal shader. Unused root and coefficient slots are zero.
//
// ViewportMin is the complex-plane point mapped to the top-left corner of
// the render target and ViewportMax the bottom-right; the Y axis is
// flipped relative to screen space so the upper half-plane renders on top.
type Params struct {
	Iterations   uint32
	ViewportMin  [2]float32
	ViewportMax  [2]float32
	RootCount    uint32
	Roots        [MaxRoots]Root
	Coefficients [MaxCoefficients][2]float32
}

// DefaultParams returns a zero-root block with 10 iterations and the
// fixed viewport (-1, 1)..(1, -1).
func DefaultParams() Params {
	return Params{
		Iterations:  10,
		ViewportMin: [2]float32{-1, 1},
		ViewportMax: [2]float32{1, -1},
	}
}

// Encode serializes the block into a fresh ParamsByteSize buffer.
func (p *Params) Encode() []byte {
	buf := make([]byte, ParamsByteSize)
	_ = p.EncodeTo(buf) // length is known good
	return buf
}

// EncodeTo serializes the block into dst, which must be at least
// ParamsByteSize bytes. Bytes beyond the block are left untouched.
// Encoding is deterministic: equal blocks produce identical bytes.
func (p *Params) EncodeTo(dst []byte) error {
	if len(dst) < ParamsByteSize {
		return fmt.Errorf("gpucore: params buffer too small: %d < %d", len(dst), ParamsByteSize)
	}

	putU32 := func(off int, v uint32) {
		binary.LittleEndian.PutUint32(dst[off:], v)
	}
	putF32 := func(off int, v float32) {
		binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(v))
	}

	putU32(0, p.Iterations)
	putU32(4, 0)
	putF32(8, p.ViewportMin[0])
	putF32(12, p.ViewportMin[1])
	putF32(16, p.ViewportMax[0])
	putF32(20, p.ViewportMax[1])
	putU32(24, p.RootCount)
	putU32(28, 0)

	for i := range p.Roots {
		base := rootsOffset + i*rootStride
		r := &p.Roots[i]
		putF32(base+0, r.Color[0])
		putF32(base+4, r.Color[1])
		putF32(base+8, r.Color[2])
		putF32(base+12, r.Color[3])
		putF32(base+16, r.Position[0])
		putF32(base+20, r.Position[1])
		putU32(base+24, 0)
		putU32(base+28, 0)
	}

	for i := range p.Coefficients {
		base := coefficientsOffset + i*8
		putF32(base+0, p.Coefficients[i][0])
		putF32(base+4, p.Coefficients[i][1])
	}
	return nil
}
