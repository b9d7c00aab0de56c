package newton

import "math"

// Complex represents a point or value in the complex plane.
// Host-side code works in float64; values are narrowed to float32 pairs
// only at the GPU encoding boundary.
type Complex struct {
	Re, Im float64
}

// C is a convenience function to create a Complex.
func C(re, im float64) Complex {
	return Complex{Re: re, Im: im}
}

// FromPolar creates a Complex from a radius and an angle in radians.
func FromPolar(r, theta float64) Complex {
	return Complex{Re: r * math.Cos(theta), Im: r * math.Sin(theta)}
}

// Add returns the sum of two complex values.
func (z Complex) Add(w Complex) Complex {
	return Complex{Re: z.Re + w.Re, Im: z.Im + w.Im}
}

// Sub returns the difference of two complex values.
func (z Complex) Sub(w Complex) Complex {
	return Complex{Re: z.Re - w.Re, Im: z.Im - w.Im}
}

// Mul returns the complex product of two values.
func (z Complex) Mul(w Complex) Complex {
	return Complex{
		Re: z.Re*w.Re - z.Im*w.Im,
		Im: z.Re*w.Im + z.Im*w.Re,
	}
}

// Neg returns the negation of the value.
func (z Complex) Neg() Complex {
	return Complex{Re: -z.Re, Im: -z.Im}
}

// Abs returns the magnitude of the value.
func (z Complex) Abs() float64 {
	return math.Hypot(z.Re, z.Im)
}

// AbsSq returns the squared magnitude of the value.
// This is faster than Abs() when you only need to compare magnitudes.
func (z Complex) AbsSq() float64 {
	return z.Re*z.Re + z.Im*z.Im
}

// IsZero returns true if both components are exactly zero.
func (z Complex) IsZero() bool {
	return z.Re == 0 && z.Im == 0
}

// Approx returns true if two values are approximately equal within epsilon.
func (z Complex) Approx(w Complex, epsilon float64) bool {
	return math.Abs(z.Re-w.Re) < epsilon && math.Abs(z.Im-w.Im) < epsilon
}
