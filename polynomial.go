package newton

import (
	"fmt"

	"github.com/gogpu/newton/gpucore"
)

// Coefficients expands a root set into the monic polynomial
// P(x) = Π(x − rᵢ) = Σ cₖxᵏ as complex coefficients, c[k] holding the
// degree-k term. The result always has gpucore.MaxCoefficients slots:
// for N roots, slots 0..N carry the polynomial (c[N] = 1) and slots above
// N are zero.
//
// The expansion is iterative synthetic multiplication. Starting from the
// constant polynomial 1, each root r updates the running vector p as
// p ← x·p − r·p: shift every coefficient up one degree slot, scale the
// pre-shift vector by r, subtract element-wise.
//
// Zero roots yield the constant polynomial [1, 0, ...]. More than
// gpucore.MaxRoots-1 roots violate the ABI capacity and return
// ErrTooManyRoots; the returned array is then all zero.
func Coefficients(roots []Complex) ([gpucore.MaxCoefficients]Complex, error) {
	var p [gpucore.MaxCoefficients]Complex
	if len(roots) >= gpucore.MaxRoots {
		return p, fmt.Errorf("%w: %d roots, at most %d", ErrTooManyRoots, len(roots), gpucore.MaxRoots-1)
	}

	p[0] = C(1, 0)
	for _, r := range roots {
		q := p

		// Multiply p by x (shift coefficients up one degree).
		for i := len(p) - 1; i >= 1; i-- {
			p[i] = p[i-1]
		}
		p[0] = Complex{}

		// Subtract r times the pre-shift vector.
		for i := range p {
			p[i] = p[i].Sub(r.Mul(q[i]))
		}
	}
	return p, nil
}

// EvalPolynomial evaluates Σ c[k]·xᵏ at x using Horner's method.
func EvalPolynomial(c []Complex, x Complex) Complex {
	var acc Complex
	for i := len(c) - 1; i >= 0; i-- {
		acc = acc.Mul(x).Add(c[i])
	}
	return acc
}
