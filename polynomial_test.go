package newton

import (
	"errors"
	"math"
	"testing"

	"github.com/gogpu/newton/gpucore"
)

func TestCoefficientsEmpty(t *testing.T) {
	got, err := Coefficients(nil)
	if err != nil {
		t.Fatalf("Coefficients(nil) error: %v", err)
	}
	if got[0] != C(1, 0) {
		t.Errorf("c[0] = %v, want (1, 0)", got[0])
	}
	for i := 1; i < len(got); i++ {
		if !got[i].IsZero() {
			t.Errorf("c[%d] = %v, want zero", i, got[i])
		}
	}
}

func TestCoefficientsDefaultRoots(t *testing.T) {
	// Roots 0.5 and -0.5 give x^2 - 0.25.
	got, err := Coefficients([]Complex{C(0.5, 0), C(-0.5, 0)})
	if err != nil {
		t.Fatalf("Coefficients error: %v", err)
	}
	want := []Complex{C(-0.25, 0), C(0, 0), C(1, 0)}
	for i, w := range want {
		if !got[i].Approx(w, 1e-12) {
			t.Errorf("c[%d] = %v, want %v", i, got[i], w)
		}
	}
	for i := len(want); i < len(got); i++ {
		if !got[i].IsZero() {
			t.Errorf("c[%d] = %v, want zero", i, got[i])
		}
	}
}

func TestCoefficientsCubeRoots(t *testing.T) {
	// Three roots of radius 0.5 at 0, 120, 240 degrees give x^3 - 0.125.
	roots := []Complex{
		FromPolar(0.5, 0),
		FromPolar(0.5, 2*math.Pi/3),
		FromPolar(0.5, 4*math.Pi/3),
	}
	got, err := Coefficients(roots)
	if err != nil {
		t.Fatalf("Coefficients error: %v", err)
	}
	want := []Complex{C(-0.125, 0), C(0, 0), C(0, 0), C(1, 0)}
	for i, w := range want {
		if !got[i].Approx(w, 1e-12) {
			t.Errorf("c[%d] = %v, want %v", i, got[i], w)
		}
	}
}

func TestCoefficientsMonic(t *testing.T) {
	for n := 0; n < gpucore.MaxRoots; n++ {
		roots := make([]Complex, n)
		for i := range roots {
			roots[i] = FromPolar(0.7, float64(i)*2*math.Pi/float64(n+1))
		}
		got, err := Coefficients(roots)
		if err != nil {
			t.Fatalf("Coefficients(%d roots) error: %v", n, err)
		}
		if !got[n].Approx(C(1, 0), 1e-12) {
			t.Errorf("c[%d] = %v for %d roots, want (1, 0)", n, got[n], n)
		}
	}
}

func TestCoefficientsVanishAtRoots(t *testing.T) {
	roots := []Complex{
		C(0.3, 0.4),
		C(-0.7, 0.1),
		C(0, -0.9),
		C(1.5, 1.5),
	}
	got, err := Coefficients(roots)
	if err != nil {
		t.Fatalf("Coefficients error: %v", err)
	}
	for i, r := range roots {
		v := EvalPolynomial(got[:], r)
		if v.Abs() > 1e-10 {
			t.Errorf("P(roots[%d]) = %v, want ~0", i, v)
		}
	}
	// And the polynomial is nonzero away from the roots.
	if v := EvalPolynomial(got[:], C(10, 0)); v.Abs() < 1 {
		t.Errorf("P(10) = %v, want far from 0", v)
	}
}

func TestCoefficientsTooManyRoots(t *testing.T) {
	roots := make([]Complex, gpucore.MaxRoots)
	_, err := Coefficients(roots)
	if !errors.Is(err, ErrTooManyRoots) {
		t.Errorf("Coefficients(%d roots) error = %v, want ErrTooManyRoots", len(roots), err)
	}
}

func TestPackParams(t *testing.T) {
	cfg := DefaultConfig()
	p, err := PackParams(cfg)
	if err != nil {
		t.Fatalf("PackParams error: %v", err)
	}
	if p.Iterations != 30 {
		t.Errorf("Iterations = %d, want 30", p.Iterations)
	}
	if p.RootCount != 2 {
		t.Errorf("RootCount = %d, want 2", p.RootCount)
	}
	if p.ViewportMin != [2]float32{-1, 1} || p.ViewportMax != [2]float32{1, -1} {
		t.Errorf("viewport = %v..%v, want [-1 1]..[1 -1]", p.ViewportMin, p.ViewportMax)
	}
	if p.Roots[0].Position != [2]float32{0.5, 0} {
		t.Errorf("Roots[0].Position = %v, want [0.5 0]", p.Roots[0].Position)
	}
	if p.Roots[0].Color != [4]float32{0, 0.75, 0, 1} {
		t.Errorf("Roots[0].Color = %v, want [0 0.75 0 1]", p.Roots[0].Color)
	}
	// x^2 - 0.25
	if p.Coefficients[0] != [2]float32{-0.25, 0} {
		t.Errorf("Coefficients[0] = %v, want [-0.25 0]", p.Coefficients[0])
	}
	if p.Coefficients[2] != [2]float32{1, 0} {
		t.Errorf("Coefficients[2] = %v, want [1 0]", p.Coefficients[2])
	}
	for i := 3; i < len(p.Coefficients); i++ {
		if p.Coefficients[i] != [2]float32{} {
			t.Errorf("Coefficients[%d] = %v, want zero", i, p.Coefficients[i])
		}
	}
	for i := 2; i < len(p.Roots); i++ {
		if p.Roots[i] != (gpucore.Root{}) {
			t.Errorf("Roots[%d] = %v, want zero", i, p.Roots[i])
		}
	}
}

func TestPackParamsDoesNotMutateConfig(t *testing.T) {
	cfg := DefaultConfig()
	before := cfg.Clone()
	if _, err := PackParams(cfg); err != nil {
		t.Fatalf("PackParams error: %v", err)
	}
	if cfg.Iterations != before.Iterations || len(cfg.Roots) != len(before.Roots) {
		t.Error("PackParams mutated the config")
	}
	for i := range cfg.Roots {
		if cfg.Roots[i] != before.Roots[i] {
			t.Errorf("PackParams mutated root %d", i)
		}
	}
}
