package newton

import "github.com/gogpu/newton/gpucore"

// PackParams derives the per-frame GPU parameter block from a Config.
// It expands the root set into monic polynomial coefficients, converts
// everything to the float32 wire types, and leaves unused root and
// coefficient slots zeroed.
//
// The viewport bounds come from gpucore.DefaultParams; the camera is not
// applied (see Camera). PackParams does not mutate cfg. The only error
// is a root set over the ABI capacity, wrapping ErrTooManyRoots.
func PackParams(cfg *Config) (gpucore.Params, error) {
	coeffs, err := Coefficients(cfg.RootPositions())
	if err != nil {
		return gpucore.Params{}, err
	}

	p := gpucore.DefaultParams()
	p.Iterations = cfg.Iterations
	p.RootCount = uint32(len(cfg.Roots))
	for i, r := range cfg.Roots {
		p.Roots[i] = gpucore.Root{
			Color:    [4]float32{float32(r.Color.R), float32(r.Color.G), float32(r.Color.B), float32(r.Color.A)},
			Position: [2]float32{float32(r.Position.Re), float32(r.Position.Im)},
		}
	}
	for i, c := range coeffs {
		p.Coefficients[i] = [2]float32{float32(c.Re), float32(c.Im)}
	}
	return p, nil
}
