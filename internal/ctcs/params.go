package ctcs

import (
	"math"

	"ctcs/internal/boundary"
	"ctcs/internal/grid"
	"ctcs/internal/wind"
)

// Defaults of the reference configuration.
const (
	DefaultDX          = 20000
	DefaultDY          = 20000
	DefaultDt          = 90
	DefaultG           = 9.81
	DefaultF           = 1.2e-4
	DefaultR           = 2.4e-3
	DefaultBlockWidth  = 16
	DefaultBlockHeight = 16
)

// Params configures a Simulator. Everything except the clock is fixed for the
// lifetime of the run.
type Params struct {
	NX, NY int

	DX, DY float32 // grid spacing [m]
	Dt     float32 // time step [s]

	G float32 // gravitational acceleration [m/s^2]
	F float32 // Coriolis parameter [1/s]
	R float32 // bottom friction coefficient [m/s]
	A float32 // eddy viscosity [m^2/s]

	Wind     wind.Stress
	Boundary boundary.Conditions

	// BlockWidth and BlockHeight set the launch tile size. They do not change
	// results.
	BlockWidth, BlockHeight int

	// CheckInterval runs the divergence check every that many sub-steps;
	// zero disables it. MaxEta bounds |eta| when positive.
	CheckInterval int
	MaxEta        float32
}

// DefaultParams returns the reference configuration for an nx×ny grid with
// closed boundaries and no wind.
func DefaultParams(nx, ny int) Params {
	return Params{
		NX: nx, NY: ny,
		DX: DefaultDX, DY: DefaultDY, Dt: DefaultDt,
		G: DefaultG, F: DefaultF, R: DefaultR,
		BlockWidth: DefaultBlockWidth, BlockHeight: DefaultBlockHeight,
	}
}

// Initial holds the padded starting arrays, row-major:
// H and Eta (nx+2)×(ny+2), HU (nx+1)×(ny+2), HV (nx+2)×(ny+1).
type Initial struct {
	H, Eta, HU, HV []float32
}

// NewInitial allocates zeroed arrays of the right shapes for an nx×ny grid.
func NewInitial(nx, ny int) Initial {
	ew, eh := grid.EtaShape(nx, ny)
	uw, uh := grid.UShape(nx, ny)
	vw, vh := grid.VShape(nx, ny)
	return Initial{
		H:   make([]float32, ew*eh),
		Eta: make([]float32, ew*eh),
		HU:  make([]float32, uw*uh),
		HV:  make([]float32, vw*vh),
	}
}

func (p *Params) validate() error {
	switch {
	case p.NX < 1 || p.NY < 1:
		return configErrorf("grid", "size %dx%d must be positive", p.NX, p.NY)
	case int64(p.NX+2)*int64(p.NY+2) > math.MaxInt32:
		return configErrorf("grid", "size %dx%d overflows 32-bit cell indices", p.NX, p.NY)
	case p.DX <= 0 || p.DY <= 0:
		return configErrorf("grid", "spacing %gx%g must be positive", p.DX, p.DY)
	case p.Dt <= 0:
		return configErrorf("dt", "%g must be positive", p.Dt)
	case p.G <= 0:
		return configErrorf("g", "%g must be positive", p.G)
	case p.R < 0 || p.A < 0:
		return configErrorf("coefficients", "friction %g and eddy viscosity %g must not be negative", p.R, p.A)
	case p.BlockWidth < 1 || p.BlockHeight < 1:
		return configErrorf("block size", "%dx%d must be positive", p.BlockWidth, p.BlockHeight)
	case p.CheckInterval < 0:
		return configErrorf("check interval", "%d must not be negative", p.CheckInterval)
	}
	if err := p.Wind.Validate(); err != nil {
		return &ConfigError{Field: "wind stress", Err: err}
	}
	return nil
}
