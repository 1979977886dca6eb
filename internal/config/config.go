// Package config holds the run configuration shared by the ctcs binaries.
package config

import (
	"flag"
	"fmt"
	"math/rand"

	"ctcs/internal/boundary"
	"ctcs/internal/ctcs"
	"ctcs/internal/scenario"
	"ctcs/internal/wind"
)

const (
	defaultNX             = 100
	defaultNY             = 100
	defaultDepth          = 60
	defaultRho            = 1025
	defaultTau0           = 0.1
	defaultCycloneRadius  = 200e3
	defaultSeamountRadius = 6
	defaultSeamountHeight = 40
	defaultMinDepth       = 5
	defaultBumpRadius     = 8
	defaultBumpAmplitude  = 1
	defaultCheckInterval  = 50
	defaultMaxEta         = 100
)

// Run is the solver configuration of one run. Bind registers its fields as
// flags; the zero value is not useful, start from Default.
type Run struct {
	NX, NY int

	DX, DY, Dt float64
	G, F, R, A float64

	Wind                 string
	Tau0, Rho, Alpha, Xm float64
	Rc, X0, Y0, U0, V0   float64
	Ramp                 float64

	North, East, South, West string

	BlockWidth, BlockHeight int
	CheckInterval           int
	MaxEta                  float64

	Depth          float64
	Seamounts      int
	SeamountRadius int
	SeamountHeight float64
	MinDepth       float64
	Seed           int64

	// BumpX and BumpY centre the initial hump; zero means the domain centre.
	BumpX, BumpY  int
	BumpRadius    int
	BumpAmplitude float64
}

// Default returns the reference configuration.
func Default() Run {
	return Run{
		NX: defaultNX, NY: defaultNY,
		DX: ctcs.DefaultDX, DY: ctcs.DefaultDY, Dt: ctcs.DefaultDt,
		G: ctcs.DefaultG, F: ctcs.DefaultF, R: ctcs.DefaultR,
		Wind:  wind.None.String(),
		Tau0:  defaultTau0,
		Rho:   defaultRho,
		Rc:    defaultCycloneRadius,
		North: boundary.Closed.String(), East: boundary.Closed.String(),
		South: boundary.Closed.String(), West: boundary.Closed.String(),
		BlockWidth: ctcs.DefaultBlockWidth, BlockHeight: ctcs.DefaultBlockHeight,
		CheckInterval:  defaultCheckInterval,
		MaxEta:         defaultMaxEta,
		Depth:          defaultDepth,
		SeamountRadius: defaultSeamountRadius,
		SeamountHeight: defaultSeamountHeight,
		MinDepth:       defaultMinDepth,
		Seed:           1,
		BumpRadius:     defaultBumpRadius,
		BumpAmplitude:  defaultBumpAmplitude,
	}
}

// Bind registers every field on fs with the current values as defaults.
func (r *Run) Bind(fs *flag.FlagSet) {
	fs.IntVar(&r.NX, "nx", r.NX, "interior cells along x")
	fs.IntVar(&r.NY, "ny", r.NY, "interior cells along y")
	fs.Float64Var(&r.DX, "dx", r.DX, "cell width [m]")
	fs.Float64Var(&r.DY, "dy", r.DY, "cell height [m]")
	fs.Float64Var(&r.Dt, "dt", r.Dt, "time step [s]")
	fs.Float64Var(&r.G, "g", r.G, "gravitational acceleration [m/s^2]")
	fs.Float64Var(&r.F, "f", r.F, "Coriolis parameter [1/s]")
	fs.Float64Var(&r.R, "r", r.R, "bottom friction coefficient [m/s]")
	fs.Float64Var(&r.A, "A", r.A, "eddy viscosity [m^2/s]")

	fs.StringVar(&r.Wind, "wind", r.Wind, "wind stress profile: none, uniform, bell, ramped or cyclone")
	fs.Float64Var(&r.Tau0, "tau0", r.Tau0, "peak wind stress [N/m^2]")
	fs.Float64Var(&r.Rho, "rho", r.Rho, "water density [kg/m^3]")
	fs.Float64Var(&r.Alpha, "alpha", r.Alpha, "offshore decay of alongshore stress [1/m]")
	fs.Float64Var(&r.Xm, "xm", r.Xm, "centre of the bell-shaped stress [m]")
	fs.Float64Var(&r.Rc, "rc", r.Rc, "cyclone radius [m]")
	fs.Float64Var(&r.X0, "x0", r.X0, "cyclone start x [m]")
	fs.Float64Var(&r.Y0, "y0", r.Y0, "cyclone start y [m]")
	fs.Float64Var(&r.U0, "u0", r.U0, "cyclone translation speed along x [m/s]")
	fs.Float64Var(&r.V0, "v0", r.V0, "cyclone translation speed along y [m/s]")
	fs.Float64Var(&r.Ramp, "ramp", r.Ramp, "ramp-up time of the ramped profile [s]")

	fs.StringVar(&r.North, "north", r.North, "north edge: closed, periodic or sponge")
	fs.StringVar(&r.East, "east", r.East, "east edge: closed, periodic or sponge")
	fs.StringVar(&r.South, "south", r.South, "south edge: closed, periodic or sponge")
	fs.StringVar(&r.West, "west", r.West, "west edge: closed, periodic or sponge")

	fs.IntVar(&r.BlockWidth, "block-w", r.BlockWidth, "launch tile width")
	fs.IntVar(&r.BlockHeight, "block-h", r.BlockHeight, "launch tile height")
	fs.IntVar(&r.CheckInterval, "check-every", r.CheckInterval, "run the divergence check every N sub-steps (0 disables)")
	fs.Float64Var(&r.MaxEta, "max-eta", r.MaxEta, "largest |eta| considered stable [m] (0 disables)")

	fs.Float64Var(&r.Depth, "depth", r.Depth, "still water depth [m]")
	fs.IntVar(&r.Seamounts, "seamounts", r.Seamounts, "number of random seamounts")
	fs.IntVar(&r.SeamountRadius, "seamount-radius", r.SeamountRadius, "seamount radius [cells]")
	fs.Float64Var(&r.SeamountHeight, "seamount-height", r.SeamountHeight, "seamount height above the sea floor [m]")
	fs.Float64Var(&r.MinDepth, "min-depth", r.MinDepth, "shallowest depth allowed over seamounts [m]")
	fs.Int64Var(&r.Seed, "seed", r.Seed, "random seed for the bathymetry")

	fs.IntVar(&r.BumpX, "bump-x", r.BumpX, "initial hump centre cell along x (0 = centre)")
	fs.IntVar(&r.BumpY, "bump-y", r.BumpY, "initial hump centre cell along y (0 = centre)")
	fs.IntVar(&r.BumpRadius, "bump-radius", r.BumpRadius, "initial hump radius [cells]")
	fs.Float64Var(&r.BumpAmplitude, "bump", r.BumpAmplitude, "initial hump amplitude [m] (0 disables)")
}

// Params converts the run into solver parameters. Name lookups fail here;
// numeric checks are left to ctcs.New.
func (r Run) Params() (ctcs.Params, error) {
	p := ctcs.DefaultParams(r.NX, r.NY)
	p.DX, p.DY, p.Dt = float32(r.DX), float32(r.DY), float32(r.Dt)
	p.G, p.F, p.R, p.A = float32(r.G), float32(r.F), float32(r.R), float32(r.A)
	p.BlockWidth, p.BlockHeight = r.BlockWidth, r.BlockHeight
	p.CheckInterval = r.CheckInterval
	p.MaxEta = float32(r.MaxEta)

	wt, err := wind.ParseType(r.Wind)
	if err != nil {
		return p, err
	}
	p.Wind = wind.Stress{
		Type:  wt,
		Tau0:  float32(r.Tau0),
		Rho:   float32(r.Rho),
		Alpha: float32(r.Alpha),
		Xm:    float32(r.Xm),
		Rc:    float32(r.Rc),
		X0:    float32(r.X0),
		Y0:    float32(r.Y0),
		U0:    float32(r.U0),
		V0:    float32(r.V0),
		Ramp:  float32(r.Ramp),
	}

	edges := []struct {
		name string
		dst  *boundary.Kind
	}{
		{r.North, &p.Boundary.North},
		{r.East, &p.Boundary.East},
		{r.South, &p.Boundary.South},
		{r.West, &p.Boundary.West},
	}
	for _, e := range edges {
		k, err := boundary.ParseKind(e.name)
		if err != nil {
			return p, err
		}
		*e.dst = k
	}
	return p, nil
}

// Initial builds the starting state: a flat basin, optional seamounts and an
// optional hump on eta.
func (r Run) Initial() (ctcs.Initial, error) {
	if r.NX < 1 || r.NY < 1 {
		return ctcs.Initial{}, fmt.Errorf("grid size %dx%d must be positive", r.NX, r.NY)
	}
	if r.Depth <= 0 {
		return ctcs.Initial{}, fmt.Errorf("depth %g must be positive", r.Depth)
	}
	init := scenario.FlatBasin(r.NX, r.NY, float32(r.Depth))
	if r.Seamounts > 0 {
		rng := rand.New(rand.NewSource(r.Seed))
		scenario.Seamounts(init, r.NX, r.NY, r.Seamounts, r.SeamountRadius,
			float32(r.SeamountHeight), float32(r.MinDepth), rng)
	}
	if r.BumpAmplitude != 0 {
		cx, cy := r.BumpX, r.BumpY
		if cx == 0 {
			cx = (r.NX + 1) / 2
		}
		if cy == 0 {
			cy = (r.NY + 1) / 2
		}
		scenario.Bump(init, r.NX, r.NY, cx, cy, r.BumpRadius, float32(r.BumpAmplitude))
	}
	return init, nil
}

// String summarises the run for logging.
func (r Run) String() string {
	return fmt.Sprintf("%dx%d cells of %gx%g m, dt %g s, f %g, r %g, A %g, wind %s, edges N:%s E:%s S:%s W:%s",
		r.NX, r.NY, r.DX, r.DY, r.Dt, r.F, r.R, r.A, r.Wind, r.North, r.East, r.South, r.West)
}
