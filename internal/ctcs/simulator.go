// Package ctcs advances the 2D shallow water equations with the centred in
// time, centred in space (leapfrog) scheme on a staggered Arakawa C grid.
package ctcs

import (
	"context"
	"fmt"
	"math"

	"ctcs/internal/boundary"
	"ctcs/internal/compute"
	"ctcs/internal/diag"
	"ctcs/internal/grid"
	"ctcs/internal/stencil"
)

// Simulator owns the grid storage of one run. It is not safe for concurrent
// use.
type Simulator struct {
	params  Params
	store   *grid.Storage
	bc      *boundary.Applicator
	backend compute.Backend
	geom    compute.Geometry

	// lagged eddy-viscosity Laplacians, scratch for one sub-step
	lapU, lapV *grid.Field

	t        float32
	subSteps uint64
	err      error
}

// New validates the configuration, allocates storage from init and binds the
// kernel backend. The backend stays owned by the caller.
func New(p Params, init Initial, backend compute.Backend) (*Simulator, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if backend == nil {
		return nil, configErrorf("backend", "no kernel backend")
	}
	bc, err := boundary.New(p.NX, p.NY, p.Boundary)
	if err != nil {
		return nil, &ConfigError{Field: "boundary conditions", Err: err}
	}
	store, err := grid.NewStorage(p.NX, p.NY, init.H, init.Eta, init.HU, init.HV)
	if err != nil {
		return nil, &ConfigError{Field: "initial fields", Err: err}
	}
	ew, eh := grid.EtaShape(p.NX, p.NY)
	uw, uh := grid.UShape(p.NX, p.NY)
	vw, vh := grid.VShape(p.NX, p.NY)
	return &Simulator{
		params:  p,
		store:   store,
		bc:      bc,
		backend: backend,
		geom:    compute.NewGeometry(ew, eh, p.BlockWidth, p.BlockHeight),
		lapU:    grid.NewField(uw, uh),
		lapV:    grid.NewField(vw, vh),
	}, nil
}

// Time returns the accumulated simulation clock in seconds.
func (s *Simulator) Time() float32 { return s.t }

// SubSteps returns the number of completed sub-steps.
func (s *Simulator) SubSteps() uint64 { return s.subSteps }

// Swaps returns how many time-level swaps the storage has performed.
func (s *Simulator) Swaps() uint64 { return s.store.Swaps() }

// Params returns the configuration of the run.
func (s *Simulator) Params() Params { return s.params }

// Err returns the error that halted the simulator, if any.
func (s *Simulator) Err() error { return s.err }

// Download copies the current time level of eta, hu and hv. With interior set
// the ghost cells are stripped.
func (s *Simulator) Download(interior bool) grid.Snapshot {
	return s.store.Download(interior)
}

// AddEta adds a padded eta-shaped increment to both retained time levels.
// Ghost cells are refreshed by the next Step.
func (s *Simulator) AddEta(delta []float32) error {
	if s.err != nil {
		return s.err
	}
	prev, curr := s.store.Eta()
	if len(delta) != len(curr.Data) {
		return configErrorf("eta increment", "has %d values, want %d", len(delta), len(curr.Data))
	}
	for i, d := range delta {
		prev.Data[i] += d
		curr.Data[i] += d
	}
	return nil
}

// Step advances the clock by tEnd seconds in sub-steps of at most dt and
// returns the new clock. The context is only consulted between sub-steps.
//
// A failing sub-step is not swapped and halts the simulator: later calls
// return the same error.
func (s *Simulator) Step(ctx context.Context, tEnd float32) (float32, error) {
	if s.err != nil {
		return s.t, s.err
	}
	dt := float64(s.params.Dt)
	n := int(math.Floor(float64(tEnd)/dt)) + 1

	if err := s.refreshAll(); err != nil {
		return s.t, s.halt(err)
	}
	for i := 0; i < n; i++ {
		localDt := float32(math.Min(dt, float64(tEnd)-float64(i)*dt))
		if localDt <= 0 {
			break
		}
		if err := ctx.Err(); err != nil {
			return s.t, err
		}
		if err := s.subStep(localDt); err != nil {
			return s.t, s.halt(fmt.Errorf("sub-step %d at t=%gs: %w", s.subSteps+1, s.t, err))
		}
		s.store.Swap()
		s.t += localDt
		s.subSteps++

		if err := s.checkStability(); err != nil {
			return s.t, s.halt(err)
		}
	}
	return s.t, nil
}

func (s *Simulator) halt(err error) error {
	s.err = err
	return err
}

// refreshAll brings the ghost cells of both retained levels up to date.
func (s *Simulator) refreshAll() error {
	etaPrev, etaCurr := s.store.Eta()
	huPrev, huCurr := s.store.HU()
	hvPrev, hvCurr := s.store.HV()
	for _, f := range []*grid.Field{etaPrev, etaCurr} {
		if err := s.bc.Eta(f); err != nil {
			return err
		}
	}
	for _, f := range []*grid.Field{huPrev, huCurr} {
		if err := s.bc.U(f); err != nil {
			return err
		}
	}
	for _, f := range []*grid.Field{hvPrev, hvCurr} {
		if err := s.bc.V(f); err != nil {
			return err
		}
	}
	return nil
}

// subStep runs eta, U and V in order, refreshing each field's boundary
// before the next kernel starts.
func (s *Simulator) subStep(dt float32) error {
	eta0, eta1 := s.store.Eta()
	hu0, hu1 := s.store.HU()
	hv0, hv1 := s.store.HV()
	args := &compute.Args{
		Params: s.kernelParams(dt),
		H:      s.store.H,
		Eta0:   eta0, Eta1: eta1,
		HU0: hu0, HU1: hu1,
		HV0: hv0, HV1: hv1,
		LapU: s.lapU, LapV: s.lapV,
	}
	eddy := s.params.A != 0

	if err := s.launch(compute.KernelEta, args); err != nil {
		return err
	}
	if err := s.bc.Eta(eta0); err != nil {
		return err
	}
	if eddy {
		if err := s.launch(compute.KernelLaplacianU, args); err != nil {
			return err
		}
	}
	if err := s.launch(compute.KernelU, args); err != nil {
		return err
	}
	if err := s.bc.U(hu0); err != nil {
		return err
	}
	if eddy {
		if err := s.launch(compute.KernelLaplacianV, args); err != nil {
			return err
		}
	}
	if err := s.launch(compute.KernelV, args); err != nil {
		return err
	}
	return s.bc.V(hv0)
}

func (s *Simulator) launch(kernel string, args *compute.Args) error {
	if err := s.backend.Launch(kernel, s.geom, args); err != nil {
		return fmt.Errorf("%s on %s: %w", kernel, s.backend.Name(), err)
	}
	return nil
}

func (s *Simulator) kernelParams(dt float32) stencil.Params {
	p := s.params
	return stencil.Params{
		NX: int32(p.NX), NY: int32(p.NY),
		DX: p.DX, DY: p.DY, Dt: dt,
		G: p.G, F: p.F, R: p.R, A: p.A,
		ClosedEW: s.bc.ClosedEW(),
		ClosedNS: s.bc.ClosedNS(),
		Wind:     p.Wind,
		T:        s.t,
	}
}

func (s *Simulator) checkStability() error {
	every := uint64(s.params.CheckInterval)
	if every == 0 || s.subSteps%every != 0 {
		return nil
	}
	_, eta := s.store.Eta()
	_, hu := s.store.HU()
	_, hv := s.store.HV()
	checks := []struct {
		name  string
		f     *grid.Field
		limit float32
	}{
		{"eta", eta, s.params.MaxEta},
		{"hu", hu, 0},
		{"hv", hv, 0},
	}
	for _, c := range checks {
		st := diag.Summarize(diag.Values(c.f, 0, 0, c.f.Width, c.f.Height))
		if err := diag.Check(c.name, st, float64(c.limit)); err != nil {
			return &InstabilityError{Time: s.t, SubStep: s.subSteps, Err: err}
		}
	}
	return nil
}
