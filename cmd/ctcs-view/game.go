package main

import (
	"context"
	"math"
	"time"

	"ctcs/internal/ctcs"
	"ctcs/internal/diag"
	"ctcs/internal/grid"
)

// Game drives the simulator from the ebiten loop and renders eta.
type Game struct {
	sim    *ctcs.Simulator
	nx, ny int

	// probe position in interior cell coordinates
	px, py float64

	stepsPerFrame   int
	paused          bool
	lastSimDuration time.Duration

	eta         *grid.Field
	pixels      []byte
	colourRange float64
}

// newGame wraps sim with the probe in the domain centre.
func newGame(sim *ctcs.Simulator) *Game {
	p := sim.Params()
	g := &Game{
		sim:           sim,
		nx:            p.NX,
		ny:            p.NY,
		px:            float64(p.NX+1) / 2,
		py:            float64(p.NY+1) / 2,
		stepsPerFrame: *stepsFlag,
		pixels:        make([]byte, p.NX*p.NY*4),
		colourRange:   minColourRange,
	}
	g.adjustStepsPerFrame(0)
	g.eta = sim.Download(true).Eta
	return g
}

// Update handles input and advances the simulation by stepsPerFrame
// sub-steps. A solver failure ends the game with that error.
func (g *Game) Update() error {
	g.moveProbe()
	if err := g.handleControls(); err != nil {
		return err
	}
	if g.paused {
		return nil
	}
	start := time.Now()
	dt := g.sim.Params().Dt
	if _, err := g.sim.Step(context.Background(), dt*float32(g.stepsPerFrame)); err != nil {
		return err
	}
	g.lastSimDuration = time.Since(start)
	g.eta = g.sim.Download(true).Eta
	return nil
}

// cellAt maps a logical screen position to an interior cell. North is up.
func (g *Game) cellAt(sx, sy int) (int, int, bool) {
	if sx < 0 || sx >= g.nx || sy < 0 || sy >= g.ny {
		return 0, 0, false
	}
	return sx + 1, g.ny - sy, true
}

// probeCell returns the interior cell under the probe.
func (g *Game) probeCell() (int, int) {
	x := int(math.Round(g.px))
	y := int(math.Round(g.py))
	return clampCoord(x, 1, g.nx), clampCoord(y, 1, g.ny)
}

// refreshColourRange follows the largest |eta| up at once and back down
// slowly so the palette does not flicker.
func (g *Game) refreshColourRange() {
	st := diag.Summarize(diag.Values(g.eta, 0, 0, g.eta.Width, g.eta.Height))
	if st.NaN || math.IsInf(st.MaxAbs, 0) {
		return
	}
	g.colourRange = math.Max(st.MaxAbs, math.Max(g.colourRange*colourRangeDecay, minColourRange))
}

func clampCoord(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
