package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ctcs/internal/scenario"
)

// moveProbe moves the probe with WASD or the arrow keys.
func (g *Game) moveProbe() {
	dx, dy := 0.0, 0.0
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy += probeSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy -= probeSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= probeSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += probeSpeed
	}
	if dx != 0 && dy != 0 {
		dx *= 0.7071
		dy *= 0.7071
	}
	g.px = clampFloat(g.px+dx, 1, float64(g.nx))
	g.py = clampFloat(g.py+dy, 1, float64(g.ny))
}

// handleControls processes the viewer hotkeys:
// space pauses, enter drops a hump at the probe, a click drops one under the
// cursor (right click a trough) and +/- change the sub-steps per frame.
func (g *Game) handleControls() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.adjustStepsPerFrame(-stepsPerFrameDelta)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.adjustStepsPerFrame(stepsPerFrameDelta)
	}

	amplitude := float32(*clickAmplitudeFlag)
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		x, y := g.probeCell()
		return g.disturb(x, y, amplitude)
	}
	for _, b := range []struct {
		button ebiten.MouseButton
		sign   float32
	}{
		{ebiten.MouseButtonLeft, 1},
		{ebiten.MouseButtonRight, -1},
	} {
		if !inpututil.IsMouseButtonJustPressed(b.button) {
			continue
		}
		if x, y, ok := g.cellAt(ebiten.CursorPosition()); ok {
			return g.disturb(x, y, b.sign*amplitude)
		}
	}
	return nil
}

func (g *Game) disturb(x, y int, amplitude float32) error {
	if err := scenario.Disturb(g.sim, x, y, *clickRadiusFlag, amplitude); err != nil {
		return err
	}
	g.eta = g.sim.Download(true).Eta
	return nil
}

// adjustStepsPerFrame clamps the per-frame sub-step count within bounds.
func (g *Game) adjustStepsPerFrame(delta int) {
	g.stepsPerFrame += delta
	if g.stepsPerFrame < minStepsPerFrame {
		g.stepsPerFrame = minStepsPerFrame
	} else if g.stepsPerFrame > maxStepsPerFrame {
		g.stepsPerFrame = maxStepsPerFrame
	}
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
