package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/crazy3lf/colorconv"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw renders eta with a diverging palette, the probe and the overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.refreshColourRange()
	for y := 1; y <= g.ny; y++ {
		row := g.eta.Row(y - 1)
		// screen row 0 is the northern edge
		base := (g.ny - y) * g.nx * 4
		for x, v := range row {
			r, gr, b := etaColour(float64(v), g.colourRange)
			i := base + x*4
			g.pixels[i] = r
			g.pixels[i+1] = gr
			g.pixels[i+2] = b
			g.pixels[i+3] = 255
		}
	}
	screen.WritePixels(g.pixels)

	px, py := g.probeCell()
	screen.Set(px-1, g.ny-py, color.RGBA{20, 20, 20, 255})

	if *debugFlag {
		state := ""
		if g.paused {
			state = " (paused)"
		}
		msg := fmt.Sprintf("t = %.2f h%s\nsub-steps: %d (%d/frame, +/-)\nsim: %.2f ms, %.1f TPS\neta at (%d,%d): %.4f m\nrange: ±%.3g m",
			g.sim.Time()/3600, state, g.sim.SubSteps(), g.stepsPerFrame,
			g.lastSimDuration.Seconds()*1000, ebiten.ActualTPS(),
			px, py, g.eta.At(px-1, py-1), g.colourRange)
		ebitenutil.DebugPrint(screen, msg)
	}
}

// Layout maps one logical pixel to one interior cell.
func (g *Game) Layout(_, _ int) (int, int) { return g.nx, g.ny }

// etaColour fades from white at rest to red for crests and blue for troughs.
func etaColour(v, scale float64) (uint8, uint8, uint8) {
	if math.IsNaN(v) {
		return 0, 0, 0
	}
	hue := float64(positiveHue)
	if v < 0 {
		hue = negativeHue
	}
	sat := math.Min(math.Abs(v)/scale, 1)
	r, g, b, err := colorconv.HSVToRGB(hue, sat, 1)
	if err != nil {
		return 0, 0, 0
	}
	return r, g, b
}
