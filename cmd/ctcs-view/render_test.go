package main

import (
	"math"
	"testing"
)

func TestEtaColourDiverges(t *testing.T) {
	if r, g, b := etaColour(0, 1); r != 255 || g != 255 || b != 255 {
		t.Fatalf("rest colour = %d,%d,%d, want white", r, g, b)
	}
	if r, g, b := etaColour(2, 1); r != 255 || g != 0 || b != 0 {
		t.Fatalf("crest colour = %d,%d,%d, want saturated red", r, g, b)
	}
	if r, _, b := etaColour(-0.5, 1); b <= r {
		t.Fatalf("trough should be blue, got r=%d b=%d", r, b)
	}
	if r, g, b := etaColour(math.NaN(), 1); r|g|b != 0 {
		t.Fatalf("NaN should render black")
	}
}

func TestCellAtFlipsRows(t *testing.T) {
	g := &Game{nx: 10, ny: 8}
	x, y, ok := g.cellAt(0, 0)
	if !ok || x != 1 || y != 8 {
		t.Fatalf("top-left maps to (%d,%d,%v), want (1,8)", x, y, ok)
	}
	if _, _, ok := g.cellAt(10, 0); ok {
		t.Fatalf("position outside the grid accepted")
	}
}

func TestAdjustStepsPerFrameClamps(t *testing.T) {
	g := &Game{stepsPerFrame: minStepsPerFrame}
	g.adjustStepsPerFrame(-5)
	if g.stepsPerFrame != minStepsPerFrame {
		t.Fatalf("steps = %d", g.stepsPerFrame)
	}
	g.adjustStepsPerFrame(10 * maxStepsPerFrame)
	if g.stepsPerFrame != maxStepsPerFrame {
		t.Fatalf("steps = %d", g.stepsPerFrame)
	}
}
