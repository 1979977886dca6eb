package stencil

import (
	"math"
	"testing"

	"ctcs/internal/grid"
)

func testParams(nx, ny int) *Params {
	return &Params{
		NX: int32(nx), NY: int32(ny),
		DX: 20000, DY: 20000, Dt: 90,
		G: 9.81, ClosedEW: true, ClosedNS: true,
	}
}

func TestEtaIsFluxDivergence(t *testing.T) {
	p := testParams(3, 3)
	eta := grid.NewField(5, 5)
	hu := grid.NewField(4, 5)
	hv := grid.NewField(5, 4)
	hu.Set(2, 2, 10) // flux out through the east face of cell (2,2)
	Eta(p, eta, hu, hv, 2, 2)
	Eta(p, eta, hu, hv, 3, 2)
	want := -2 * p.Dt * 10 / p.DX
	if math.Abs(float64(eta.At(2, 2)-want)) > 1e-7 || eta.At(3, 2) != -eta.At(2, 2) {
		t.Fatalf("eta = %v, %v; want %v, %v", eta.At(2, 2), eta.At(3, 2), want, -want)
	}
	Eta(p, eta, hu, hv, 0, 2)
	if eta.At(0, 2) != 0 {
		t.Fatalf("ghost cells must not be updated by the kernel")
	}
}

func TestUFaceDomain(t *testing.T) {
	closed := testParams(4, 3)
	open := testParams(4, 3)
	open.ClosedEW = false
	cases := []struct {
		x, y         int
		closed, open bool
	}{
		{0, 1, false, false},
		{1, 1, true, true},
		{3, 3, true, true},
		{4, 2, false, true},
		{2, 0, false, false},
		{2, 4, false, false},
	}
	for _, tc := range cases {
		if got := closed.UFaceUpdated(tc.x, tc.y); got != tc.closed {
			t.Fatalf("closed UFaceUpdated(%d,%d) = %v", tc.x, tc.y, got)
		}
		if got := open.UFaceUpdated(tc.x, tc.y); got != tc.open {
			t.Fatalf("periodic UFaceUpdated(%d,%d) = %v", tc.x, tc.y, got)
		}
	}
}

func TestPressureGradientPushesDownhill(t *testing.T) {
	p := testParams(4, 4)
	h := grid.NewField(6, 6)
	h.Fill(10)
	eta := grid.NewField(6, 6)
	eta.Set(2, 2, 1)
	hu := grid.NewField(5, 6)
	hv := grid.NewField(6, 5)
	lap := grid.NewField(5, 6)
	U(p, h, eta, hu, hv, lap, 2, 2)
	U(p, h, eta, hu, hv, lap, 1, 2)
	if hu.At(2, 2) <= 0 || hu.At(1, 2) >= 0 {
		t.Fatalf("flow should leave the raised cell: east %v west %v", hu.At(2, 2), hu.At(1, 2))
	}
	vlap := grid.NewField(6, 5)
	V(p, h, eta, hu, hv, vlap, 2, 2)
	V(p, h, eta, hu, hv, vlap, 2, 1)
	if hv.At(2, 2) <= 0 || hv.At(2, 1) >= 0 {
		t.Fatalf("flow should leave the raised cell: north %v south %v", hv.At(2, 2), hv.At(2, 1))
	}
}

func TestFrictionDampsAndSurvivesDryCells(t *testing.T) {
	p := testParams(3, 3)
	p.R = 2.4e-3
	h := grid.NewField(5, 5) // zero depth everywhere
	eta := grid.NewField(5, 5)
	hu := grid.NewField(4, 5)
	hu.Set(1, 1, 1)
	hv := grid.NewField(5, 4)
	U(p, h, eta, hu, hv, grid.NewField(4, 5), 1, 1)
	got := hu.At(1, 1)
	if math.IsNaN(float64(got)) || math.Abs(float64(got)) > 1 {
		t.Fatalf("friction on a dry face gave %v", got)
	}
}

func TestLaplacianWrapsOnPeriodicAxis(t *testing.T) {
	p := testParams(3, 3)
	p.ClosedEW = false
	hu := grid.NewField(4, 5)
	hu.Set(1, 2, 4)
	lap := grid.NewField(4, 5)
	LaplacianU(p, hu, lap, 3, 2)
	want := 4 / (p.DX * p.DX)
	if lap.At(3, 2) != want {
		t.Fatalf("lap at east face = %v, want %v from wrapped neighbour", lap.At(3, 2), want)
	}
}
