package boundary

import (
	"errors"
	"math"
	"testing"

	"ctcs/internal/grid"
)

func ramp(width, height int) *grid.Field {
	f := grid.NewField(width, height)
	for i := range f.Data {
		f.Data[i] = float32(i)*0.37 + 1
	}
	return f
}

func TestResolveTable(t *testing.T) {
	cases := []struct {
		name    string
		cond    Conditions
		ns, ew  Policy
		wantErr error
	}{
		{"closed", AllClosed(), PolicyClosed, PolicyClosed, nil},
		{"periodic", AllPeriodic(), PolicyPeriodic, PolicyPeriodic, nil},
		{"channel", Conditions{East: Periodic, West: Periodic}, PolicyClosed, PolicyPeriodic, nil},
		{"sponge north", Conditions{North: Sponge, South: Sponge}, 0, 0, ErrUnsupported},
		{"sponge west", Conditions{West: Sponge}, 0, 0, ErrUnsupported},
		{"half open", Conditions{North: Periodic}, 0, 0, ErrAsymmetric},
	}
	for _, tc := range cases {
		ns, ew, err := tc.cond.Resolve()
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.wantErr)
			}
			if _, nerr := New(4, 4, tc.cond); !errors.Is(nerr, tc.wantErr) {
				t.Fatalf("%s: New err = %v, want %v", tc.name, nerr, tc.wantErr)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if ns != tc.ns || ew != tc.ew {
			t.Fatalf("%s: got ns=%s ew=%s", tc.name, ns, ew)
		}
	}
}

func TestClosedVZeroesNormalMomentum(t *testing.T) {
	nx, ny := 5, 4
	a, err := New(nx, ny, AllClosed())
	if err != nil {
		t.Fatal(err)
	}
	hv := ramp(nx+2, ny+1)
	if err := a.V(hv); err != nil {
		t.Fatal(err)
	}
	for x := 0; x < nx+2; x++ {
		if hv.At(x, 0) != 0 || hv.At(x, ny) != 0 {
			t.Fatalf("hv wall face at column %d not zero: %v %v", x, hv.At(x, 0), hv.At(x, ny))
		}
	}
	for y := 0; y <= ny; y++ {
		if hv.At(0, y) != hv.At(1, y) || hv.At(nx+1, y) != hv.At(nx, y) {
			t.Fatalf("hv ghost columns not mirrored at row %d", y)
		}
	}
}

func TestClosedUZeroesNormalMomentum(t *testing.T) {
	nx, ny := 4, 6
	a, _ := New(nx, ny, AllClosed())
	hu := ramp(nx+1, ny+2)
	if err := a.U(hu); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < ny+2; y++ {
		if hu.At(0, y) != 0 || hu.At(nx, y) != 0 {
			t.Fatalf("hu wall face at row %d not zero", y)
		}
	}
	for x := 0; x <= nx; x++ {
		if hu.At(x, 0) != hu.At(x, 1) || hu.At(x, ny+1) != hu.At(x, ny) {
			t.Fatalf("hu ghost rows not mirrored at column %d", x)
		}
	}
}

func TestClosedEtaCornersFromSecondPass(t *testing.T) {
	nx, ny := 3, 3
	a, _ := New(nx, ny, AllClosed())
	eta := ramp(nx+2, ny+2)
	if err := a.Eta(eta); err != nil {
		t.Fatal(err)
	}
	corners := [][4]int{{0, 0, 1, 1}, {nx + 1, 0, nx, 1}, {0, ny + 1, 1, ny}, {nx + 1, ny + 1, nx, ny}}
	for _, c := range corners {
		if eta.At(c[0], c[1]) != eta.At(c[2], c[3]) {
			t.Fatalf("corner (%d,%d) = %v, want interior (%d,%d) = %v", c[0], c[1], eta.At(c[0], c[1]), c[2], c[3], eta.At(c[2], c[3]))
		}
	}
}

func TestPeriodicGhostsCopyOppositeInterior(t *testing.T) {
	nx, ny := 6, 5
	a, _ := New(nx, ny, AllPeriodic())

	eta := ramp(nx+2, ny+2)
	if err := a.Eta(eta); err != nil {
		t.Fatal(err)
	}
	for y := 1; y <= ny; y++ {
		if math.Float32bits(eta.At(0, y)) != math.Float32bits(eta.At(nx, y)) ||
			math.Float32bits(eta.At(nx+1, y)) != math.Float32bits(eta.At(1, y)) {
			t.Fatalf("eta periodic columns differ at row %d", y)
		}
	}
	for x := 1; x <= nx; x++ {
		if eta.At(x, 0) != eta.At(x, ny) || eta.At(x, ny+1) != eta.At(x, 1) {
			t.Fatalf("eta periodic rows differ at column %d", x)
		}
	}

	hu := ramp(nx+1, ny+2)
	if err := a.U(hu); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < ny+2; y++ {
		if hu.At(0, y) != hu.At(nx, y) {
			t.Fatalf("hu wrap face differs at row %d", y)
		}
	}
	for x := 0; x <= nx; x++ {
		if hu.At(x, 0) != hu.At(x, ny) || hu.At(x, ny+1) != hu.At(x, 1) {
			t.Fatalf("hu periodic rows differ at column %d", x)
		}
	}

	hv := ramp(nx+2, ny+1)
	if err := a.V(hv); err != nil {
		t.Fatal(err)
	}
	for x := 0; x < nx+2; x++ {
		if hv.At(x, 0) != hv.At(x, ny) {
			t.Fatalf("hv wrap face differs at column %d", x)
		}
	}
	for y := 0; y <= ny; y++ {
		if hv.At(0, y) != hv.At(nx, y) || hv.At(nx+1, y) != hv.At(1, y) {
			t.Fatalf("hv periodic columns differ at row %d", y)
		}
	}
}

func TestApplicatorRejectsWrongShape(t *testing.T) {
	a, _ := New(4, 4, AllClosed())
	if err := a.U(grid.NewField(6, 6)); err == nil {
		t.Fatalf("expected shape error for hu")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Closed, Periodic, Sponge} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("open"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
