package diag

import (
	"errors"
	"math"
	"testing"

	"ctcs/internal/grid"
)

func TestInteriorIgnoresHalo(t *testing.T) {
	f := grid.NewField(4, 4)
	f.Fill(100)
	f.Set(1, 1, 1)
	f.Set(2, 1, 2)
	f.Set(1, 2, 3)
	f.Set(2, 2, -4)
	s := Interior(f, 2, 2)
	if s.Count != 4 || s.Sum != 2 || s.Min != -4 || s.Max != 3 || s.MaxAbs != 4 || s.Mean != 0.5 {
		t.Fatalf("stats %+v", s)
	}
	if v := Volume(f, 2, 2, 10, 20); v != 400 {
		t.Fatalf("volume %v, want 400", v)
	}
}

func TestCheck(t *testing.T) {
	cases := []struct {
		name   string
		values []float64
		limit  float64
		bad    bool
	}{
		{"fine", []float64{0, 1, -2}, 10, false},
		{"no limit", []float64{1e9}, 0, false},
		{"too big", []float64{0, -11}, 10, true},
		{"nan", []float64{0, math.NaN()}, 0, true},
		{"inf", []float64{math.Inf(1)}, 0, true},
	}
	for _, tc := range cases {
		err := Check("eta", Summarize(tc.values), tc.limit)
		if tc.bad != (err != nil) {
			t.Fatalf("%s: err = %v", tc.name, err)
		}
		if err != nil && !errors.Is(err, ErrDiverged) {
			t.Fatalf("%s: error does not wrap ErrDiverged", tc.name)
		}
	}
}
