// Package diag computes summary statistics of solver fields and flags
// numerically diverging states.
package diag

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"ctcs/internal/grid"
)

// ErrDiverged is wrapped by Check when a field is no longer finite or exceeds
// its bound.
var ErrDiverged = errors.New("field diverged")

// Stats summarises the values of one field.
type Stats struct {
	Count    int
	Sum      float64
	Mean     float64
	Min, Max float64
	MaxAbs   float64
	NaN      bool
}

// Values widens the w×h block of f starting at (x0, y0) to float64.
func Values(f *grid.Field, x0, y0, w, h int) []float64 {
	out := make([]float64, 0, w*h)
	for y := y0; y < y0+h; y++ {
		for _, v := range f.Row(y)[x0 : x0+w] {
			out = append(out, float64(v))
		}
	}
	return out
}

// Summarize computes Stats over values.
func Summarize(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	s := Stats{
		Count: len(values),
		Sum:   floats.Sum(values),
		Min:   floats.Min(values),
		Max:   floats.Max(values),
		NaN:   floats.HasNaN(values),
	}
	s.Mean = s.Sum / float64(s.Count)
	s.MaxAbs = math.Max(math.Abs(s.Min), math.Abs(s.Max))
	return s
}

// Interior summarises the interior cells of a padded eta-shaped field.
func Interior(f *grid.Field, nx, ny int) Stats {
	return Summarize(Values(f, grid.Halo, grid.Halo, nx, ny))
}

// Volume returns the displaced water volume sum(eta)·dx·dy of the interior.
func Volume(eta *grid.Field, nx, ny int, dx, dy float32) float64 {
	return Interior(eta, nx, ny).Sum * float64(dx) * float64(dy)
}

// Check returns an error wrapping ErrDiverged if s holds NaN or infinite
// values, or if limit > 0 and |value| exceeds it.
func Check(name string, s Stats, limit float64) error {
	switch {
	case s.NaN:
		return fmt.Errorf("%s contains NaN: %w", name, ErrDiverged)
	case math.IsInf(s.MaxAbs, 0):
		return fmt.Errorf("%s is infinite: %w", name, ErrDiverged)
	case limit > 0 && s.MaxAbs > limit:
		return fmt.Errorf("%s reached %.4g, limit %.4g: %w", name, s.MaxAbs, limit, ErrDiverged)
	}
	return nil
}

func (s Stats) String() string {
	return fmt.Sprintf("min %.4g max %.4g mean %.4g", s.Min, s.Max, s.Mean)
}
