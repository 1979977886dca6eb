// Package stream publishes solver snapshots to browser clients over
// websockets. Eta travels as binary16 bits to keep frames small.
package stream

import (
	"math"

	"ctcs/internal/diag"
	"ctcs/internal/grid"
)

// Frame is one published snapshot of the free-surface elevation.
type Frame struct {
	Type     string   `json:"type"`
	Time     float32  `json:"time"`
	SubSteps uint64   `json:"subSteps"`
	NX       int      `json:"nx"`
	NY       int      `json:"ny"`
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
	Mean     float64  `json:"mean"`
	Volume   float64  `json:"volume"`
	Eta      []uint16 `json:"eta"`
}

// NewFrame encodes the interior of a padded eta field.
func NewFrame(t float32, subSteps uint64, eta *grid.Field, nx, ny int, dx, dy float32) Frame {
	inner := eta.Crop(grid.Halo, grid.Halo, nx, ny)
	st := diag.Summarize(diag.Values(inner, 0, 0, nx, ny))
	f := Frame{
		Type:     "frame",
		Time:     t,
		SubSteps: subSteps,
		NX:       nx,
		NY:       ny,
		Min:      finite(st.Min),
		Max:      finite(st.Max),
		Mean:     finite(st.Mean),
		Volume:   finite(st.Sum * float64(dx) * float64(dy)),
		Eta:      make([]uint16, len(inner.Data)),
	}
	EncodeFloat16(f.Eta, inner.Data)
	return f
}

// Field decodes the frame back into an nx×ny field.
func (f Frame) Field() *grid.Field {
	out := grid.NewField(f.NX, f.NY)
	DecodeFloat16(out.Data, f.Eta)
	return out
}

// JSON has no encoding for NaN or infinities.
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
