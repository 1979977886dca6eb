// Package scenario builds initial conditions and bathymetry for the solver.
// Coordinates are padded eta-cell indices: interior cells run from 1 to nx
// and 1 to ny.
package scenario

import (
	"math"
	"math/rand"

	"ctcs/internal/ctcs"
	"ctcs/internal/grid"
)

// gridOffset is a cell offset relative to a footprint centre.
type gridOffset struct {
	dx int
	dy int
}

// discFootprint lists the offsets inside a circle of the given radius.
func discFootprint(radius int) []gridOffset {
	footprint := make([]gridOffset, 0, (2*radius+1)*(2*radius+1))
	r2 := radius * radius
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= r2 {
				footprint = append(footprint, gridOffset{dx: x, dy: y})
			}
		}
	}
	return footprint
}

// clampCoord constrains v to lie within the inclusive [min, max] range.
func clampCoord(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// FlatBasin returns zero initial fields over a constant depth, halo included.
func FlatBasin(nx, ny int, depth float32) ctcs.Initial {
	init := ctcs.NewInitial(nx, ny)
	for i := range init.H {
		init.H[i] = depth
	}
	return init
}

// Perturb sets eta at interior cell (x, y). Cells outside the interior are
// ignored.
func Perturb(init ctcs.Initial, nx, ny, x, y int, value float32) {
	if x < 1 || x > nx || y < 1 || y > ny {
		return
	}
	init.Eta[y*(nx+2)+x] = value
}

// Bump adds a cosine-shaped hump of the given amplitude and radius (in cells)
// to eta, centred on (cx, cy). The centre is clamped into the interior.
func Bump(init ctcs.Initial, nx, ny, cx, cy, radius int, amplitude float32) {
	if radius < 1 {
		Perturb(init, nx, ny, cx, cy, amplitude)
		return
	}
	AddBump(init.Eta, nx, ny, cx, cy, radius, amplitude)
}

// AddBump adds the cosine hump of Bump to any padded eta-shaped array.
func AddBump(field []float32, nx, ny, cx, cy, radius int, amplitude float32) {
	if radius < 1 {
		radius = 1
	}
	cx = clampCoord(cx, 1, nx)
	cy = clampCoord(cy, 1, ny)
	addDisc(field, nx, ny, cx, cy, radius, amplitude)
}

func addDisc(field []float32, nx, ny, cx, cy, radius int, amplitude float32) {
	for _, o := range discFootprint(radius) {
		x, y := cx+o.dx, cy+o.dy
		if x < 1 || x > nx || y < 1 || y > ny {
			continue
		}
		r := math.Hypot(float64(o.dx), float64(o.dy)) / float64(radius)
		w := 0.5 * (1 + math.Cos(math.Pi*r))
		field[y*(nx+2)+x] += amplitude * float32(w)
	}
}

// Seamounts raises the sea floor under count randomly placed disc-shaped
// mounts. Depth never drops below minDepth. Returns the mount centres.
func Seamounts(init ctcs.Initial, nx, ny, count, radius int, height, minDepth float32, rng *rand.Rand) [][2]int {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	centres := make([][2]int, 0, count)
	for s := 0; s < count; s++ {
		cx := 1 + rng.Intn(nx)
		cy := 1 + rng.Intn(ny)
		addDisc(init.H, nx, ny, cx, cy, radius, -height)
		centres = append(centres, [2]int{cx, cy})
	}
	for i, h := range init.H {
		if h < minDepth {
			init.H[i] = minDepth
		}
	}
	fillHalo(init.H, nx, ny)
	return centres
}

// fillHalo copies the outermost interior cells into the bathymetry halo.
func fillHalo(h []float32, nx, ny int) {
	f := &grid.Field{Width: nx + 2, Height: ny + 2, Data: h}
	copy(f.Row(0), f.Row(1))
	copy(f.Row(ny+1), f.Row(ny))
	for y := 0; y < ny+2; y++ {
		row := f.Row(y)
		row[0] = row[1]
		row[nx+1] = row[nx]
	}
}

// Disturb adds a hump to the free surface of a running simulation.
func Disturb(sim *ctcs.Simulator, cx, cy, radius int, amplitude float32) error {
	p := sim.Params()
	delta := make([]float32, (p.NX+2)*(p.NY+2))
	AddBump(delta, p.NX, p.NY, cx, cy, radius, amplitude)
	return sim.AddEta(delta)
}
