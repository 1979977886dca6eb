package boundary

import (
	"fmt"

	"ctcs/internal/grid"
)

// Applicator refreshes ghost cells and wall faces of the staggered fields.
// Row 0 is the southern ghost row and column 0 the western ghost column.
type Applicator struct {
	nx, ny int
	ns, ew Policy
	cond   Conditions
}

// New validates the descriptor and returns an applicator for an nx×ny domain.
func New(nx, ny int, c Conditions) (*Applicator, error) {
	ns, ew, err := c.Resolve()
	if err != nil {
		return nil, err
	}
	return &Applicator{nx: nx, ny: ny, ns: ns, ew: ew, cond: c}, nil
}

// ClosedNS reports whether the north and south edges reflect.
func (a *Applicator) ClosedNS() bool { return a.ns == PolicyClosed }

// ClosedEW reports whether the east and west edges reflect.
func (a *Applicator) ClosedEW() bool { return a.ew == PolicyClosed }

// Conditions returns the descriptor the applicator was built from.
func (a *Applicator) Conditions() Conditions { return a.cond }

// Per-policy rules. n is the interior extent along the affected axis.
var (
	ghostRowRules = [...]func(f *grid.Field, n int){
		PolicyClosed:   mirrorGhostRows,
		PolicyPeriodic: wrapGhostRows,
	}
	ghostColRules = [...]func(f *grid.Field, n int){
		PolicyClosed:   mirrorGhostCols,
		PolicyPeriodic: wrapGhostCols,
	}
	faceColRules = [...]func(f *grid.Field, n int){
		PolicyClosed:   zeroFaceCols,
		PolicyPeriodic: wrapFaceCols,
	}
	faceRowRules = [...]func(f *grid.Field, n int){
		PolicyClosed:   zeroFaceRows,
		PolicyPeriodic: wrapFaceRows,
	}
)

// Eta fills the eta ghost cells: the north/south rows first, then the
// east/west columns, so the corners come from the second pass.
func (a *Applicator) Eta(f *grid.Field) error {
	if err := a.check("eta", f, a.nx+2, a.ny+2); err != nil {
		return err
	}
	ghostRowRules[a.ns](f, a.ny)
	ghostColRules[a.ew](f, a.nx)
	return nil
}

// U sets the east/west wall faces of hu, then its north/south ghost rows.
func (a *Applicator) U(f *grid.Field) error {
	if err := a.check("hu", f, a.nx+1, a.ny+2); err != nil {
		return err
	}
	faceColRules[a.ew](f, a.nx)
	ghostRowRules[a.ns](f, a.ny)
	return nil
}

// V sets the north/south wall faces of hv, then its east/west ghost columns.
func (a *Applicator) V(f *grid.Field) error {
	if err := a.check("hv", f, a.nx+2, a.ny+1); err != nil {
		return err
	}
	faceRowRules[a.ns](f, a.ny)
	ghostColRules[a.ew](f, a.nx)
	return nil
}

func (a *Applicator) check(name string, f *grid.Field, width, height int) error {
	if f == nil || f.Width != width || f.Height != height {
		return fmt.Errorf("%s boundary: field is not %dx%d", name, width, height)
	}
	return nil
}

func mirrorGhostRows(f *grid.Field, n int) {
	copy(f.Row(0), f.Row(1))
	copy(f.Row(n+1), f.Row(n))
}

func wrapGhostRows(f *grid.Field, n int) {
	copy(f.Row(0), f.Row(n))
	copy(f.Row(n+1), f.Row(1))
}

func mirrorGhostCols(f *grid.Field, n int) {
	for y := 0; y < f.Height; y++ {
		row := f.Row(y)
		row[0] = row[1]
		row[n+1] = row[n]
	}
}

func wrapGhostCols(f *grid.Field, n int) {
	for y := 0; y < f.Height; y++ {
		row := f.Row(y)
		row[0] = row[n]
		row[n+1] = row[1]
	}
}

func zeroFaceCols(f *grid.Field, n int) {
	for y := 0; y < f.Height; y++ {
		row := f.Row(y)
		row[0] = 0
		row[n] = 0
	}
}

// wrapFaceCols identifies the western wall face with the eastern one, which
// is the same physical face of a periodic domain.
func wrapFaceCols(f *grid.Field, n int) {
	for y := 0; y < f.Height; y++ {
		row := f.Row(y)
		row[0] = row[n]
	}
}

func zeroFaceRows(f *grid.Field, n int) {
	clear(f.Row(0))
	clear(f.Row(n))
}

func wrapFaceRows(f *grid.Field, n int) {
	copy(f.Row(0), f.Row(n))
}
