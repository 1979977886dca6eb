package grid

import "fmt"

// Halo is the ghost-cell width carried on every padded edge.
const Halo = 1

// Storage owns the staggered Arakawa C fields of one simulation: two time
// levels each of eta, hu and hv plus the static bathymetry.
//
// The two levels of every field are labelled by a single shared parity bit, so
// Swap relabels all three fields at once and never moves data.
type Storage struct {
	NX, NY int

	H *Field

	eta [2]*Field
	hu  [2]*Field
	hv  [2]*Field

	parity int
	swaps  uint64
}

// EtaShape returns the padded extent of eta and bathymetry fields.
func EtaShape(nx, ny int) (int, int) { return nx + 2*Halo, ny + 2*Halo }

// UShape returns the padded extent of the x-momentum field.
func UShape(nx, ny int) (int, int) { return nx + 1, ny + 2*Halo }

// VShape returns the padded extent of the y-momentum field.
func VShape(nx, ny int) (int, int) { return nx + 2*Halo, ny + 1 }

// NewStorage allocates the leveled fields and fills both time levels of each
// with the supplied initial arrays.
func NewStorage(nx, ny int, h, eta0, hu0, hv0 []float32) (*Storage, error) {
	if nx < 1 || ny < 1 {
		return nil, fmt.Errorf("grid size %dx%d must be positive", nx, ny)
	}
	s := &Storage{NX: nx, NY: ny}
	ew, eh := EtaShape(nx, ny)
	uw, uh := UShape(nx, ny)
	vw, vh := VShape(nx, ny)

	var err error
	if s.H, err = FieldFrom(ew, eh, h); err != nil {
		return nil, fmt.Errorf("bathymetry: %w", err)
	}
	if s.eta, err = leveled(ew, eh, eta0); err != nil {
		return nil, fmt.Errorf("eta: %w", err)
	}
	if s.hu, err = leveled(uw, uh, hu0); err != nil {
		return nil, fmt.Errorf("hu: %w", err)
	}
	if s.hv, err = leveled(vw, vh, hv0); err != nil {
		return nil, fmt.Errorf("hv: %w", err)
	}
	return s, nil
}

func leveled(width, height int, data []float32) ([2]*Field, error) {
	a, err := FieldFrom(width, height, data)
	if err != nil {
		return [2]*Field{}, err
	}
	return [2]*Field{a, a.Clone()}, nil
}

// Eta returns the eta buffers: prev holds level n-1 and is overwritten with
// n+1 by the eta kernel, curr holds level n.
func (s *Storage) Eta() (prev, curr *Field) { return s.eta[s.parity], s.eta[s.parity^1] }

// HU returns the x-momentum buffers, labelled as in Eta.
func (s *Storage) HU() (prev, curr *Field) { return s.hu[s.parity], s.hu[s.parity^1] }

// HV returns the y-momentum buffers, labelled as in Eta.
func (s *Storage) HV() (prev, curr *Field) { return s.hv[s.parity], s.hv[s.parity^1] }

// Swap exchanges the prev/curr labels of eta, hu and hv together so that the
// freshly written level becomes current.
func (s *Storage) Swap() {
	s.parity ^= 1
	s.swaps++
}

// Swaps reports how many times Swap has run.
func (s *Storage) Swaps() uint64 { return s.swaps }

// Snapshot is a host copy of the current time level of every leveled field.
type Snapshot struct {
	Eta *Field
	HU  *Field
	HV  *Field
}

// Download copies the current level of each field. With interior set the halo
// is stripped: eta becomes nx×ny, hu (nx+1)×ny and hv nx×(ny+1), keeping the
// wall faces of the momentum fields.
func (s *Storage) Download(interior bool) Snapshot {
	_, eta := s.Eta()
	_, hu := s.HU()
	_, hv := s.HV()
	if !interior {
		return Snapshot{Eta: eta.Clone(), HU: hu.Clone(), HV: hv.Clone()}
	}
	return Snapshot{
		Eta: eta.Crop(Halo, Halo, s.NX, s.NY),
		HU:  hu.Crop(0, Halo, s.NX+1, s.NY),
		HV:  hv.Crop(Halo, 0, s.NX, s.NY+1),
	}
}
