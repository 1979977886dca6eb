// Package stencil holds the per-cell CTCS (leapfrog) update equations for the
// shallow water equations on an Arakawa C grid.
//
// Index conventions, all in padded coordinates:
//
//	eta, H  (nx+2)×(ny+2)  cell (x, y) is interior for 1≤x≤nx, 1≤y≤ny
//	hu      (nx+1)×(ny+2)  face x sits between eta cells x and x+1
//	hv      (nx+2)×(ny+1)  face y sits between eta cells y and y+1
//
// Every function updates exactly one cell of its output and only reads values
// that no concurrent invocation of the same kernel writes.
package stencil

import "ctcs/internal/wind"

// MinDepth clamps the total water depth used by the friction term.
const MinDepth = 1e-3

// Params are the scalar kernel arguments of one sub-step.
type Params struct {
	NX, NY int32

	DX, DY, Dt float32

	G float32 // gravitational acceleration
	F float32 // Coriolis parameter
	R float32 // bottom friction coefficient
	A float32 // eddy viscosity

	// ClosedEW and ClosedNS freeze the wall faces, which the boundary
	// applicator owns.
	ClosedEW bool
	ClosedNS bool

	Wind wind.Stress

	// T is the simulation time at the start of the sub-step.
	T float32
}

// UFaceUpdated reports whether the x-momentum face (x, y) is computed by the
// U kernel.
func (p *Params) UFaceUpdated(x, y int) bool {
	nx, ny := int(p.NX), int(p.NY)
	if y < 1 || y > ny || x < 1 || x > nx {
		return false
	}
	return !p.ClosedEW || x < nx
}

// VFaceUpdated reports whether the y-momentum face (x, y) is computed by the
// V kernel.
func (p *Params) VFaceUpdated(x, y int) bool {
	nx, ny := int(p.NX), int(p.NY)
	if x < 1 || x > nx || y < 1 || y > ny {
		return false
	}
	return !p.ClosedNS || y < ny
}

// EtaCellUpdated reports whether (x, y) is an interior eta cell.
func (p *Params) EtaCellUpdated(x, y int) bool {
	return x >= 1 && x <= int(p.NX) && y >= 1 && y <= int(p.NY)
}

// nextU returns the x-momentum face east of x, wrapping on a periodic domain.
func (p *Params) nextU(x int) int {
	if x == int(p.NX) {
		return 1
	}
	return x + 1
}

// nextV returns the y-momentum face north of y, wrapping on a periodic domain.
func (p *Params) nextV(y int) int {
	if y == int(p.NY) {
		return 1
	}
	return y + 1
}

func clampDepth(h float32) float32 {
	if h < MinDepth {
		return MinDepth
	}
	return h
}
