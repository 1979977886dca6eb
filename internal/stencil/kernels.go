package stencil

import "ctcs/internal/grid"

// Eta advances the continuity equation in place at cell (x, y):
//
//	eta^{n+1} = eta^{n-1} - 2dt (dU^n/dx + dV^n/dy)
//
// eta0 holds eta^{n-1} on entry and eta^{n+1} on return.
func Eta(p *Params, eta0, hu1, hv1 *grid.Field, x, y int) {
	if !p.EtaCellUpdated(x, y) {
		return
	}
	dU := hu1.At(x, y) - hu1.At(x-1, y)
	dV := hv1.At(x, y) - hv1.At(x, y-1)
	eta0.Set(x, y, eta0.At(x, y)-2*p.Dt*(dU/p.DX+dV/p.DY))
}

// LaplacianU stores the lagged Laplacian of hu^{n-1} at face (x, y) into lap.
// It runs before U so that U never reads neighbours of the buffer it writes.
func LaplacianU(p *Params, hu0, lap *grid.Field, x, y int) {
	if !p.UFaceUpdated(x, y) {
		return
	}
	c := hu0.At(x, y)
	dxx := (hu0.At(p.nextU(x), y) - 2*c + hu0.At(x-1, y)) / (p.DX * p.DX)
	dyy := (hu0.At(x, y+1) - 2*c + hu0.At(x, y-1)) / (p.DY * p.DY)
	lap.Set(x, y, dxx+dyy)
}

// LaplacianV is the y-momentum counterpart of LaplacianU.
func LaplacianV(p *Params, hv0, lap *grid.Field, x, y int) {
	if !p.VFaceUpdated(x, y) {
		return
	}
	c := hv0.At(x, y)
	dxx := (hv0.At(x+1, y) - 2*c + hv0.At(x-1, y)) / (p.DX * p.DX)
	dyy := (hv0.At(x, p.nextV(y)) - 2*c + hv0.At(x, y-1)) / (p.DY * p.DY)
	lap.Set(x, y, dxx+dyy)
}

// U advances the x-momentum at face (x, y) in place. hu0 holds hu^{n-1} on
// entry and hu^{n+1} on return; eta1 and hv1 are level n. lap is the output of
// LaplacianU and is only read when eddy viscosity is enabled.
//
// Friction is treated semi-implicitly:
//
//	hu^{n+1} = ((1-C) hu^{n-1} + 2dt (f V + P + A lap + X)) / (1+C),  C = r dt / h
func U(p *Params, h, eta1, hu0, hv1, lap *grid.Field, x, y int) {
	if !p.UFaceUpdated(x, y) {
		return
	}
	etaM, etaP := eta1.At(x, y), eta1.At(x+1, y)
	depth := 0.5*(h.At(x, y)+h.At(x+1, y)) + 0.5*(etaM+etaP)

	pressure := -p.G * max(depth, 0) * (etaP - etaM) / p.DX
	vBar := 0.25 * (hv1.At(x, y) + hv1.At(x+1, y) + hv1.At(x, y-1) + hv1.At(x+1, y-1))

	var eddy float32
	if p.A != 0 {
		eddy = p.A * lap.At(x, y)
	}
	px := float32(x) * p.DX
	py := (float32(y) - 0.5) * p.DY
	forcing := p.Wind.X(px, py, p.T, p.Dt)

	c := p.R * p.Dt / clampDepth(depth)
	u0 := hu0.At(x, y)
	hu0.Set(x, y, ((1-c)*u0+2*p.Dt*(p.F*vBar+pressure+eddy+forcing))/(1+c))
}

// V advances the y-momentum at face (x, y) in place, symmetric to U with the
// Coriolis term acting against hu.
func V(p *Params, h, eta1, hu1, hv0, lap *grid.Field, x, y int) {
	if !p.VFaceUpdated(x, y) {
		return
	}
	etaM, etaP := eta1.At(x, y), eta1.At(x, y+1)
	depth := 0.5*(h.At(x, y)+h.At(x, y+1)) + 0.5*(etaM+etaP)

	pressure := -p.G * max(depth, 0) * (etaP - etaM) / p.DY
	uBar := 0.25 * (hu1.At(x-1, y) + hu1.At(x, y) + hu1.At(x-1, y+1) + hu1.At(x, y+1))

	var eddy float32
	if p.A != 0 {
		eddy = p.A * lap.At(x, y)
	}
	px := (float32(x) - 0.5) * p.DX
	py := float32(y) * p.DY
	forcing := p.Wind.Y(px, py, p.T, p.Dt)

	c := p.R * p.Dt / clampDepth(depth)
	v0 := hv0.At(x, y)
	hv0.Set(x, y, ((1-c)*v0+2*p.Dt*(-p.F*uBar+pressure+eddy+forcing))/(1+c))
}
