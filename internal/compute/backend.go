// Package compute is the kernel-execution service of the solver: it runs a
// named stencil over a launch geometry with a typed argument set.
package compute

import (
	"errors"
	"fmt"

	"ctcs/internal/grid"
	"ctcs/internal/stencil"
)

// Kernel names understood by every backend.
const (
	KernelEta        = "ctcs_eta"
	KernelLaplacianU = "ctcs_laplacian_u"
	KernelU          = "ctcs_u"
	KernelLaplacianV = "ctcs_laplacian_v"
	KernelV          = "ctcs_v"
)

// ErrUnknownKernel is returned when Launch is given a name it cannot run.
var ErrUnknownKernel = errors.New("unknown kernel")

// Geometry is a kernel launch shape: a global 2D range rounded up to whole
// blocks. Only performance depends on the block size.
type Geometry struct {
	GlobalWidth, GlobalHeight int
	BlockWidth, BlockHeight   int
}

// NewGeometry covers a width×height range with blocks of the given size.
func NewGeometry(width, height, blockWidth, blockHeight int) Geometry {
	if blockWidth < 1 {
		blockWidth = 1
	}
	if blockHeight < 1 {
		blockHeight = 1
	}
	return Geometry{
		GlobalWidth:  roundUp(width, blockWidth),
		GlobalHeight: roundUp(height, blockHeight),
		BlockWidth:   blockWidth,
		BlockHeight:  blockHeight,
	}
}

func roundUp(v, block int) int {
	return ((v + block - 1) / block) * block
}

// Args is the argument set shared by the CTCS kernels. Suffix 0 marks level
// n-1 (overwritten with n+1), suffix 1 marks level n.
type Args struct {
	Params stencil.Params

	H          *grid.Field
	Eta0, Eta1 *grid.Field
	HU0, HU1   *grid.Field
	HV0, HV1   *grid.Field
	LapU, LapV *grid.Field
}

// Backend executes kernels. Launch returns once the kernel's output is visible
// to the host and to the next launch.
type Backend interface {
	Launch(kernel string, geom Geometry, args *Args) error
	Name() string
	Close()
}

// New returns the backend called name: "cpu" or "opencl". workers bounds the
// CPU tile pool; zero selects GOMAXPROCS.
func New(name string, workers int) (Backend, error) {
	switch name {
	case "", "cpu":
		return NewCPU(workers), nil
	case "opencl":
		return NewOpenCL()
	}
	return nil, fmt.Errorf("unknown compute backend %q", name)
}

// output returns the field a kernel writes.
func (a *Args) output(kernel string) (*grid.Field, error) {
	var f *grid.Field
	switch kernel {
	case KernelEta:
		f = a.Eta0
	case KernelLaplacianU:
		f = a.LapU
	case KernelU:
		f = a.HU0
	case KernelLaplacianV:
		f = a.LapV
	case KernelV:
		f = a.HV0
	default:
		return nil, fmt.Errorf("%q: %w", kernel, ErrUnknownKernel)
	}
	if f == nil {
		return nil, fmt.Errorf("%s: output field not bound", kernel)
	}
	return f, nil
}

// inputs lists the fields a kernel reads besides its output.
func (a *Args) inputs(kernel string) []*grid.Field {
	switch kernel {
	case KernelEta:
		return []*grid.Field{a.HU1, a.HV1}
	case KernelLaplacianU:
		return []*grid.Field{a.HU0}
	case KernelU:
		return []*grid.Field{a.H, a.Eta1, a.HV1, a.LapU}
	case KernelLaplacianV:
		return []*grid.Field{a.HV0}
	case KernelV:
		return []*grid.Field{a.H, a.Eta1, a.HU1, a.LapV}
	}
	return nil
}

func (a *Args) validate(kernel string) (*grid.Field, error) {
	out, err := a.output(kernel)
	if err != nil {
		return nil, err
	}
	for _, f := range a.inputs(kernel) {
		if f == nil {
			return nil, fmt.Errorf("%s: input field not bound", kernel)
		}
	}
	return out, nil
}
