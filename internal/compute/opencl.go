//go:build opencl

package compute

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"ctcs/internal/grid"
	"ctcs/internal/stencil"
)

var kernelNames = []string{KernelEta, KernelLaplacianU, KernelU, KernelLaplacianV, KernelV}

// OpenCL runs kernels on an OpenCL device. Every host field is mirrored by a
// device buffer; inputs are uploaded before a launch and the output is read
// back once the launch completes.
// TODO: keep fields device-resident across a whole Step and only download on
// Simulator.Download.
type OpenCL struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	kernels    map[string]*cl.Kernel
	buffers    map[*grid.Field]*cl.MemObject
	deviceName string
}

// NewOpenCL selects the first GPU (falling back to a CPU device) and builds
// the CTCS program.
func NewOpenCL() (Backend, error) {
	device, err := pickDevice()
	if err != nil {
		return nil, err
	}
	context, err := cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	s := &OpenCL{
		context:    context,
		kernels:    make(map[string]*cl.Kernel, len(kernelNames)),
		buffers:    make(map[*grid.Field]*cl.MemObject),
		deviceName: device.Name(),
	}
	if s.queue, err = context.CreateCommandQueue(device, 0); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	if s.program, err = context.CreateProgramWithSource([]string{kernelSource}); err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := s.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		s.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	for _, name := range kernelNames {
		k, err := s.program.CreateKernel(name)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("creating kernel %s: %w", name, err)
		}
		s.kernels[name] = k
	}
	log.Printf("OpenCL backend enabled (device: %s)", s.deviceName)
	return s, nil
}

func pickDevice() (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		msg := "querying OpenCL platforms"
		if strings.Contains(err.Error(), "-1001") {
			msg += ": no ICD loader reported any platforms; install OpenCL drivers and verify with `clinfo`"
		}
		return nil, fmt.Errorf("%s: %w", msg, err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed and detected by `clinfo`")
	}
	for _, kind := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		for _, p := range platforms {
			devices, derr := p.GetDevices(kind)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				return devices[0], nil
			}
		}
	}
	return nil, errors.New("no suitable OpenCL devices found")
}

func (s *OpenCL) Name() string { return "opencl (" + s.deviceName + ")" }

// buffer returns the device mirror of f, allocating it on first use.
func (s *OpenCL) buffer(f *grid.Field) (*cl.MemObject, error) {
	if buf, ok := s.buffers[f]; ok {
		return buf, nil
	}
	byteSize := len(f.Data) * int(unsafe.Sizeof(float32(0)))
	buf, err := s.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize)
	if err != nil {
		return nil, fmt.Errorf("allocating %dx%d buffer: %w", f.Width, f.Height, err)
	}
	s.buffers[f] = buf
	return buf, nil
}

func (s *OpenCL) upload(f *grid.Field) (*cl.MemObject, error) {
	buf, err := s.buffer(f)
	if err != nil {
		return nil, err
	}
	if _, err := s.queue.EnqueueWriteBufferFloat32(buf, false, 0, f.Data, nil); err != nil {
		return nil, fmt.Errorf("writing buffer: %w", err)
	}
	return buf, nil
}

func scalarArgs(p *stencil.Params) []interface{} {
	w := p.Wind
	return []interface{}{
		p.NX, p.NY,
		p.DX, p.DY, p.Dt,
		p.G, p.F, p.R, p.A,
		boolArg(p.ClosedEW), boolArg(p.ClosedNS),
		int32(w.Type), w.Tau0, w.Rho, w.Alpha,
		w.Xm, w.Rc, w.X0, w.Y0,
		w.U0, w.V0, w.Ramp, p.T,
	}
}

func boolArg(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// bufferOrder lists the buffer arguments of each kernel in signature order.
func bufferOrder(kernel string, a *Args) []*grid.Field {
	switch kernel {
	case KernelEta:
		return []*grid.Field{a.Eta0, a.HU1, a.HV1}
	case KernelLaplacianU:
		return []*grid.Field{a.HU0, a.LapU}
	case KernelU:
		return []*grid.Field{a.H, a.Eta1, a.HU0, a.HV1, a.LapU}
	case KernelLaplacianV:
		return []*grid.Field{a.HV0, a.LapV}
	case KernelV:
		return []*grid.Field{a.H, a.Eta1, a.HU1, a.HV0, a.LapV}
	}
	return nil
}

// Launch uploads the kernel's fields, runs it and reads the output back.
func (s *OpenCL) Launch(kernel string, geom Geometry, args *Args) error {
	out, err := args.validate(kernel)
	if err != nil {
		return err
	}
	k, ok := s.kernels[kernel]
	if !ok {
		return fmt.Errorf("%q: %w", kernel, ErrUnknownKernel)
	}
	kargs := scalarArgs(&args.Params)
	for _, f := range bufferOrder(kernel, args) {
		buf, err := s.upload(f)
		if err != nil {
			return fmt.Errorf("%s: %w", kernel, err)
		}
		kargs = append(kargs, buf)
	}
	if err := k.SetArgs(kargs...); err != nil {
		return fmt.Errorf("setting %s arguments: %w", kernel, err)
	}
	global := []int{geom.GlobalWidth, geom.GlobalHeight}
	local := []int{geom.BlockWidth, geom.BlockHeight}
	if _, err := s.queue.EnqueueNDRangeKernel(k, nil, global, local, nil); err != nil {
		return fmt.Errorf("enqueueing %s: %w", kernel, err)
	}
	if _, err := s.queue.EnqueueReadBufferFloat32(s.buffers[out], true, 0, out.Data, nil); err != nil {
		return fmt.Errorf("reading %s output: %w", kernel, err)
	}
	return nil
}

func (s *OpenCL) Close() {
	for f, buf := range s.buffers {
		buf.Release()
		delete(s.buffers, f)
	}
	for name, k := range s.kernels {
		k.Release()
		delete(s.kernels, name)
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
}
