package compute

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"ctcs/internal/stencil"
)

// tile is one launch block in global coordinates, end exclusive.
type tile struct {
	x0, y0, x1, y1 int
}

// workerTiles collects the tiles assigned to one worker goroutine.
type workerTiles struct {
	tiles []tile
}

// CPU runs kernels on host memory, spreading the launch blocks over a bounded
// pool of goroutines.
type CPU struct {
	workers int
}

// NewCPU returns a CPU backend with the given worker bound.
func NewCPU(workers int) *CPU {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &CPU{workers: workers}
}

func (c *CPU) Name() string { return fmt.Sprintf("cpu (%d workers)", c.workers) }

func (c *CPU) Close() {}

// Launch blocks until every tile of the kernel has run.
func (c *CPU) Launch(kernel string, geom Geometry, args *Args) error {
	if _, err := args.validate(kernel); err != nil {
		return err
	}
	cell, err := cellFunc(kernel, args)
	if err != nil {
		return err
	}
	masks := assignTiles(c.workers, buildTiles(geom))

	var g errgroup.Group
	for i := range masks {
		mask := &masks[i]
		if len(mask.tiles) == 0 {
			continue
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%s: %v", kernel, r)
				}
			}()
			for _, t := range mask.tiles {
				for y := t.y0; y < t.y1; y++ {
					for x := t.x0; x < t.x1; x++ {
						cell(x, y)
					}
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// cellFunc binds a kernel's arguments into a per-cell update.
func cellFunc(kernel string, a *Args) (func(x, y int), error) {
	p := &a.Params
	switch kernel {
	case KernelEta:
		return func(x, y int) { stencil.Eta(p, a.Eta0, a.HU1, a.HV1, x, y) }, nil
	case KernelLaplacianU:
		return func(x, y int) { stencil.LaplacianU(p, a.HU0, a.LapU, x, y) }, nil
	case KernelU:
		return func(x, y int) { stencil.U(p, a.H, a.Eta1, a.HU0, a.HV1, a.LapU, x, y) }, nil
	case KernelLaplacianV:
		return func(x, y int) { stencil.LaplacianV(p, a.HV0, a.LapV, x, y) }, nil
	case KernelV:
		return func(x, y int) { stencil.V(p, a.H, a.Eta1, a.HU1, a.HV0, a.LapV, x, y) }, nil
	}
	return nil, fmt.Errorf("%q: %w", kernel, ErrUnknownKernel)
}

// buildTiles splits the global range into blocks.
func buildTiles(geom Geometry) []tile {
	bw, bh := max(geom.BlockWidth, 1), max(geom.BlockHeight, 1)
	tiles := make([]tile, 0, (geom.GlobalWidth/bw+1)*(geom.GlobalHeight/bh+1))
	for y := 0; y < geom.GlobalHeight; y += bh {
		for x := 0; x < geom.GlobalWidth; x += bw {
			tiles = append(tiles, tile{
				x0: x, y0: y,
				x1: min(x+bw, geom.GlobalWidth),
				y1: min(y+bh, geom.GlobalHeight),
			})
		}
	}
	return tiles
}

// assignTiles distributes tiles across workers in round robin fashion.
func assignTiles(workerCount int, tiles []tile) []workerTiles {
	if workerCount < 1 {
		workerCount = 1
	}
	masks := make([]workerTiles, workerCount)
	for idx, t := range tiles {
		workerIdx := idx % workerCount
		masks[workerIdx].tiles = append(masks[workerIdx].tiles, t)
	}
	return masks
}
