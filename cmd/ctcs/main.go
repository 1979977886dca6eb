package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"

	"github.com/gosuri/uiprogress"

	"ctcs/internal/compute"
	"ctcs/internal/config"
	"ctcs/internal/ctcs"
	"ctcs/internal/diag"
	"ctcs/internal/scenario"
	"ctcs/internal/stream"
)

func main() {
	flag.Parse()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := run(ctx); err != nil {
		log.Fatalf("ctcs: %v", err)
	}
}

func run(ctx context.Context) error {
	stop, err := config.StartCPUProfile(*cpuProfileFlag)
	if err != nil {
		return err
	}
	defer stop()

	if *tEndFlag <= 0 || *outputEveryFlag <= 0 {
		return fmt.Errorf("t-end %g and output-every %g must be positive", *tEndFlag, *outputEveryFlag)
	}
	p, err := runConfig.Params()
	if err != nil {
		return err
	}
	init, err := runConfig.Initial()
	if err != nil {
		return err
	}
	backend, err := compute.New(*backendFlag, *workersFlag)
	if err != nil {
		return err
	}
	defer backend.Close()

	sim, err := ctcs.New(p, init, backend)
	if err != nil {
		return err
	}
	log.Printf("run: %s", runConfig)
	log.Printf("backend: %s", backend.Name())

	var hub *stream.Hub
	if *serveFlag != "" {
		hub = stream.NewHub()
		mux := http.NewServeMux()
		mux.Handle(streamPath, hub)
		srv := &http.Server{Addr: *serveFlag, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("stream server: %v", err)
			}
		}()
		defer srv.Close()
		log.Printf("streaming eta frames on ws://%s%s", *serveFlag, streamPath)
		publish(hub, sim)
	}

	tEnd, every := *tEndFlag, *outputEveryFlag
	intervals := int(math.Ceil(tEnd / every))
	startVolume := volume(sim)

	var bar *uiprogress.Bar
	if *progressFlag {
		uiprogress.Start()
		bar = uiprogress.AddBar(intervals).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return fmt.Sprintf("t=%7.1fh", float64(b.Current())*every/3600)
		})
	}

	for i := 0; i < intervals; i++ {
		if hub != nil {
			applyCommands(hub, sim)
		}
		chunk := math.Min(every, tEnd-float64(i)*every)
		if _, err := sim.Step(ctx, float32(chunk)); err != nil {
			if bar != nil {
				uiprogress.Stop()
			}
			return fmt.Errorf("after %d sub-steps: %w", sim.SubSteps(), err)
		}
		if hub != nil {
			publish(hub, sim)
		}
		if bar != nil {
			bar.Incr()
		} else {
			report(sim)
		}
	}
	if bar != nil {
		uiprogress.Stop()
	}

	report(sim)
	drift := volume(sim) - startVolume
	log.Printf("done: %d sub-steps, %d swaps, volume drift %.4g m^3", sim.SubSteps(), sim.Swaps(), drift)
	return nil
}

func report(sim *ctcs.Simulator) {
	p := sim.Params()
	snap := sim.Download(false)
	eta := diag.Interior(snap.Eta, p.NX, p.NY)
	hu := diag.Summarize(diag.Values(snap.HU, 0, 0, snap.HU.Width, snap.HU.Height))
	hv := diag.Summarize(diag.Values(snap.HV, 0, 0, snap.HV.Width, snap.HV.Height))
	log.Printf("t=%.0fs eta[%s] |hu|<=%.4g |hv|<=%.4g", sim.Time(), eta, hu.MaxAbs, hv.MaxAbs)
}

func volume(sim *ctcs.Simulator) float64 {
	p := sim.Params()
	return diag.Volume(sim.Download(false).Eta, p.NX, p.NY, p.DX, p.DY)
}

func publish(hub *stream.Hub, sim *ctcs.Simulator) {
	p := sim.Params()
	eta := sim.Download(false).Eta
	hub.Broadcast(stream.NewFrame(sim.Time(), sim.SubSteps(), eta, p.NX, p.NY, p.DX, p.DY))
}

// applyCommands drains the client command queue without blocking.
func applyCommands(hub *stream.Hub, sim *ctcs.Simulator) {
	for {
		select {
		case cmd := <-hub.Commands():
			if cmd.Type != "bump" {
				log.Printf("ignoring client command %q", cmd.Type)
				continue
			}
			if err := scenario.Disturb(sim, cmd.X, cmd.Y, cmd.Radius, cmd.Amplitude); err != nil {
				log.Printf("client bump: %v", err)
			}
		default:
			return
		}
	}
}
