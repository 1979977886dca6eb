package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"ctcs/internal/compute"
	"ctcs/internal/config"
	"ctcs/internal/ctcs"
)

func main() {
	flag.Parse()

	stop, err := config.StartCPUProfile(*cpuProfileFlag)
	if err != nil {
		log.Fatalf("ctcs-view: %v", err)
	}
	defer stop()

	p, err := runConfig.Params()
	if err != nil {
		log.Fatalf("ctcs-view: %v", err)
	}
	init, err := runConfig.Initial()
	if err != nil {
		log.Fatalf("ctcs-view: %v", err)
	}
	backend, err := compute.New(*backendFlag, *workersFlag)
	if err != nil {
		log.Fatalf("ctcs-view: %v", err)
	}
	defer backend.Close()
	sim, err := ctcs.New(p, init, backend)
	if err != nil {
		log.Fatalf("ctcs-view: %v", err)
	}
	log.Printf("run: %s", runConfig)
	log.Printf("backend: %s", backend.Name())

	g := newGame(sim)
	scale := *windowScaleFlag
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowSize(p.NX*scale, p.NY*scale)
	ebiten.SetWindowTitle("CTCS shallow water")
	if err := ebiten.RunGame(g); err != nil {
		stop()
		log.Fatalf("ctcs-view: %v", err)
	}
}
