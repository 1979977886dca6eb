package main

import (
	"flag"

	"ctcs/internal/config"
)

// runConfig carries the solver flags shared with ctcs-view.
var runConfig = config.Default()

func init() {
	runConfig.Bind(flag.CommandLine)
}

// Flags specific to the headless runner.
var (
	// backendFlag selects the kernel backend.
	backendFlag = flag.String("backend", "cpu", "kernel backend: cpu or opencl (needs -tags opencl)")

	// workersFlag sets the CPU backend's worker count; 0 uses GOMAXPROCS.
	workersFlag = flag.Int("workers", 0, "CPU backend workers (0 = GOMAXPROCS)")

	tEndFlag        = flag.Float64("t-end", defaultTEnd, "simulated time to advance [s]")
	outputEveryFlag = flag.Float64("output-every", defaultOutputEvery, "report and publish every this many simulated seconds")

	// serveFlag streams eta frames to websocket clients on the given address.
	serveFlag = flag.String("serve", "", "stream eta frames over websockets on this address, e.g. :8080")

	progressFlag   = flag.Bool("progress", true, "show a progress bar instead of per-interval logs")
	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")
)
