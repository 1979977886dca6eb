package main

import (
	"flag"

	"ctcs/internal/config"
)

// runConfig carries the solver flags shared with the headless runner.
var runConfig = config.Default()

func init() {
	runConfig.Bind(flag.CommandLine)
}

var (
	backendFlag = flag.String("backend", "cpu", "kernel backend: cpu or opencl (needs -tags opencl)")
	workersFlag = flag.Int("workers", 0, "CPU backend workers (0 = GOMAXPROCS)")

	// windowScaleFlag sets how many screen pixels one cell covers.
	windowScaleFlag = flag.Int("scale", defaultWindowScale, "screen pixels per cell")

	// stepsFlag is the initial number of sub-steps advanced per frame.
	stepsFlag = flag.Int("steps", defaultStepsPerFrame, "sub-steps per frame (adjust with +/-)")

	clickRadiusFlag    = flag.Int("click-radius", 4, "radius of a clicked hump [cells]")
	clickAmplitudeFlag = flag.Float64("click-amplitude", 0.5, "amplitude of a clicked hump [m]")

	// debugFlag enables the time and performance overlay.
	debugFlag = flag.Bool("debug", true, "show simulation time and speed overlay")

	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")
)
