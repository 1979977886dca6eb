package main

// Viewer tuning. Solver defaults live in internal/config.
const (
	defaultWindowScale   = 6
	defaultStepsPerFrame = 4
	stepsPerFrameDelta   = 1
	minStepsPerFrame     = 1
	maxStepsPerFrame     = 200
	probeSpeed           = 0.5
	minColourRange       = 1e-3
	colourRangeDecay     = 0.98
	positiveHue          = 0
	negativeHue          = 220
)
