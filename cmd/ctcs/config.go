package main

// Runner defaults. Solver defaults live in internal/config.
const (
	defaultTEnd        = 24 * 3600
	defaultOutputEvery = 3600
	streamPath         = "/ws"
)
