package emu

// Core identity reported to frontends.
const (
	Name    = "ema4k"
	Version = "0.1.0"
)
