package common

import "time"

const (
	BaseWidth  = 640
	BaseHeight = 360

	TPS = 60
	// TickDelta is the elapsed time handed to the world every update.
	TickDelta = time.Second / TPS

	TileSize = 24
	// Gravity in pixels per second squared, before per-body GravityScale.
	Gravity = 98.1
)
