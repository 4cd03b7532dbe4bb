package placement

import (
	"road-editor/internal/collide"
	"road-editor/internal/feedback"
	"road-editor/internal/overlap"
	"road-editor/internal/snap"
)

// DefaultRaycastDistance is how far the pointer ray searches for ground.
const DefaultRaycastDistance = float32(100)

// Config holds the tuning of a session.
type Config struct {
	Snap            snap.Config
	OverlapShrink   float32
	RaycastDistance float32
	GroundMask      collide.LayerMask
	RoadMask        collide.LayerMask
	Palette         feedback.Palette
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Snap:            snap.DefaultConfig(),
		OverlapShrink:   overlap.DefaultShrink,
		RaycastDistance: DefaultRaycastDistance,
		GroundMask:      collide.LayerGround,
		RoadMask:        collide.LayerRoad,
		Palette:         feedback.DefaultPalette(),
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Snap == (snap.Config{}) {
		c.Snap = d.Snap
	}
	if c.RaycastDistance <= 0 {
		c.RaycastDistance = d.RaycastDistance
	}
	if c.GroundMask == 0 {
		c.GroundMask = d.GroundMask
	}
	if c.RoadMask == 0 {
		c.RoadMask = d.RoadMask
	}
	if c.Palette == (feedback.Palette{}) {
		c.Palette = d.Palette
	}
	return c
}
