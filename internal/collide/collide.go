// Package collide declares the collision and ground query contracts the placement core
// consumes. The editor's physics package implements them; tests use fakes.
package collide

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"road-editor/internal/piece"
)

// LayerMask selects collision layers.
type LayerMask uint32

const (
	LayerGround LayerMask = 1 << iota
	LayerRoad

	LayerAll LayerMask = ^LayerMask(0)
)

// Handle identifies a collidable returned by an overlap query.
type Handle struct {
	Owner uuid.UUID
	Layer LayerMask
}

// Collider answers box overlap queries against the host's collision world.
type Collider interface {
	// OverlapBox returns the collidables intersecting the box with the given center,
	// half extents and orientation on the layers in mask.
	OverlapBox(center, halfExtents rl.Vector3, orientation rl.Quaternion, mask LayerMask) []Handle
}

// Ground turns a pointer ray into a world point.
type Ground interface {
	// Raycast returns the first hit point along ray within maxDistance on the layers in mask.
	Raycast(ray rl.Ray, maxDistance float32, mask LayerMask) (rl.Vector3, bool)
}

// Bodies mirrors piece volumes into the host's collision world.
type Bodies interface {
	// Sync adds or updates the body of o; non-blocking objects become triggers.
	Sync(o *piece.Object, layer LayerMask)
	// Drop removes the body owned by id.
	Drop(id uuid.UUID)
}
