// Package physics is the editor's collision world: piece bodies with an AABB broad phase and a
// ground plane for pointer raycasts.
package physics

import (
	"slices"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"road-editor/internal/collide"
	"road-editor/internal/piece"
)

// World holds the bodies in insertion order and an infinite ground plane at GroundY.
type World struct {
	GroundY float32
	Bodies  []*Body
}

var (
	_ collide.Collider = (*World)(nil)
	_ collide.Ground   = (*World)(nil)
	_ collide.Bodies   = (*World)(nil)
)

// NewWorld returns an empty world with the ground at y=0.
func NewWorld() *World {
	return &World{}
}

// AddBody appends a body. Order is preserved so queries report hits in insertion order.
func (w *World) AddBody(b *Body) {
	w.Bodies = append(w.Bodies, b)
}

// Body returns the body owned by id, or nil.
func (w *World) Body(id uuid.UUID) *Body {
	if i := w.index(id); i >= 0 {
		return w.Bodies[i]
	}
	return nil
}

func (w *World) index(id uuid.UUID) int {
	return slices.IndexFunc(w.Bodies, func(b *Body) bool { return b.Owner == id })
}

// Sync adds or updates the body of o.
func (w *World) Sync(o *piece.Object, layer collide.LayerMask) {
	if b := w.Body(o.ID); b != nil {
		b.update(o, layer)
		return
	}
	w.AddBody(NewBody(o, layer))
}

// Drop removes the body owned by id.
func (w *World) Drop(id uuid.UUID) {
	if i := w.index(id); i >= 0 {
		w.Bodies = slices.Delete(w.Bodies, i, i+1)
	}
}

// OverlapBox returns the solid bodies on mask whose bounds intersect the oriented box.
func (w *World) OverlapBox(center, halfExtents rl.Vector3, orientation rl.Quaternion, mask collide.LayerMask) []collide.Handle {
	box := piece.OrientedBounds(center, halfExtents, orientation)
	var hits []collide.Handle
	for _, b := range w.Bodies {
		if b.Trigger || b.Layer&mask == 0 {
			continue
		}
		if rl.CheckCollisionBoxes(box, b.Bounds()) {
			hits = append(hits, collide.Handle{Owner: b.Owner, Layer: b.Layer})
		}
	}
	return hits
}

// Raycast returns the nearest hit along ray within maxDistance: the ground plane when mask
// includes LayerGround, and solid bodies on the other layers in mask.
func (w *World) Raycast(ray rl.Ray, maxDistance float32, mask collide.LayerMask) (rl.Vector3, bool) {
	dir := rl.Vector3Normalize(ray.Direction)
	best := maxDistance
	var hit rl.Vector3
	found := false

	if mask&collide.LayerGround != 0 && math32.Abs(dir.Y) > 1e-6 {
		t := (w.GroundY - ray.Position.Y) / dir.Y
		if t >= 0 && t <= best {
			best = t
			hit = rl.Vector3Add(ray.Position, rl.Vector3Scale(dir, t))
			found = true
		}
	}
	for _, b := range w.Bodies {
		if b.Trigger || b.Layer&mask == 0 {
			continue
		}
		c := rl.GetRayCollisionBox(rl.NewRay(ray.Position, dir), b.Bounds())
		if c.Hit && c.Distance <= best {
			best = c.Distance
			hit = c.Point
			found = true
		}
	}
	return hit, found
}
