package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"road-editor/internal/collide"
	"road-editor/internal/piece"
)

// Body is the collision volume of one piece: an oriented box on a layer.
// Trigger bodies (previews) are reported by nothing and block nothing.
type Body struct {
	Owner       uuid.UUID
	Center      rl.Vector3
	HalfExtents rl.Vector3
	Rotation    rl.Quaternion
	Layer       collide.LayerMask
	Trigger     bool
}

// NewBody returns a body mirroring o on layer.
func NewBody(o *piece.Object, layer collide.LayerMask) *Body {
	b := &Body{Owner: o.ID}
	b.update(o, layer)
	return b
}

func (b *Body) update(o *piece.Object, layer collide.LayerMask) {
	b.Center = o.Center()
	b.HalfExtents = o.HalfExtents()
	b.Rotation = o.Rotation()
	b.Layer = layer
	b.Trigger = !o.Blocking
}

// Bounds returns the world AABB of the body.
func (b *Body) Bounds() rl.BoundingBox {
	return piece.OrientedBounds(b.Center, b.HalfExtents, b.Rotation)
}
