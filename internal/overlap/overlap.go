// Package overlap decides whether a candidate placement collides with committed pieces.
package overlap

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"road-editor/internal/collide"
	"road-editor/internal/piece"
	"road-editor/internal/world"
)

// Shrink bounds and default. Shrinking tolerates pieces that only touch along an edge.
const (
	DefaultShrink = float32(0.85)
	MinShrink     = float32(0.4)
	MaxShrink     = float32(1)
)

// Report is the outcome of one overlap check.
type Report struct {
	Overlapping bool
	// Hits lists the committed objects found, collider hits first, without duplicates.
	Hits []uuid.UUID
	// NoCollider is set when the collision collaborator was unavailable and only the
	// registry bounds check ran.
	NoCollider bool
}

// Validator runs the two overlap checks: the collision collaborator's box query and a
// direct bounds test against every committed object.
type Validator struct {
	reg      *world.Registry
	collider collide.Collider
	shrink   float32
	mask     collide.LayerMask
}

// NewValidator returns a validator. collider may be nil; shrink is clamped to [MinShrink, MaxShrink]
// and 0 selects DefaultShrink.
func NewValidator(reg *world.Registry, collider collide.Collider, shrink float32, mask collide.LayerMask) *Validator {
	if shrink == 0 {
		shrink = DefaultShrink
	}
	shrink = min(max(shrink, MinShrink), MaxShrink)
	if mask == 0 {
		mask = collide.LayerRoad
	}
	return &Validator{reg: reg, collider: collider, shrink: shrink, mask: mask}
}

// Shrink returns the effective shrink factor.
func (v *Validator) Shrink() float32 { return v.shrink }

// Check tests candidate against the committed pieces. Geometry owned by the candidate and
// handles that do not belong to a committed piece are ignored.
func (v *Validator) Check(candidate *piece.Object) Report {
	var rep Report
	if candidate == nil {
		return rep
	}
	rep.NoCollider = v.collider == nil
	if v.reg == nil || v.reg.Len() == 0 {
		return rep
	}
	seen := make(map[uuid.UUID]bool)
	hit := func(id uuid.UUID) {
		if id == candidate.ID || seen[id] || !v.reg.Contains(id) {
			return
		}
		seen[id] = true
		rep.Hits = append(rep.Hits, id)
	}

	if v.collider != nil {
		half := rl.Vector3Scale(candidate.HalfExtents(), v.shrink)
		for _, h := range v.collider.OverlapBox(candidate.Center(), half, candidate.Rotation(), v.mask) {
			hit(h.Owner)
		}
	}

	box := piece.Shrink(candidate.Bounds(), v.shrink)
	for _, o := range v.reg.QueryOverlapping(box) {
		hit(o.ID)
	}

	rep.Overlapping = len(rep.Hits) > 0
	return rep
}

// Overlapping is Check reduced to its verdict.
func (v *Validator) Overlapping(candidate *piece.Object) bool {
	return v.Check(candidate).Overlapping
}
