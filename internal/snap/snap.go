// Package snap resolves where a preview piece should sit: on the nearest compatible
// connection point of a committed piece, or on the placement grid.
package snap

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"road-editor/internal/piece"
	"road-editor/internal/world"
)

const (
	DefaultRadius          = float32(1.5)
	DefaultFacingThreshold = float32(0.9)
	// CoincidentDistance is how close a second point pair must be after alignment to be linked too.
	CoincidentDistance = float32(1e-3)
)

// Config holds the tunable snap constants.
type Config struct {
	// Radius is the exclusive maximum distance between two candidate points.
	Radius float32
	// FacingThreshold rejects pairs whose forward dot product is at or above it.
	FacingThreshold float32
}

// DefaultConfig returns the editor's stock snap tuning.
func DefaultConfig() Config {
	return Config{Radius: DefaultRadius, FacingThreshold: DefaultFacingThreshold}
}

// Match is a mated pair of connection points.
type Match struct {
	Preview  *piece.Point
	Target   *piece.Point
	Distance float32
}

// Result is the transform the preview should take this tick. Links is empty on grid
// fallback; otherwise Links[0] is the selected pair and any further entries are pairs that
// coincide once the preview is aligned.
type Result struct {
	Position rl.Vector3
	Rotation rl.Quaternion
	Links    []Match
}

// Snapped reports whether the result locked onto a connection point.
func (r Result) Snapped() bool { return len(r.Links) > 0 }

// Resolver computes snap targets against the committed pieces of a registry.
type Resolver struct {
	cfg Config
	reg *world.Registry
}

// NewResolver returns a resolver over reg. A non-positive radius takes DefaultRadius; the
// facing threshold is used as given, so callers wanting the stock value pass DefaultConfig.
func NewResolver(reg *world.Registry, cfg Config) *Resolver {
	if cfg.Radius <= 0 {
		cfg.Radius = DefaultRadius
	}
	return &Resolver{cfg: cfg, reg: reg}
}

// Config returns the resolver's tuning.
func (r *Resolver) Config() Config { return r.cfg }

// Quantize rounds the horizontal coordinates of pos to the nearest multiple of quantum and
// puts it on the ground (Y=0). A non-positive quantum leaves X and Z untouched.
func Quantize(pos rl.Vector3, quantum float32) rl.Vector3 {
	if quantum <= 0 {
		return rl.NewVector3(pos.X, 0, pos.Z)
	}
	return rl.NewVector3(math32.Round(pos.X/quantum)*quantum, 0, math32.Round(pos.Z/quantum)*quantum)
}

// Mates reports whether two forward directions are opposed enough to connect.
func (r *Resolver) Mates(a, b rl.Vector3) bool {
	return rl.Vector3DotProduct(a, b) < r.cfg.FacingThreshold
}

type pose struct {
	pos, fwd rl.Vector3
}

// Resolve places preview for a ground hit. With suppress set (first tick after spawn) the
// grid position is returned without looking for connection points.
//
// Candidate pairs are every free point of a committed piece against every preview point,
// taken at the grid position with the preview's current rotation. The closest pair under
// the radius whose forwards are opposed wins; equal distances keep the first pair in
// registry insertion order, then target point order, then preview point order.
func (r *Resolver) Resolve(preview *piece.Object, hit rl.Vector3, suppress bool) Result {
	grid := Quantize(hit, preview.GridSize())
	res := Result{Position: grid, Rotation: preview.Rotation()}
	if suppress || r.reg == nil {
		return res
	}

	points := preview.Points()
	poses := make([]pose, len(points))
	for i, p := range points {
		poses[i].pos, poses[i].fwd = p.PoseAt(grid, res.Rotation)
	}

	var best Match
	bestIdx := -1
	bestDist := r.cfg.Radius
	for _, target := range r.candidates(preview, poses) {
		for i, pp := range points {
			d := rl.Vector3Distance(target.Position(), poses[i].pos)
			if d >= bestDist {
				continue
			}
			if !r.Mates(poses[i].fwd, target.Forward()) {
				continue
			}
			bestDist = d
			bestIdx = i
			best = Match{Preview: pp, Target: target, Distance: d}
		}
	}
	if bestIdx < 0 {
		return res
	}

	q := AlignRotation(poses[bestIdx].fwd, rl.Vector3Negate(best.Target.Forward()))
	offset := rl.Vector3RotateByQuaternion(rl.Vector3Subtract(poses[bestIdx].pos, grid), q)
	res.Rotation = rl.QuaternionNormalize(rl.QuaternionMultiply(q, res.Rotation))
	res.Position = rl.Vector3Subtract(best.Target.Position(), offset)
	res.Links = append(res.Links, best)
	res.Links = append(res.Links, r.coincident(preview, res, best)...)
	return res
}

// candidates returns the free points of committed pieces within the radius of any preview
// point, in registry order.
func (r *Resolver) candidates(preview *piece.Object, poses []pose) []*piece.Point {
	seen := make(map[*piece.Point]bool)
	var out []*piece.Point
	for _, ps := range poses {
		for _, p := range r.reg.QueryNear(ps.pos, r.cfg.Radius) {
			if seen[p] || p.Occupied() || p.Owner() == preview {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	r.reg.SortPoints(out)
	return out
}

// Settle keeps the preview where it is and links every preview point that already rests
// on a free, opposed point of a committed piece. It is used after a rotation, when the
// pointer has not moved but the preview may still sit on a mate.
func (r *Resolver) Settle(preview *piece.Object) Result {
	res := Result{Position: preview.Position(), Rotation: preview.Rotation()}
	if r.reg == nil {
		return res
	}
	res.Links = r.touching(preview, res, nil, map[*piece.Point]bool{})
	return res
}

// coincident finds other preview points that land on a free, opposed point once aligned.
func (r *Resolver) coincident(preview *piece.Object, res Result, primary Match) []Match {
	return r.touching(preview, res, primary.Preview, map[*piece.Point]bool{primary.Target: true})
}

func (r *Resolver) touching(preview *piece.Object, res Result, skip *piece.Point, used map[*piece.Point]bool) []Match {
	var out []Match
	for _, pp := range preview.Points() {
		if pp == skip {
			continue
		}
		pos, fwd := pp.PoseAt(res.Position, res.Rotation)
		for _, target := range r.reg.QueryNear(pos, CoincidentDistance) {
			if used[target] || target.Occupied() || target.Owner() == preview || !r.Mates(fwd, target.Forward()) {
				continue
			}
			used[target] = true
			out = append(out, Match{Preview: pp, Target: target, Distance: rl.Vector3Distance(pos, target.Position())})
			break
		}
	}
	return out
}

// AlignRotation returns the rotation taking direction from onto direction to. Exactly
// opposed directions turn half way around the up axis (or X when from is vertical).
func AlignRotation(from, to rl.Vector3) rl.Quaternion {
	from = rl.Vector3Normalize(from)
	to = rl.Vector3Normalize(to)
	if rl.Vector3DotProduct(from, to) > -1+1e-6 {
		return rl.QuaternionFromVector3ToVector3(from, to)
	}
	axis := piece.Up
	if math32.Abs(rl.Vector3DotProduct(from, axis)) > 0.999 {
		axis = rl.NewVector3(1, 0, 0)
	}
	axis = rl.Vector3Normalize(rl.Vector3Subtract(axis, rl.Vector3Scale(from, rl.Vector3DotProduct(axis, from))))
	return rl.QuaternionFromAxisAngle(axis, math32.Pi)
}
