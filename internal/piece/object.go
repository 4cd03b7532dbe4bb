package piece

import (
	"fmt"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Up is the world up axis; pieces rotate around it and rest on the XZ plane.
var Up = rl.NewVector3(0, 1, 0)

// Object is a placed or previewed piece instance. Its connection points and bounding
// volume are derived from the transform, so they always move rigidly with it.
type Object struct {
	ID   uuid.UUID
	Spec Spec
	// Blocking is false while the object is a preview and true once committed.
	Blocking bool

	position rl.Vector3
	rotation rl.Quaternion
	points   []*Point
}

// New instantiates spec at the origin with identity rotation. The spec is deep-copied so
// the instance never aliases catalog data.
func New(spec Spec) (*Object, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	var own Spec
	if err := copier.CopyWithOption(&own, &spec, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("copy spec %s: %w", spec.Name, err)
	}
	own = own.WithDefaults()

	o := &Object{
		ID:       uuid.New(),
		Spec:     own,
		rotation: rl.QuaternionIdentity(),
	}
	o.points = make([]*Point, len(own.Points))
	for i, ps := range own.Points {
		o.points[i] = &Point{
			Name:   ps.Name,
			Index:  i,
			owner:  o,
			offset: vec(ps.Offset),
			local:  rl.Vector3Normalize(vec(ps.Forward)),
		}
	}
	o.SetTransform(rl.Vector3Zero(), rl.QuaternionIdentity())
	return o, nil
}

func vec(a [3]float32) rl.Vector3 { return rl.NewVector3(a[0], a[1], a[2]) }

func (o *Object) Kind() Kind { return o.Spec.Kind }
func (o *Object) GridSize() float32 { return o.Spec.GridSize }
func (o *Object) RotationStep() float32 { return o.Spec.RotationStep }
func (o *Object) Position() rl.Vector3 { return o.position }
func (o *Object) Rotation() rl.Quaternion { return o.rotation }

// Points returns the connection points in declaration order.
func (o *Object) Points() []*Point {
	out := make([]*Point, len(o.points))
	copy(out, o.points)
	return out
}

// Point returns the connection point with the given name, or nil.
func (o *Object) Point(name string) *Point {
	for _, p := range o.points {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// SetTransform moves the object and every connection point with it.
func (o *Object) SetTransform(position rl.Vector3, rotation rl.Quaternion) {
	o.position = position
	o.rotation = rl.QuaternionNormalize(rotation)
	for _, p := range o.points {
		p.place(o.position, o.rotation)
	}
}

// RotateY turns the object around the up axis by degrees, keeping its position.
func (o *Object) RotateY(degrees float32) {
	q := rl.QuaternionFromAxisAngle(Up, degrees*math32.Pi/180)
	o.SetTransform(o.position, rl.QuaternionMultiply(q, o.rotation))
}

// HalfExtents returns the local half extents of the collision box.
func (o *Object) HalfExtents() rl.Vector3 {
	return rl.Vector3Scale(vec(o.Spec.Size), 0.5)
}

// Center returns the world center of the collision box.
func (o *Object) Center() rl.Vector3 {
	return rl.Vector3Add(o.position, rl.Vector3RotateByQuaternion(vec(o.Spec.Center), o.rotation))
}

// Bounds returns the world axis-aligned box enclosing the rotated collision box.
func (o *Object) Bounds() rl.BoundingBox {
	return OrientedBounds(o.Center(), o.HalfExtents(), o.rotation)
}

// ClosestPoint returns the connection point nearest to pos within maxDist, or nil.
func (o *Object) ClosestPoint(pos rl.Vector3, maxDist float32) *Point {
	var best *Point
	bestDist := maxDist
	for _, p := range o.points {
		if d := rl.Vector3Distance(pos, p.pos); d < bestDist {
			bestDist = d
			best = p
		}
	}
	return best
}

// Release disconnects every connection point of the object from its mates.
func (o *Object) Release() {
	for _, p := range o.points {
		p.Release()
	}
}

func (o *Object) String() string {
	return fmt.Sprintf("%s %s (%.2f, %.2f, %.2f)", o.Spec.Name, o.ID.String()[:8], o.position.X, o.position.Y, o.position.Z)
}

// LinkState is the observable link state of one connection point.
type LinkState struct {
	Point       string
	Occupied    bool
	LinkedOwner uuid.UUID
	LinkedPoint string
}

// State is a comparable snapshot of an object.
type State struct {
	ID       uuid.UUID
	Name     string
	Position rl.Vector3
	Rotation rl.Quaternion
	Blocking bool
	Links    []LinkState
}

// State captures the object's transform and link state.
func (o *Object) State() State {
	s := State{
		ID:       o.ID,
		Name:     o.Spec.Name,
		Position: o.position,
		Rotation: o.rotation,
		Blocking: o.Blocking,
		Links:    make([]LinkState, len(o.points)),
	}
	for i, p := range o.points {
		ls := LinkState{Point: p.Name, Occupied: p.Occupied()}
		if p.linked != nil {
			ls.LinkedOwner = p.linked.owner.ID
			ls.LinkedPoint = p.linked.Name
		}
		s.Links[i] = ls
	}
	return s
}
