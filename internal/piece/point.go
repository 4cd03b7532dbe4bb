package piece

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ErrAlreadyLinked = errors.New("connection point already linked")
	ErrSelfLink      = errors.New("cannot link a piece to itself")
)

// Point is a connection point: a position and forward direction attached to a piece.
// Occupancy is derived from the link, so a point is occupied exactly when it is linked,
// and links are always set and cleared on both ends together.
type Point struct {
	Name  string
	Index int

	owner   *Object
	offset  rl.Vector3 // piece-local
	local   rl.Vector3 // piece-local forward, unit length
	pos     rl.Vector3
	forward rl.Vector3
	linked  *Point
}

// Owner returns the piece the point belongs to.
func (p *Point) Owner() *Object { return p.owner }

// Position returns the world position.
func (p *Point) Position() rl.Vector3 { return p.pos }

// Forward returns the world forward direction (unit length).
func (p *Point) Forward() rl.Vector3 { return p.forward }

// Occupied reports whether the point is connected to another piece.
func (p *Point) Occupied() bool { return p.linked != nil }

// LinkedTo returns the mating point, or nil.
func (p *Point) LinkedTo() *Point { return p.linked }

// PoseAt returns where the point would be (position, forward) if its piece had the given transform.
func (p *Point) PoseAt(position rl.Vector3, rotation rl.Quaternion) (rl.Vector3, rl.Vector3) {
	pos := rl.Vector3Add(position, rl.Vector3RotateByQuaternion(p.offset, rotation))
	fwd := rl.Vector3Normalize(rl.Vector3RotateByQuaternion(p.local, rotation))
	return pos, fwd
}

func (p *Point) place(position rl.Vector3, rotation rl.Quaternion) {
	p.pos, p.forward = p.PoseAt(position, rotation)
}

// Link connects a and b. Both must be free and belong to different pieces.
func Link(a, b *Point) error {
	if a.owner == b.owner {
		return ErrSelfLink
	}
	if a.linked != nil || b.linked != nil {
		return ErrAlreadyLinked
	}
	a.linked = b
	b.linked = a
	return nil
}

// Release disconnects the point and its mate. Releasing a free point is a no-op.
func (p *Point) Release() {
	if p.linked == nil {
		return
	}
	other := p.linked
	p.linked = nil
	if other.linked == p {
		other.linked = nil
	}
}
