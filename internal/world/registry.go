// Package world holds the committed pieces of the editing session.
package world

import (
	"errors"
	"fmt"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"road-editor/internal/piece"
)

var (
	ErrDuplicateObject = errors.New("object already registered")
	ErrNotFound        = errors.New("object not registered")
)

// DefaultCellSize is the bucket size of the connection point index in world units.
const DefaultCellSize = float32(2)

// Registry is the ordered set of committed pieces. Iteration order is insertion order,
// which the snap resolver relies on for deterministic tie-breaks.
type Registry struct {
	objects []*piece.Object
	seq     map[uuid.UUID]uint64
	nextSeq uint64
	index   *pointIndex
}

// New returns an empty registry whose point index uses cellSize buckets (<= 0 uses DefaultCellSize).
func New(cellSize float32) *Registry {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	return &Registry{
		seq:   make(map[uuid.UUID]uint64),
		index: newPointIndex(cellSize),
	}
}

// Add appends a committed object and marks it blocking.
func (r *Registry) Add(o *piece.Object) error {
	if _, ok := r.seq[o.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateObject, o.ID)
	}
	o.Blocking = true
	r.seq[o.ID] = r.nextSeq
	r.nextSeq++
	r.objects = append(r.objects, o)
	for _, p := range o.Points() {
		r.index.insert(p)
	}
	return nil
}

// Remove deletes the object with the given id and releases all of its links, so the
// mating points on neighbouring pieces become free again.
func (r *Registry) Remove(id uuid.UUID) (*piece.Object, error) {
	i := slices.IndexFunc(r.objects, func(o *piece.Object) bool { return o.ID == id })
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	o := r.objects[i]
	r.objects = slices.Delete(r.objects, i, i+1)
	delete(r.seq, id)
	for _, p := range o.Points() {
		r.index.remove(p)
	}
	o.Release()
	return o, nil
}

// Get returns the committed object with the given id, or nil.
func (r *Registry) Get(id uuid.UUID) *piece.Object {
	if _, ok := r.seq[id]; !ok {
		return nil
	}
	for _, o := range r.objects {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// Contains reports whether id is a committed object.
func (r *Registry) Contains(id uuid.UUID) bool {
	_, ok := r.seq[id]
	return ok
}

// Len returns the number of committed objects.
func (r *Registry) Len() int { return len(r.objects) }

// Objects returns the committed objects in insertion order.
func (r *Registry) Objects() []*piece.Object {
	return slices.Clone(r.objects)
}

// QueryNear returns every connection point within radius of pos (inclusive), ordered by
// object insertion order then point declaration order.
func (r *Registry) QueryNear(pos rl.Vector3, radius float32) []*piece.Point {
	var out []*piece.Point
	for _, p := range r.index.around(pos, radius) {
		if rl.Vector3Distance(pos, p.Position()) <= radius {
			out = append(out, p)
		}
	}
	r.SortPoints(out)
	return out
}

// SortPoints orders points by owner insertion order, then declaration order.
func (r *Registry) SortPoints(points []*piece.Point) {
	slices.SortFunc(points, func(a, b *piece.Point) int {
		sa, sb := r.seq[a.Owner().ID], r.seq[b.Owner().ID]
		if sa != sb {
			if sa < sb {
				return -1
			}
			return 1
		}
		return a.Index - b.Index
	})
}

// QueryOverlapping returns the committed objects whose bounds intersect box, in insertion order.
func (r *Registry) QueryOverlapping(box rl.BoundingBox) []*piece.Object {
	var out []*piece.Object
	for _, o := range r.objects {
		if rl.CheckCollisionBoxes(box, o.Bounds()) {
			out = append(out, o)
		}
	}
	return out
}

// Snapshot captures the observable state of every committed object in insertion order.
func (r *Registry) Snapshot() []piece.State {
	out := make([]piece.State, len(r.objects))
	for i, o := range r.objects {
		out[i] = o.State()
	}
	return out
}
