package world

import (
	"slices"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"road-editor/internal/piece"
)

type cellKey struct{ x, z int32 }

// pointIndex buckets connection points on the XZ plane. Committed pieces never move, so a
// point is inserted once on Add and removed once on Remove.
type pointIndex struct {
	cell  float32
	cells map[cellKey][]*piece.Point
}

func newPointIndex(cell float32) *pointIndex {
	return &pointIndex{cell: cell, cells: make(map[cellKey][]*piece.Point)}
}

func (ix *pointIndex) key(x, z float32) cellKey {
	return cellKey{int32(math32.Floor(x / ix.cell)), int32(math32.Floor(z / ix.cell))}
}

func (ix *pointIndex) insert(p *piece.Point) {
	pos := p.Position()
	k := ix.key(pos.X, pos.Z)
	ix.cells[k] = append(ix.cells[k], p)
}

func (ix *pointIndex) remove(p *piece.Point) {
	pos := p.Position()
	k := ix.key(pos.X, pos.Z)
	bucket := slices.DeleteFunc(ix.cells[k], func(q *piece.Point) bool { return q == p })
	if len(bucket) == 0 {
		delete(ix.cells, k)
		return
	}
	ix.cells[k] = bucket
}

// around returns the points of every bucket touched by the square of half-size radius around pos.
func (ix *pointIndex) around(pos rl.Vector3, radius float32) []*piece.Point {
	lo := ix.key(pos.X-radius, pos.Z-radius)
	hi := ix.key(pos.X+radius, pos.Z+radius)
	var out []*piece.Point
	for x := lo.x; x <= hi.x; x++ {
		for z := lo.z; z <= hi.z; z++ {
			out = append(out, ix.cells[cellKey{x, z}]...)
		}
	}
	return out
}
