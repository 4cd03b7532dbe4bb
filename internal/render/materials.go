package render

import (
	"fmt"
	"image/color"
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"road-editor/internal/feedback"
)

// Materials hands out per-preview material duplicates. A piece with live duplicates is drawn
// with them; once restored it goes back to the shared lit material.
type Materials struct {
	load   func() (rl.Material, error)
	unload func(rl.Material)

	next    feedback.Material
	live    map[feedback.Material]rl.Material
	byOwner map[uuid.UUID][]feedback.Material
}

var _ feedback.Materials = (*Materials)(nil)

func newMaterials(load func() (rl.Material, error), unload func(rl.Material)) *Materials {
	return &Materials{
		load:    load,
		unload:  unload,
		live:    make(map[feedback.Material]rl.Material),
		byOwner: make(map[uuid.UUID][]feedback.Material),
	}
}

// Duplicate creates one material for owner.
func (m *Materials) Duplicate(owner uuid.UUID) ([]feedback.Material, error) {
	mat, err := m.load()
	if err != nil {
		return nil, fmt.Errorf("load material: %w", err)
	}
	m.next++
	id := m.next
	m.live[id] = mat
	m.byOwner[owner] = append(m.byOwner[owner], id)
	return []feedback.Material{id}, nil
}

// Paint tints a duplicate with the visual's color.
func (m *Materials) Paint(id feedback.Material, v feedback.Visual) {
	mat, ok := m.live[id]
	if !ok {
		return
	}
	if albedo := mat.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = v.Color
	}
}

// Restore makes owner draw with the shared material again.
func (m *Materials) Restore(owner uuid.UUID) {
	delete(m.byOwner, owner)
}

// Release frees a duplicate.
func (m *Materials) Release(id feedback.Material) {
	mat, ok := m.live[id]
	if !ok {
		return
	}
	delete(m.live, id)
	for owner, ids := range m.byOwner {
		if i := slices.Index(ids, id); i >= 0 {
			ids = slices.Delete(ids, i, i+1)
			if len(ids) == 0 {
				delete(m.byOwner, owner)
			} else {
				m.byOwner[owner] = ids
			}
		}
	}
	m.unload(mat)
}

// Live returns the number of duplicates not yet released.
func (m *Materials) Live() int { return len(m.live) }

// override returns the duplicate owner is drawn with, if any.
func (m *Materials) override(owner uuid.UUID) (rl.Material, bool) {
	ids := m.byOwner[owner]
	if len(ids) == 0 {
		return rl.Material{}, false
	}
	return m.live[ids[0]], true
}

// tint returns the albedo color of mat.
func tint(mat rl.Material) color.RGBA {
	if albedo := mat.GetMap(rl.MapAlbedo); albedo != nil {
		return albedo.Color
	}
	return rl.White
}
