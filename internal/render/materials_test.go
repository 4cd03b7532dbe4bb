package render

import (
	"errors"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"road-editor/internal/feedback"
)

// hostMaterials backs duplicates with Go memory so no GL context is needed.
func hostMaterials(unloaded *int) *Materials {
	load := func() (rl.Material, error) {
		return rl.Material{Maps: &rl.MaterialMap{Color: rl.White}}, nil
	}
	return newMaterials(load, func(rl.Material) { *unloaded++ })
}

func TestMaterialsDuplicatePaintRelease(t *testing.T) {
	t.Parallel()
	var unloaded int
	m := hostMaterials(&unloaded)
	owner := uuid.New()

	ids, err := m.Duplicate(owner)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, 1, m.Live())

	v := feedback.DefaultPalette().Signal(true)
	m.Paint(ids[0], v)
	mat, ok := m.override(owner)
	require.True(t, ok)
	assert.Equal(t, v.Color, tint(mat))

	m.Release(ids[0])
	assert.Zero(t, m.Live())
	assert.Equal(t, 1, unloaded)
	_, ok = m.override(owner)
	assert.False(t, ok)

	m.Release(ids[0])
	assert.Equal(t, 1, unloaded)
}

func TestMaterialsRestoreDropsOverride(t *testing.T) {
	t.Parallel()
	var unloaded int
	m := hostMaterials(&unloaded)
	owner := uuid.New()

	ids, err := m.Duplicate(owner)
	require.NoError(t, err)
	m.Restore(owner)
	_, ok := m.override(owner)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Live())

	m.Release(ids[0])
	assert.Zero(t, m.Live())
}

func TestMaterialsLoadFailure(t *testing.T) {
	t.Parallel()
	m := newMaterials(func() (rl.Material, error) { return rl.Material{}, errors.New("no context") }, func(rl.Material) {})
	_, err := m.Duplicate(uuid.New())
	assert.Error(t, err)
	assert.Zero(t, m.Live())
}

func TestTrackerOverRenderMaterials(t *testing.T) {
	t.Parallel()
	var unloaded int
	m := hostMaterials(&unloaded)
	tr := feedback.NewTracker(m, feedback.DefaultPalette())
	owner := uuid.New()

	require.NoError(t, tr.Begin(owner))
	tr.Apply(true)
	mat, ok := m.override(owner)
	require.True(t, ok)
	assert.Equal(t, feedback.DefaultPalette().Signal(true).Color, tint(mat))

	tr.Commit()
	assert.Zero(t, m.Live())
	assert.Equal(t, 1, unloaded)
}
