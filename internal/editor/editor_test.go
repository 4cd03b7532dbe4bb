package editor

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"road-editor/internal/engineconfig"
	"road-editor/internal/feedback"
	"road-editor/internal/logger"
	"road-editor/internal/piece"
	"road-editor/internal/placement"
)

type countingMaterials struct {
	next feedback.Material
	live map[feedback.Material]bool
}

func (m *countingMaterials) Duplicate(uuid.UUID) ([]feedback.Material, error) {
	m.next++
	m.live[m.next] = true
	return []feedback.Material{m.next}, nil
}

func (m *countingMaterials) Paint(feedback.Material, feedback.Visual) {}
func (m *countingMaterials) Restore(uuid.UUID) {}
func (m *countingMaterials) Release(id feedback.Material) { delete(m.live, id) }

type harness struct {
	ed   *Editor
	mats *countingMaterials
	log  *logger.Logger
	aim  rl.Vector3
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cat, err := piece.DefaultCatalog()
	require.NoError(t, err)
	h := &harness{
		mats: &countingMaterials{live: make(map[feedback.Material]bool)},
		log:  logger.New(""),
	}
	h.ed, err = New(Options{
		Prefs:     engineconfig.Default(),
		Catalog:   cat,
		Log:       h.log,
		Materials: h.mats,
		Pointer:   h.ray,
	})
	require.NoError(t, err)
	return h
}

// ray looks straight down onto the aim point.
func (h *harness) ray() rl.Ray {
	return rl.NewRay(rl.NewVector3(h.aim.X, 10, h.aim.Z), rl.NewVector3(0, -1, 0))
}

func (h *harness) frame(released bool) placement.Effects {
	return h.ed.Step(placement.Input{Ray: h.ray(), HasRay: true, Released: released})
}

func TestPlaceAndSnapThroughPhysics(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	require.NoError(t, h.ed.Place("straight"))
	h.frame(false)
	fx := h.frame(true)
	require.NoError(t, fx.Err)
	a := fx.Committed
	require.NotNil(t, a)

	h.aim = rl.NewVector3(0.2, 0, 0.9)
	require.NoError(t, h.ed.Place("straight"))
	h.frame(false)
	fx = h.frame(true)
	require.NoError(t, fx.Err)
	b := fx.Committed
	require.NotNil(t, b)

	assert.Same(t, b.Point("south"), a.Point("north").LinkedTo())
	assert.InDelta(t, 1, b.Position().Z, 1e-4)
	assert.Empty(t, h.mats.live)

	lines := h.ed.Describe()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], a.ID.String())
	assert.Contains(t, lines[0], "links 1/2")
	assert.Contains(t, h.ed.debug.Status()[0], "pieces: 2")

	require.NoError(t, h.ed.Remove(b.ID))
	assert.False(t, a.Point("north").Occupied())
	assert.Nil(t, h.ed.physics.Body(b.ID))
}

func TestOverlappingPlacementIsRejected(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	require.NoError(t, h.ed.Place("intersection"))
	h.frame(false)
	require.NotNil(t, h.frame(true).Committed)

	require.NoError(t, h.ed.Place("corner"))
	fx := h.frame(false)
	assert.True(t, fx.Update.Overlapping)
	assert.Contains(t, h.ed.debug.Status()[1], "blocked")
	assert.ErrorIs(t, h.ed.Finish(), placement.ErrOverlapRejected)
	assert.Equal(t, placement.Idle, h.ed.Session().State())
	assert.Len(t, h.ed.Describe(), 1)
	assert.Empty(t, h.mats.live)
}

func TestPlaceReplacesActivePreview(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	require.NoError(t, h.ed.Place("straight"))
	require.NoError(t, h.ed.Place("corner"))
	assert.Len(t, h.mats.live, 1)
	assert.Equal(t, "corner", h.ed.Session().Preview().Spec.Name)

	assert.ErrorIs(t, h.ed.Place("roundabout"), piece.ErrUnknownPiece)
	require.NoError(t, h.ed.Cancel())
	assert.Empty(t, h.mats.live)
	assert.ErrorIs(t, h.ed.Finish(), placement.ErrInvalidSessionState)
}

func TestToggles(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.ed.SetGridVisible(false)
	h.ed.SetShowFPS(true)
	h.ed.SetShowGizmos(false)
	p := h.ed.Prefs()
	assert.False(t, p.GridVisible)
	assert.True(t, p.ShowFPS)
	assert.False(t, p.ShowGizmos)
	assert.False(t, h.ed.scene.GridVisible)
	assert.Equal(t, []string{"straight", "corner", "intersection"}, h.ed.Catalog())
}
