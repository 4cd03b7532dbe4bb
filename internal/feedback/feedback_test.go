package feedback

import (
	"errors"
	"image/color"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMaterials struct {
	perOwner   int
	next       Material
	live       map[Material]Visual
	duplicates int
	restored   []uuid.UUID
	err        error
}

func newFakeMaterials(perOwner int) *fakeMaterials {
	return &fakeMaterials{perOwner: perOwner, live: make(map[Material]Visual)}
}

func (f *fakeMaterials) Duplicate(owner uuid.UUID) ([]Material, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]Material, f.perOwner)
	for i := range out {
		f.next++
		out[i] = f.next
		f.live[f.next] = Normal()
		f.duplicates++
	}
	return out, nil
}

func (f *fakeMaterials) Paint(m Material, v Visual) { f.live[m] = v }
func (f *fakeMaterials) Restore(owner uuid.UUID) { f.restored = append(f.restored, owner) }
func (f *fakeMaterials) Release(m Material) { delete(f.live, m) }

func TestSignal(t *testing.T) {
	t.Parallel()
	p := DefaultPalette()

	v := p.Signal(false)
	assert.True(t, v.IsPreview())
	assert.Equal(t, color.RGBA{R: 51, G: 255, B: 51, A: 153}, v.Color)

	v = p.Signal(true)
	assert.Equal(t, color.RGBA{R: 255, G: 51, B: 51, A: 153}, v.Color)

	assert.False(t, Normal().IsPreview())
	assert.Equal(t, "normal", Normal().String())
}

func TestTrackerDuplicatesOnce(t *testing.T) {
	t.Parallel()
	mats := newFakeMaterials(3)
	tr := NewTracker(mats, DefaultPalette())
	owner := uuid.New()

	require.NoError(t, tr.Begin(owner))
	assert.Equal(t, 3, tr.Owned())
	for i := 0; i < 10; i++ {
		tr.Apply(true)
		tr.Apply(false)
	}
	assert.Equal(t, 3, mats.duplicates)
	for _, v := range mats.live {
		assert.Equal(t, DefaultPalette().Signal(false), v)
	}
}

func TestTrackerCommitRestoresAndReleases(t *testing.T) {
	t.Parallel()
	mats := newFakeMaterials(2)
	tr := NewTracker(mats, DefaultPalette())
	owner := uuid.New()
	require.NoError(t, tr.Begin(owner))

	tr.Commit()
	assert.Empty(t, mats.live)
	assert.Equal(t, []uuid.UUID{owner}, mats.restored)
	assert.Equal(t, Normal(), tr.Visual())
	assert.Zero(t, tr.Owned())

	tr.Commit()
	assert.Len(t, mats.restored, 1)
}

func TestTrackerDiscardReleasesWithoutRestore(t *testing.T) {
	t.Parallel()
	mats := newFakeMaterials(2)
	tr := NewTracker(mats, DefaultPalette())
	require.NoError(t, tr.Begin(uuid.New()))

	tr.Discard()
	assert.Empty(t, mats.live)
	assert.Empty(t, mats.restored)
}

func TestTrackerBeginFailure(t *testing.T) {
	t.Parallel()
	mats := newFakeMaterials(1)
	mats.err = errors.New("no renderer")
	tr := NewTracker(mats, DefaultPalette())
	assert.Error(t, tr.Begin(uuid.New()))
	assert.Zero(t, tr.Owned())
}

func TestTrackerWithoutMaterials(t *testing.T) {
	t.Parallel()
	tr := NewTracker(nil, DefaultPalette())
	require.NoError(t, tr.Begin(uuid.New()))
	assert.True(t, tr.Apply(true).IsPreview())
	tr.Discard()
	assert.False(t, tr.Visual().IsPreview())
}
