package overlap

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"road-editor/internal/collide"
	"road-editor/internal/piece"
	"road-editor/internal/world"
)

type fakeCollider struct {
	handles []collide.Handle
	calls   int
	mask    collide.LayerMask
	half    rl.Vector3
}

func (f *fakeCollider) OverlapBox(center, half rl.Vector3, orientation rl.Quaternion, mask collide.LayerMask) []collide.Handle {
	f.calls++
	f.mask = mask
	f.half = half
	return f.handles
}

func tile(t *testing.T, x, z float32) *piece.Object {
	t.Helper()
	o, err := piece.New(piece.Spec{Name: "tile", Size: [3]float32{1, 0.1, 1}})
	require.NoError(t, err)
	o.SetTransform(rl.NewVector3(x, 0, z), rl.QuaternionIdentity())
	return o
}

func TestTouchingEdgesDoNotOverlap(t *testing.T) {
	t.Parallel()
	reg := world.New(0)
	require.NoError(t, reg.Add(tile(t, 0, 0)))

	v := NewValidator(reg, nil, 0, 0)
	rep := v.Check(tile(t, 0, 1))
	assert.False(t, rep.Overlapping)
	assert.True(t, rep.NoCollider)

	assert.True(t, v.Overlapping(tile(t, 0, 0.5)))
}

func TestEmptyRegistryNeverOverlaps(t *testing.T) {
	t.Parallel()
	f := &fakeCollider{handles: []collide.Handle{{Owner: uuid.New()}}}
	v := NewValidator(world.New(0), f, 0, 0)
	assert.False(t, v.Overlapping(tile(t, 0, 0)))
	assert.Zero(t, f.calls)
	assert.False(t, v.Check(tile(t, 0, 0)).NoCollider)
}

func TestMissingColliderReportedOnEmptyRegistry(t *testing.T) {
	t.Parallel()
	rep := NewValidator(world.New(0), nil, 0, 0).Check(tile(t, 0, 0))
	assert.False(t, rep.Overlapping)
	assert.True(t, rep.NoCollider)
}

func TestColliderHitsMustBeCommittedAndForeign(t *testing.T) {
	t.Parallel()
	reg := world.New(0)
	committed := tile(t, 10, 10)
	require.NoError(t, reg.Add(committed))
	candidate := tile(t, 0, 0)

	f := &fakeCollider{handles: []collide.Handle{
		{Owner: candidate.ID},
		{Owner: uuid.New()},
	}}
	v := NewValidator(reg, f, 0.5, 0)
	assert.False(t, v.Overlapping(candidate))
	assert.Equal(t, collide.LayerRoad, f.mask)
	assert.InDelta(t, 0.25, f.half.X, 1e-6)

	f.handles = append(f.handles, collide.Handle{Owner: committed.ID, Layer: collide.LayerRoad})
	rep := v.Check(candidate)
	assert.True(t, rep.Overlapping)
	assert.Equal(t, []uuid.UUID{committed.ID}, rep.Hits)
}

func TestBoundsCheckCatchesColliderMiss(t *testing.T) {
	t.Parallel()
	reg := world.New(0)
	committed := tile(t, 0, 0)
	require.NoError(t, reg.Add(committed))

	v := NewValidator(reg, &fakeCollider{}, 0, 0)
	rep := v.Check(tile(t, 0.3, 0))
	assert.True(t, rep.Overlapping)
	assert.False(t, rep.NoCollider)
	assert.Equal(t, []uuid.UUID{committed.ID}, rep.Hits)
}

func TestShrinkIsClamped(t *testing.T) {
	t.Parallel()
	assert.Equal(t, DefaultShrink, NewValidator(nil, nil, 0, 0).Shrink())
	assert.Equal(t, MinShrink, NewValidator(nil, nil, 0.1, 0).Shrink())
	assert.Equal(t, MaxShrink, NewValidator(nil, nil, 3, 0).Shrink())
}
