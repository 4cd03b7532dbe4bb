package piece

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

func assertVec(t *testing.T, want, got rl.Vector3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
	assert.InDelta(t, want.Z, got.Z, eps, "z")
}

func straightSpec() Spec {
	return Spec{
		Name: "straight",
		Kind: KindStraight,
		Size: [3]float32{1, 0.1, 1},
		Points: []PointSpec{
			{Name: "north", Offset: [3]float32{0, 0, 0.5}, Forward: [3]float32{0, 0, 1}},
			{Name: "south", Offset: [3]float32{0, 0, -0.5}, Forward: [3]float32{0, 0, -1}},
		},
	}
}

func TestSpecValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Spec)
		ok     bool
	}{
		{"valid", func(*Spec) {}, true},
		{"no points is fine", func(s *Spec) { s.Points = nil }, true},
		{"missing name", func(s *Spec) { s.Name = "" }, false},
		{"no geometry", func(s *Spec) { s.Size = [3]float32{} }, false},
		{"flat geometry", func(s *Spec) { s.Size[1] = 0 }, false},
		{"unknown kind", func(s *Spec) { s.Kind = "roundabout" }, false},
		{"plane mesh", func(s *Spec) { s.Mesh = "plane" }, true},
		{"unknown mesh", func(s *Spec) { s.Mesh = "teapot" }, false},
		{"negative grid", func(s *Spec) { s.GridSize = -1 }, false},
		{"zero forward", func(s *Spec) { s.Points[0].Forward = [3]float32{} }, false},
		{"duplicate point", func(s *Spec) { s.Points[1].Name = "north" }, false},
		{"unnamed point", func(s *Spec) { s.Points[0].Name = "" }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := straightSpec()
			tc.mutate(&s)
			err := s.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidSpec)
			}
		})
	}
}

func TestNewAppliesDefaultsAndCopiesSpec(t *testing.T) {
	t.Parallel()
	spec := straightSpec()
	o, err := New(spec)
	require.NoError(t, err)

	assert.Equal(t, DefaultGridSize, o.GridSize())
	assert.Equal(t, DefaultRotationStep, o.RotationStep())
	assert.False(t, o.Blocking)

	spec.Points[0].Offset = [3]float32{9, 9, 9}
	assert.Equal(t, [3]float32{0, 0, 0.5}, o.Spec.Points[0].Offset)
	assertVec(t, rl.NewVector3(0, 0, 0.5), o.Point("north").Position())
}

func TestObjectTransformMovesPoints(t *testing.T) {
	t.Parallel()
	o, err := New(straightSpec())
	require.NoError(t, err)

	o.SetTransform(rl.NewVector3(2, 0, 3), rl.QuaternionIdentity())
	assertVec(t, rl.NewVector3(2, 0, 3.5), o.Point("north").Position())
	assertVec(t, rl.NewVector3(2, 0, 2.5), o.Point("south").Position())

	o.RotateY(90)
	assertVec(t, rl.NewVector3(2.5, 0, 3), o.Point("north").Position())
	assertVec(t, rl.NewVector3(1, 0, 0), o.Point("north").Forward())
	assertVec(t, rl.NewVector3(2, 0, 3), o.Position())
}

func TestObjectBoundsFollowRotation(t *testing.T) {
	t.Parallel()
	spec := straightSpec()
	spec.Size = [3]float32{1, 0.1, 2}
	o, err := New(spec)
	require.NoError(t, err)

	b := o.Bounds()
	assertVec(t, rl.NewVector3(-0.5, -0.05, -1), b.Min)
	assertVec(t, rl.NewVector3(0.5, 0.05, 1), b.Max)

	o.RotateY(90)
	b = o.Bounds()
	assertVec(t, rl.NewVector3(-1, -0.05, -0.5), b.Min)
	assertVec(t, rl.NewVector3(1, 0.05, 0.5), b.Max)
}

func TestShrink(t *testing.T) {
	t.Parallel()
	b := Shrink(rl.NewBoundingBox(rl.NewVector3(0, 0, 0), rl.NewVector3(2, 2, 2)), 0.5)
	assertVec(t, rl.NewVector3(0.5, 0.5, 0.5), b.Min)
	assertVec(t, rl.NewVector3(1.5, 1.5, 1.5), b.Max)
}

func TestLinkIsMutual(t *testing.T) {
	t.Parallel()
	a, err := New(straightSpec())
	require.NoError(t, err)
	b, err := New(straightSpec())
	require.NoError(t, err)

	pa, pb := a.Point("north"), b.Point("south")
	require.NoError(t, Link(pa, pb))
	assert.True(t, pa.Occupied())
	assert.True(t, pb.Occupied())
	assert.Same(t, pb, pa.LinkedTo())
	assert.Same(t, pa, pb.LinkedTo())

	assert.ErrorIs(t, Link(pa, b.Point("north")), ErrAlreadyLinked)
	assert.ErrorIs(t, Link(a.Point("south"), a.Point("north")), ErrSelfLink)
	assert.ErrorIs(t, Link(b.Point("north"), b.Point("north")), ErrSelfLink)
	assert.False(t, b.Point("north").Occupied())

	// Same-owner pairs are refused even when both points are free.
	c, err := New(straightSpec())
	require.NoError(t, err)
	assert.ErrorIs(t, Link(c.Point("north"), c.Point("south")), ErrSelfLink)
	assert.False(t, c.Point("north").Occupied())
	assert.False(t, c.Point("south").Occupied())

	pb.Release()
	assert.False(t, pa.Occupied())
	assert.False(t, pb.Occupied())
	assert.Nil(t, pa.LinkedTo())
}

func TestObjectReleaseClearsBothEnds(t *testing.T) {
	t.Parallel()
	a, _ := New(straightSpec())
	b, _ := New(straightSpec())
	c, _ := New(straightSpec())
	require.NoError(t, Link(a.Point("north"), b.Point("south")))
	require.NoError(t, Link(a.Point("south"), c.Point("north")))

	a.Release()
	assert.False(t, b.Point("south").Occupied())
	assert.False(t, c.Point("north").Occupied())
	for _, ls := range a.State().Links {
		assert.False(t, ls.Occupied, ls.Point)
	}
}

func TestClosestPoint(t *testing.T) {
	t.Parallel()
	o, _ := New(straightSpec())
	assert.Equal(t, "north", o.ClosestPoint(rl.NewVector3(0, 0, 0.8), 1).Name)
	assert.Nil(t, o.ClosestPoint(rl.NewVector3(0, 0, 3), 1))
}
