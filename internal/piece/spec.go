package piece

import (
	"errors"
	"fmt"
)

// Kind is the road category of a piece.
type Kind string

const (
	KindStraight     Kind = "straight"
	KindCorner       Kind = "corner"
	KindIntersection Kind = "intersection"
)

// Defaults applied to specs that leave the field unset.
const (
	DefaultGridSize     = float32(1)
	DefaultRotationStep = float32(90)
	DefaultMesh         = "cube"
	DefaultColor        = "#808080"
)

// ErrInvalidSpec is returned for specs without geometry or with malformed connection data.
var ErrInvalidSpec = errors.New("invalid piece spec")

// PointSpec declares one connection point in piece-local space.
type PointSpec struct {
	Name    string     `yaml:"name"`
	Offset  [3]float32 `yaml:"offset"`
	Forward [3]float32 `yaml:"forward"`
}

// Spec is the authoring-time definition of a piece (one entry of a catalog file).
// Size is the full extent of the collision box in local space and Center its offset from
// the piece origin. A piece with any non-positive extent has no geometry and cannot be placed.
type Spec struct {
	Name         string      `yaml:"name"`
	Kind         Kind        `yaml:"kind"`
	Lanes        int         `yaml:"lanes,omitempty"`
	GridSize     float32     `yaml:"grid_size,omitempty"`
	RotationStep float32     `yaml:"rotation_step,omitempty"`
	Size         [3]float32  `yaml:"size"`
	Center       [3]float32  `yaml:"center,omitempty"`
	Mesh         string      `yaml:"mesh,omitempty"`
	Color        string      `yaml:"color,omitempty"`
	Points       []PointSpec `yaml:"points,omitempty"`
}

// WithDefaults returns a copy of s with unset optional fields filled in.
func (s Spec) WithDefaults() Spec {
	if s.Kind == "" {
		s.Kind = KindStraight
	}
	if s.Lanes == 0 {
		s.Lanes = 1
	}
	if s.GridSize == 0 {
		s.GridSize = DefaultGridSize
	}
	if s.RotationStep == 0 {
		s.RotationStep = DefaultRotationStep
	}
	if s.Mesh == "" {
		s.Mesh = DefaultMesh
	}
	if s.Color == "" {
		s.Color = DefaultColor
	}
	return s
}

// Validate checks that the spec describes placeable geometry and a well-formed connection
// point layout. Errors wrap ErrInvalidSpec.
func (s Spec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidSpec)
	}
	for i, v := range s.Size {
		if v <= 0 {
			return fmt.Errorf("%w: %s has no geometry (size[%d]=%g)", ErrInvalidSpec, s.Name, i, v)
		}
	}
	switch s.Kind {
	case "", KindStraight, KindCorner, KindIntersection:
	default:
		return fmt.Errorf("%w: %s has unknown kind %q", ErrInvalidSpec, s.Name, s.Kind)
	}
	switch s.Mesh {
	case "", "cube", "plane":
	default:
		return fmt.Errorf("%w: %s has unknown mesh %q", ErrInvalidSpec, s.Name, s.Mesh)
	}
	if s.GridSize < 0 {
		return fmt.Errorf("%w: %s has negative grid size", ErrInvalidSpec, s.Name)
	}
	if s.RotationStep < 0 {
		return fmt.Errorf("%w: %s has negative rotation step", ErrInvalidSpec, s.Name)
	}
	if s.Lanes < 0 {
		return fmt.Errorf("%w: %s has negative lane count", ErrInvalidSpec, s.Name)
	}
	seen := make(map[string]bool, len(s.Points))
	for i, p := range s.Points {
		if p.Name == "" {
			return fmt.Errorf("%w: %s point %d has no name", ErrInvalidSpec, s.Name, i)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: %s declares point %q twice", ErrInvalidSpec, s.Name, p.Name)
		}
		seen[p.Name] = true
		if p.Forward == [3]float32{} {
			return fmt.Errorf("%w: %s point %q has zero forward", ErrInvalidSpec, s.Name, p.Name)
		}
	}
	return nil
}
