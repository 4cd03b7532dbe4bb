// Package feedback maps placement validity onto preview visuals and owns the preview's
// duplicated materials for the lifetime of one placement.
package feedback

import (
	"fmt"
	"image/color"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
)

// Visual is the rendering state handed to the material collaborator: either Normal
// (original materials) or Preview tinted with Color.
type Visual struct {
	preview bool
	Color   color.RGBA
}

// Normal is the visual of a committed piece.
func Normal() Visual { return Visual{} }

// Preview is the visual of a preview piece tinted with c.
func Preview(c color.RGBA) Visual { return Visual{preview: true, Color: c} }

// IsPreview reports whether v is a preview tint.
func (v Visual) IsPreview() bool { return v.preview }

func (v Visual) String() string {
	if !v.preview {
		return "normal"
	}
	return fmt.Sprintf("preview(#%02x%02x%02x/%d)", v.Color.R, v.Color.G, v.Color.B, v.Color.A)
}

// Palette holds the preview tints.
type Palette struct {
	Valid   color.RGBA
	Invalid color.RGBA
	Alpha   float32
}

// DefaultPalette is green for free placements, red for overlapping ones, at 0.6 alpha.
func DefaultPalette() Palette {
	return Palette{
		Valid:   color.RGBA{R: 51, G: 255, B: 51, A: 255},
		Invalid: color.RGBA{R: 255, G: 51, B: 51, A: 255},
		Alpha:   0.6,
	}
}

// Signal returns the preview visual for a placement.
func (p Palette) Signal(overlapping bool) Visual {
	c := p.Valid
	if overlapping {
		c = p.Invalid
	}
	c.A = uint8(math32.Round(rl.Clamp(p.Alpha, 0, 1) * 255))
	return Preview(c)
}

// Material is an opaque handle to a preview-owned material duplicate.
type Material uint64

// Materials is the rendering collaborator.
type Materials interface {
	// Duplicate copies every material of every renderer of owner and switches the
	// renderers to the copies. The copies are never shared with committed pieces.
	Duplicate(owner uuid.UUID) ([]Material, error)
	// Paint updates the color and alpha of a duplicate in place.
	Paint(m Material, v Visual)
	// Restore switches the renderers of owner back to their original materials.
	Restore(owner uuid.UUID)
	// Release frees a duplicate.
	Release(m Material)
}

// Tracker owns the duplicated materials of the active preview. Duplicates are made once in
// Begin and only repainted afterwards.
type Tracker struct {
	mats    Materials
	palette Palette
	owner   uuid.UUID
	owned   []Material
	visual  Visual
	active  bool
}

// NewTracker returns a tracker painting with palette. mats may be nil for headless use.
func NewTracker(mats Materials, palette Palette) *Tracker {
	return &Tracker{mats: mats, palette: palette}
}

// Begin duplicates the materials of owner and paints them with the valid tint. A tracker
// that is still active releases its previous duplicates first.
func (t *Tracker) Begin(owner uuid.UUID) error {
	if t.active {
		t.Discard()
	}
	t.owner = owner
	t.active = true
	if t.mats != nil {
		owned, err := t.mats.Duplicate(owner)
		if err != nil {
			t.active = false
			return fmt.Errorf("duplicate materials: %w", err)
		}
		t.owned = owned
	}
	t.Apply(false)
	return nil
}

// Apply repaints the duplicates for the current validity and returns the visual used.
func (t *Tracker) Apply(overlapping bool) Visual {
	t.visual = t.palette.Signal(overlapping)
	if t.mats != nil {
		for _, m := range t.owned {
			t.mats.Paint(m, t.visual)
		}
	}
	return t.visual
}

// Commit restores the original materials and frees every duplicate.
func (t *Tracker) Commit() {
	if !t.active {
		return
	}
	if t.mats != nil {
		t.mats.Restore(t.owner)
	}
	t.release()
	t.visual = Normal()
}

// Discard frees every duplicate without restoring; the preview itself is being destroyed.
func (t *Tracker) Discard() {
	if !t.active {
		return
	}
	t.release()
	t.visual = Normal()
}

func (t *Tracker) release() {
	if t.mats != nil {
		for _, m := range t.owned {
			t.mats.Release(m)
		}
	}
	t.owned = nil
	t.owner = uuid.Nil
	t.active = false
}

// Visual returns the last visual applied.
func (t *Tracker) Visual() Visual { return t.visual }

// Owned returns the number of duplicates currently held.
func (t *Tracker) Owned() int { return len(t.owned) }

// Palette returns the tracker's tints.
func (t *Tracker) Palette() Palette { return t.palette }
