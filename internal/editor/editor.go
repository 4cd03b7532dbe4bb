// Package editor hosts the placement session in the interactive window: it samples input,
// drives the session once per frame, and draws committed pieces, the preview and overlays.
package editor

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"road-editor/internal/commands"
	"road-editor/internal/debug"
	"road-editor/internal/engineconfig"
	"road-editor/internal/feedback"
	"road-editor/internal/logger"
	"road-editor/internal/physics"
	"road-editor/internal/piece"
	"road-editor/internal/placement"
	"road-editor/internal/render"
	"road-editor/internal/scene"
	"road-editor/internal/world"
)

var lightDir = rl.NewVector3(0.5, 1, 0.3)

// Options configures an Editor. Materials and Pointer default to the raylib-backed renderer and
// the mouse ray; tests replace them.
type Options struct {
	Prefs     engineconfig.Prefs
	Catalog   *piece.Catalog
	Log       *logger.Logger
	Materials feedback.Materials
	Pointer   func() rl.Ray
}

// Editor owns the world, the collision world and the placement session.
type Editor struct {
	prefs   engineconfig.Prefs
	catalog *piece.Catalog
	log     *logger.Logger

	reg      *world.Registry
	physics  *physics.World
	session  *placement.Session
	renderer *render.Renderer
	scene    *scene.Scene
	debug    *debug.Debug
	pointer  func() rl.Ray

	touching    bool
	lastWarning string
}

var _ commands.Editor = (*Editor)(nil)

// New returns an editor with an empty world.
func New(opts Options) (*Editor, error) {
	if opts.Catalog == nil {
		return nil, errors.New("editor: catalog is required")
	}
	e := &Editor{
		prefs:    opts.Prefs,
		catalog:  opts.Catalog,
		log:      opts.Log,
		reg:      world.New(opts.Prefs.IndexCell),
		physics:  physics.NewWorld(),
		renderer: render.NewRenderer(),
		scene:    scene.New(),
		debug:    debug.New(),
		pointer:  opts.Pointer,
	}
	if e.pointer == nil {
		e.pointer = e.scene.PointerRay
	}
	mats := opts.Materials
	if mats == nil {
		mats = e.renderer.Materials()
	}
	e.session = placement.New(placement.Deps{
		Registry:  e.reg,
		Ground:    e.physics,
		Collider:  e.physics,
		Bodies:    e.physics,
		Materials: mats,
		Log:       e.log,
	}, opts.Prefs.PlacementConfig())

	e.scene.SetGridVisible(opts.Prefs.GridVisible)
	e.debug.SetShowFPS(opts.Prefs.ShowFPS)
	e.debug.SetShowMemAlloc(opts.Prefs.ShowMemAlloc)
	e.refreshStatus()
	return e, nil
}

// Prefs returns the preferences, including toggles changed at runtime.
func (e *Editor) Prefs() engineconfig.Prefs { return e.prefs }

// Session returns the placement session.
func (e *Editor) Session() *placement.Session { return e.session }

// Place starts a preview of the named catalog piece under the pointer, cancelling any preview
// already in progress.
func (e *Editor) Place(name string) error {
	spec, err := e.catalog.Lookup(name)
	if err != nil {
		return err
	}
	if e.session.State() == placement.Previewing {
		if err := e.session.Cancel(); err != nil {
			return err
		}
	}
	u, err := e.session.Start(spec, e.pointer())
	if err != nil {
		return err
	}
	e.warn(u.Warning)
	e.refreshStatus()
	return nil
}

func (e *Editor) Rotate(direction int) error {
	u, err := e.session.Rotate(direction)
	if err == nil {
		e.warn(u.Warning)
		e.refreshStatus()
	}
	return err
}

func (e *Editor) Finish() error {
	_, err := e.session.Finish()
	e.refreshStatus()
	return err
}

func (e *Editor) Cancel() error {
	err := e.session.Cancel()
	e.refreshStatus()
	return err
}

func (e *Editor) Remove(id uuid.UUID) error {
	err := e.session.Remove(id)
	e.refreshStatus()
	return err
}

// Describe returns one line per committed piece.
func (e *Editor) Describe() []string {
	objs := e.reg.Objects()
	lines := make([]string, 0, len(objs))
	for _, o := range objs {
		linked := 0
		for _, p := range o.Points() {
			if p.Occupied() {
				linked++
			}
		}
		pos := o.Position()
		lines = append(lines, fmt.Sprintf("%s %s (%s, %d lanes) at (%.2f, %.2f, %.2f) links %d/%d",
			o.ID, o.Spec.Name, o.Kind(), o.Spec.Lanes, pos.X, pos.Y, pos.Z, linked, len(o.Points())))
	}
	return lines
}

// Catalog returns the placeable piece names in catalog order.
func (e *Editor) Catalog() []string {
	specs := e.catalog.Specs()
	names := make([]string, len(specs))
	for i, s := range specs {
		names[i] = s.Name
	}
	return names
}

func (e *Editor) SetGridVisible(visible bool) {
	e.prefs.GridVisible = visible
	e.scene.SetGridVisible(visible)
}

func (e *Editor) SetShowFPS(show bool) {
	e.prefs.ShowFPS = show
	e.debug.SetShowFPS(show)
}

func (e *Editor) SetShowGizmos(show bool) {
	e.prefs.ShowGizmos = show
}

// Step applies one frame of placement input.
func (e *Editor) Step(in placement.Input) placement.Effects {
	fx := e.session.Tick(in)
	if fx.Err != nil && !errors.Is(fx.Err, placement.ErrOverlapRejected) {
		e.log.Log(fx.Err.Error())
	}
	e.warn(fx.Warning)
	e.refreshStatus()
	return fx
}

// warn logs a collaborator warning once until it changes.
func (e *Editor) warn(err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg != "" && msg != e.lastWarning {
		e.log.Log("warning: " + msg)
	}
	e.lastWarning = msg
}

func (e *Editor) refreshStatus() {
	lines := []string{fmt.Sprintf("pieces: %d", e.reg.Len())}
	if prev := e.session.Preview(); prev != nil {
		snapped := "grid"
		if res := e.session.LastSnap(); res.Snapped() {
			snapped = fmt.Sprintf("snapped (%d links)", len(res.Links))
		}
		fit := "free"
		if e.session.LastReport().Overlapping {
			fit = "blocked"
		}
		lines = append(lines, fmt.Sprintf("placing %s: %s, %s", prev.Spec.Name, snapped, fit),
			"LMB release place  Q/E rotate  RMB cancel")
	} else {
		lines = append(lines, "1-9 pick piece  T terminal")
	}
	e.debug.SetStatus(lines...)
}
