// Package placement runs the interactive placement of one piece at a time: spawn a
// preview, move it with the pointer (snapping to grid or connection points), rotate it,
// and commit or discard it.
package placement

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"

	"road-editor/internal/collide"
	"road-editor/internal/feedback"
	"road-editor/internal/logger"
	"road-editor/internal/overlap"
	"road-editor/internal/piece"
	"road-editor/internal/snap"
	"road-editor/internal/world"
)

// State is the session state.
type State int

const (
	Idle State = iota
	Previewing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Previewing:
		return "previewing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Deps are the collaborators of a session. Registry is created when nil; every other
// collaborator may be nil and is then reported as missing when it would have been used.
type Deps struct {
	Registry  *world.Registry
	Ground    collide.Ground
	Collider  collide.Collider
	Bodies    collide.Bodies
	Materials feedback.Materials
	Log       *logger.Logger
}

// Update describes the preview after a transition.
type Update struct {
	Position    rl.Vector3
	Rotation    rl.Quaternion
	GroundHit   bool
	Snapped     bool
	Links       []snap.Match
	Overlapping bool
	Visual      feedback.Visual
	// Warning wraps ErrMissingCollaborator when a fallback was taken.
	Warning error
}

// Session is the placement state machine. It is not safe for concurrent use: the host
// drives it from a single input loop, and only the session mutates its preview and, on
// Finish or Remove, the registry.
type Session struct {
	cfg       Config
	reg       *world.Registry
	ground    collide.Ground
	bodies    collide.Bodies
	resolver  *snap.Resolver
	validator *overlap.Validator
	feedback  *feedback.Tracker
	log       *logger.Logger

	state    State
	preview  *piece.Object
	last     snap.Result
	report   overlap.Report
	suppress bool
	grounded bool
}

// New returns an idle session.
func New(deps Deps, cfg Config) *Session {
	cfg = cfg.withDefaults()
	reg := deps.Registry
	if reg == nil {
		reg = world.New(0)
	}
	return &Session{
		cfg:       cfg,
		reg:       reg,
		ground:    deps.Ground,
		bodies:    deps.Bodies,
		resolver:  snap.NewResolver(reg, cfg.Snap),
		validator: overlap.NewValidator(reg, deps.Collider, cfg.OverlapShrink, cfg.RoadMask),
		feedback:  feedback.NewTracker(deps.Materials, cfg.Palette),
		log:       deps.Log,
	}
}

func (s *Session) State() State { return s.state }
func (s *Session) Registry() *world.Registry { return s.reg }
func (s *Session) Config() Config { return s.cfg }
func (s *Session) Visual() feedback.Visual { return s.feedback.Visual() }
func (s *Session) LastReport() overlap.Report { return s.report }
func (s *Session) LastSnap() snap.Result { return s.last }
func (s *Session) PreviewMaterials() int { return s.feedback.Owned() }

// Preview returns the active preview, or nil when idle.
func (s *Session) Preview() *piece.Object { return s.preview }

func (s *Session) stateErr(op string) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidSessionState, op, s.state)
}

// Start spawns a preview of spec under the pointer. The preview is non-blocking, sits on
// the grid cell under the ray (or the world origin without a ground hit) and does not snap
// to connection points until the second pointer update.
func (s *Session) Start(spec piece.Spec, ray rl.Ray) (Update, error) {
	if s.state != Idle {
		return Update{}, s.stateErr("start")
	}
	obj, err := piece.New(spec)
	if err != nil {
		return Update{}, fmt.Errorf("start %s: %w", spec.Name, err)
	}
	obj.Blocking = false
	if err := s.feedback.Begin(obj.ID); err != nil {
		return Update{}, fmt.Errorf("start %s: %w", spec.Name, err)
	}

	var u Update
	pos := rl.Vector3Zero()
	hit, ok, warn := s.groundHit(ray)
	if ok {
		pos = snap.Quantize(hit, obj.GridSize())
	}
	u.GroundHit = ok
	u.Warning = warn
	obj.SetTransform(pos, rl.QuaternionIdentity())

	s.preview = obj
	s.state = Previewing
	s.suppress = true
	s.grounded = ok
	s.last = snap.Result{Position: pos, Rotation: obj.Rotation()}
	s.syncBody()
	s.log.Logf("preview %s at (%.2f, %.2f, %.2f)", obj.Spec.Name, pos.X, pos.Y, pos.Z)
	return s.evaluate(u), nil
}

// UpdatePointer moves the preview to the snap target for the ground point under ray and
// refreshes the overlap feedback. Without a ground hit the preview stays where it is.
func (s *Session) UpdatePointer(ray rl.Ray) (Update, error) {
	if s.state != Previewing {
		return Update{}, s.stateErr("update pointer")
	}
	var u Update
	hit, ok, warn := s.groundHit(ray)
	u.GroundHit = ok
	u.Warning = warn
	suppress := s.suppress
	s.suppress = false
	s.grounded = ok
	if ok {
		res := s.resolver.Resolve(s.preview, hit, suppress)
		s.preview.SetTransform(res.Position, res.Rotation)
		s.last = res
		s.syncBody()
	}
	return s.evaluate(u), nil
}

// Rotate turns the preview in place by one rotation step around the up axis: positive
// direction rotates by +step, negative by -step. The match is recomputed at the new
// orientation without moving the preview, so only points still resting on a mate stay linked.
func (s *Session) Rotate(direction int) (Update, error) {
	if s.state != Previewing {
		return Update{}, s.stateErr("rotate")
	}
	switch {
	case direction > 0:
		s.preview.RotateY(s.preview.RotationStep())
	case direction < 0:
		s.preview.RotateY(-s.preview.RotationStep())
	}
	s.last = s.resolver.Settle(s.preview)
	s.syncBody()
	return s.evaluate(Update{GroundHit: s.grounded}), nil
}

// Finish commits the preview. An overlapping preview is discarded instead and
// ErrOverlapRejected returned; either way the session ends idle.
func (s *Session) Finish() (*piece.Object, error) {
	if s.state != Previewing {
		return nil, s.stateErr("finish")
	}
	obj := s.preview
	s.report = s.validator.Check(obj)
	s.warnNoCollider(s.report)
	if s.report.Overlapping {
		s.discard()
		s.log.Logf("placement of %s rejected: overlaps %d piece(s)", obj.Spec.Name, len(s.report.Hits))
		return nil, fmt.Errorf("%w: %s overlaps %d piece(s)", ErrOverlapRejected, obj.Spec.Name, len(s.report.Hits))
	}

	for _, m := range s.last.Links {
		if !s.reg.Contains(m.Target.Owner().ID) {
			continue
		}
		if err := piece.Link(m.Preview, m.Target); err != nil {
			s.log.Logf("link %s.%s: %v", obj.Spec.Name, m.Preview.Name, err)
		}
	}
	s.feedback.Commit()
	if err := s.reg.Add(obj); err != nil {
		obj.Release()
		s.discard()
		return nil, fmt.Errorf("commit %s: %w", obj.Spec.Name, err)
	}
	if s.bodies != nil {
		s.bodies.Sync(obj, s.cfg.RoadMask)
	}
	s.reset()
	pos := obj.Position()
	s.log.Logf("placed %s with %d lanes at (%.2f, %.2f, %.2f)", obj.Kind(), obj.Spec.Lanes, pos.X, pos.Y, pos.Z)
	return obj, nil
}

// Cancel destroys the preview and every preview-owned material. The registry is untouched.
func (s *Session) Cancel() error {
	if s.state != Previewing {
		return s.stateErr("cancel")
	}
	name := s.preview.Spec.Name
	s.discard()
	s.log.Logf("placement of %s cancelled", name)
	return nil
}

// Remove deletes a committed piece, frees the connection points it was linked to and
// drops its collision body.
func (s *Session) Remove(id uuid.UUID) error {
	obj, err := s.reg.Remove(id)
	if err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	if s.bodies != nil {
		s.bodies.Drop(id)
	}
	s.log.Logf("removed %s", obj)
	return nil
}

func (s *Session) groundHit(ray rl.Ray) (rl.Vector3, bool, error) {
	if s.ground == nil {
		return rl.Vector3{}, false, fmt.Errorf("%w: ground raycast", ErrMissingCollaborator)
	}
	hit, ok := s.ground.Raycast(ray, s.cfg.RaycastDistance, s.cfg.GroundMask)
	return hit, ok, nil
}

// evaluate runs the overlap check on the preview and repaints the feedback.
func (s *Session) evaluate(u Update) Update {
	s.report = s.validator.Check(s.preview)
	if w := s.warnNoCollider(s.report); w != nil && u.Warning == nil {
		u.Warning = w
	}
	u.Position = s.preview.Position()
	u.Rotation = s.preview.Rotation()
	u.Snapped = s.last.Snapped()
	u.Links = s.last.Links
	u.Overlapping = s.report.Overlapping
	u.Visual = s.feedback.Apply(s.report.Overlapping)
	return u
}

func (s *Session) warnNoCollider(rep overlap.Report) error {
	if !rep.NoCollider {
		return nil
	}
	return fmt.Errorf("%w: overlap query (bounds check only)", ErrMissingCollaborator)
}

func (s *Session) syncBody() {
	if s.bodies != nil {
		s.bodies.Sync(s.preview, s.cfg.RoadMask)
	}
}

// discard frees the preview without touching the registry.
func (s *Session) discard() {
	s.feedback.Discard()
	if s.bodies != nil && s.preview != nil {
		s.bodies.Drop(s.preview.ID)
	}
	s.reset()
}

func (s *Session) reset() {
	s.preview = nil
	s.last = snap.Result{}
	s.suppress = false
	s.grounded = false
	s.state = Idle
}
