package placement

import (
	"errors"

	rl "github.com/gen2brain/raylib-go/raylib"

	"road-editor/internal/piece"
)

// Input is one frame of pointer and key state, sampled by the host.
type Input struct {
	Ray      rl.Ray
	HasRay   bool
	Rotate   int // +1 rotate right, -1 rotate left
	Released bool
	Cancel   bool
}

// Effects reports what a Tick did.
type Effects struct {
	State     State
	Update    Update
	Committed *piece.Object
	Cancelled bool
	Err       error
	Warning   error
}

// Tick applies one frame of input to an active session: cancel first, then rotation,
// then the pointer move, then the commit on release. An idle session ignores input.
func (s *Session) Tick(in Input) Effects {
	if s.state != Previewing {
		return Effects{State: s.state}
	}
	var fx Effects
	if in.Cancel {
		fx.Err = s.Cancel()
		fx.Cancelled = fx.Err == nil
		fx.State = s.state
		return fx
	}
	if in.Rotate != 0 {
		fx.Update, _ = s.Rotate(in.Rotate)
		fx.Warning = fx.Update.Warning
	}
	if in.HasRay {
		fx.Update, _ = s.UpdatePointer(in.Ray)
		fx.Warning = fx.Update.Warning
	}
	if in.Released {
		obj, err := s.Finish()
		fx.Committed = obj
		fx.Err = err
		if errors.Is(err, ErrOverlapRejected) {
			fx.Cancelled = true
		}
	}
	fx.State = s.state
	return fx
}
