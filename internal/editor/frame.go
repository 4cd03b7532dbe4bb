package editor

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"road-editor/internal/placement"
	"road-editor/internal/render"
)

// Update samples window input and advances the editor by one frame. Placement keys are ignored
// while the terminal has focus.
func (e *Editor) Update(terminalOpen bool) {
	e.scene.Update()
	if terminalOpen {
		return
	}
	for i, name := range e.Catalog() {
		if i < 9 && rl.IsKeyPressed(int32(rl.KeyOne)+int32(i)) {
			if err := e.Place(name); err != nil {
				e.log.Log(err.Error())
			}
		}
	}
	e.Step(e.sampleInput())
}

func (e *Editor) sampleInput() placement.Input {
	in := placement.Input{
		Ray:      e.pointer(),
		HasRay:   true,
		Released: rl.IsMouseButtonReleased(rl.MouseButtonLeft),
		Cancel:   rl.IsMouseButtonPressed(rl.MouseButtonRight),
	}
	if rl.IsKeyPressed(rl.KeyQ) {
		in.Rotate--
	}
	if rl.IsKeyPressed(rl.KeyE) {
		in.Rotate++
	}
	// Touch: the first pointer aims, lifting it commits.
	if rl.GetTouchPointCount() > 0 {
		in.Ray = rl.GetScreenToWorldRay(rl.GetTouchPosition(0), e.scene.Camera)
		e.touching = true
	} else if e.touching {
		e.touching = false
		in.Released = true
	}
	return in
}

// Draw renders the world, the preview and the overlays.
func (e *Editor) Draw() {
	e.renderer.SetView(e.scene.Camera.Position, lightDir)
	e.scene.Draw(func() {
		for _, o := range e.reg.Objects() {
			e.renderer.DrawPiece(o)
			if e.prefs.ShowGizmos {
				render.DrawGizmos(o)
			}
		}
		if prev := e.session.Preview(); prev != nil {
			e.renderer.DrawPiece(prev)
			render.DrawGizmos(prev)
		}
	})
	e.debug.Draw()
}

// Close discards any preview and frees GPU resources.
func (e *Editor) Close() {
	if e.session.State() == placement.Previewing {
		_ = e.session.Cancel()
	}
	e.renderer.Close()
}
