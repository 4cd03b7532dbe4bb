// Package scene holds the editor camera and draws the XZ grid the pieces are placed on.
package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 50
	gridMinorStep  = 1
	gridMajorStep  = 10
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
)

// Scene holds a 3D camera and draws the 3D world. Update runs camera logic; Draw renders the grid
// and then calls the given 3D callback between BeginMode3D and EndMode3D.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool
}

// New returns a scene with a perspective camera looking at the origin.
// Camera: position (10,10,10), target (0,0,0), up (0,1,0), fovy 45°. Grid is visible by default.
func New() *Scene {
	s := &Scene{}
	s.Camera.Position = rl.NewVector3(10, 10, 10)
	s.Camera.Target = rl.NewVector3(0, 0, 0)
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 45
	s.Camera.Projection = rl.CameraPerspective
	s.GridVisible = true
	return s
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Update moves the camera while the middle mouse button is held. The cursor stays free
// otherwise so it can aim placements.
func (s *Scene) Update() {
	if rl.IsMouseButtonPressed(rl.MouseButtonMiddle) {
		rl.DisableCursor()
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonMiddle) {
		rl.EnableCursor()
	}
	if rl.IsMouseButtonDown(rl.MouseButtonMiddle) {
		rl.UpdateCamera(&s.Camera, rl.CameraFree)
	}
}

// PointerRay returns the world ray under the mouse cursor.
func (s *Scene) PointerRay() rl.Ray {
	return rl.GetScreenToWorldRay(rl.GetMousePosition(), s.Camera)
}

// Draw renders the 3D scene: the grid (when visible), then draw3D. Call after ClearBackground and
// before 2D overlays.
func (s *Scene) Draw(draw3D func()) {
	rl.BeginMode3D(s.Camera)
	if s.GridVisible {
		drawEditorGrid()
	}
	if draw3D != nil {
		draw3D()
	}
	rl.EndMode3D()
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(i), 0, float32(-gridExtent)
		end.X, end.Y, end.Z = float32(i), 0, float32(gridExtent)
		rl.DrawLine3D(start, end, c)
		start.X, start.Z = float32(-gridExtent), float32(i)
		end.X, end.Z = float32(gridExtent), float32(i)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = float32(-gridExtent), 0.001, 0
	end.X, end.Y, end.Z = float32(gridExtent), 0.001, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Z = 0, float32(-gridExtent)
	end.X, end.Z = 0, float32(gridExtent)
	rl.DrawLine3D(start, end, axisZ)
}
