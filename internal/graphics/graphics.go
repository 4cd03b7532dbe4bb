package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Window describes the editor window.
type Window struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
}

// Run opens the window and runs the main loop until it is closed. Each frame it calls update
// (input), then clears the screen and calls draw. ESC toggles the terminal; close via window button.
func Run(win Window, update, draw func()) {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	if win.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	w, h := win.Width, win.Height
	if win.Fullscreen {
		w, h = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.InitWindow(w, h, win.Title)
	defer rl.CloseWindow()

	rl.SetExitKey(rl.KeyNull)
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(30, 32, 36, 255))
		draw()
		rl.EndDrawing()
	}
}
