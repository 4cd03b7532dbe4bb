package debug

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

var statusColor = rl.NewColor(230, 230, 230, 255)

// Debug holds the editor overlays: FPS and memory counters at the top-right (off by default) and
// the placement status lines at the top-left.
type Debug struct {
	ShowFPS      bool
	ShowMemAlloc bool
	status       []string
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a Debug system with all counters hidden.
func New() *Debug {
	return &Debug{}
}

// SetShowFPS sets whether the FPS counter is drawn (top-right, green).
func (d *Debug) SetShowFPS(show bool) {
	d.ShowFPS = show
}

// SetShowMemAlloc sets whether the memory allocation counter is drawn (top-right, under FPS).
func (d *Debug) SetShowMemAlloc(show bool) {
	d.ShowMemAlloc = show
}

// SetStatus replaces the status lines drawn at the top-left.
func (d *Debug) SetStatus(lines ...string) {
	d.status = append(d.status[:0], lines...)
}

// Status returns the current status lines.
func (d *Debug) Status() []string { return d.status }

// Draw renders the enabled overlays. Call after the scene and terminal in the draw loop.
// Counter text is only recomputed every updateInterval frames to limit allocations.
func (d *Debug) Draw() {
	d.frameCount++
	update := d.frameCount%updateInterval == 0
	if (d.ShowFPS && d.lastFpsText == "") || (d.ShowMemAlloc && d.lastMemText == "") {
		update = true
	}

	for i, line := range d.status {
		rl.DrawText(line, padding, int32(padding+i*lineHeight), fontSize, statusColor)
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	if d.ShowFPS {
		if update {
			d.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(d.lastFpsText, screenW, y)
		y += lineHeight
	}
	if d.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&d.lastMemStats)
			mb := float64(d.lastMemStats.Alloc) / (1024 * 1024)
			d.lastMemText = fmt.Sprintf("Mem: %.2f MiB", mb)
		}
		drawRight(d.lastMemText, screenW, y)
	}
}

func drawRight(text string, screenW, y int32) {
	if text == "" {
		return
	}
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
}
