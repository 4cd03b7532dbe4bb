// Package engineconfig holds the editor preferences: debug overlays, grid, placement tuning and
// file locations. Values come from config/editor.json, then ROAD_EDITOR_* environment variables.
package engineconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/chewxy/math32"

	"road-editor/internal/feedback"
	"road-editor/internal/logger"
	"road-editor/internal/overlap"
	"road-editor/internal/placement"
	"road-editor/internal/snap"
	"road-editor/internal/world"
)

// EditorConfigPath is the path to the prefs file, relative to the process working directory.
const EditorConfigPath = "config/editor.json"

// Prefs holds editor-only preferences. Persisted across runs.
type Prefs struct {
	ShowFPS      bool `json:"show_fps"      env:"ROAD_EDITOR_SHOW_FPS"`
	ShowMemAlloc bool `json:"show_memalloc" env:"ROAD_EDITOR_SHOW_MEMALLOC"`
	ShowGizmos   bool `json:"show_gizmos"   env:"ROAD_EDITOR_SHOW_GIZMOS"`
	GridVisible  bool `json:"grid_visible"  env:"ROAD_EDITOR_GRID_VISIBLE"`

	SnapRadius      float32 `json:"snap_radius"      env:"ROAD_EDITOR_SNAP_RADIUS"`
	FacingThreshold float32 `json:"facing_threshold" env:"ROAD_EDITOR_FACING_THRESHOLD"`
	OverlapShrink   float32 `json:"overlap_shrink"   env:"ROAD_EDITOR_OVERLAP_SHRINK"`
	RaycastDistance float32 `json:"raycast_distance" env:"ROAD_EDITOR_RAYCAST_DISTANCE"`
	IndexCell       float32 `json:"index_cell"       env:"ROAD_EDITOR_INDEX_CELL"`

	PreviewAlpha float32 `json:"preview_alpha" env:"ROAD_EDITOR_PREVIEW_ALPHA"`
	ValidColor   string  `json:"valid_color"   env:"ROAD_EDITOR_VALID_COLOR"`
	InvalidColor string  `json:"invalid_color" env:"ROAD_EDITOR_INVALID_COLOR"`

	// Catalog is a YAML piece catalog; empty uses the built-in one.
	Catalog string `json:"catalog,omitempty" env:"ROAD_EDITOR_CATALOG"`
	LogPath string `json:"log_path"          env:"ROAD_EDITOR_LOG"`
}

// Default returns default preferences (debug overlays off, grid and gizmos on).
func Default() Prefs {
	pal := feedback.DefaultPalette()
	return Prefs{
		ShowGizmos:      true,
		GridVisible:     true,
		SnapRadius:      snap.DefaultRadius,
		FacingThreshold: snap.DefaultFacingThreshold,
		OverlapShrink:   overlap.DefaultShrink,
		RaycastDistance: placement.DefaultRaycastDistance,
		IndexCell:       world.DefaultCellSize,
		PreviewAlpha:    pal.Alpha,
		ValidColor:      feedback.FormatColor(pal.Valid),
		InvalidColor:    feedback.FormatColor(pal.Invalid),
		LogPath:         logger.DefaultPath,
	}
}

// Load reads preferences from EditorConfigPath and applies environment overrides.
func Load() (Prefs, error) {
	return LoadFrom(EditorConfigPath, nil)
}

// LoadFrom reads preferences from path and applies environment overrides. A missing or
// unreadable file yields Default() and does not create a file. environ replaces the process
// environment when non-nil.
func LoadFrom(path string, environ map[string]string) (Prefs, error) {
	p := Default()
	if data, err := os.ReadFile(path); err == nil {
		p = merge(p, data)
	}
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&p, opts); err != nil {
		return Default(), fmt.Errorf("parse env: %w", err)
	}
	return p, p.Validate()
}

// merge decodes data over base so keys absent from the file keep their defaults.
func merge(base Prefs, data []byte) Prefs {
	p := base
	if err := json.Unmarshal(data, &p); err != nil {
		return base
	}
	return p
}

// Save writes preferences to EditorConfigPath.
func Save(p Prefs) error {
	return SaveTo(EditorConfigPath, p)
}

// SaveTo writes preferences to path, creating the directory if needed.
func SaveTo(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate clamps the overlap shrink into range and reports settings the editor cannot use.
func (p *Prefs) Validate() error {
	p.OverlapShrink = min(max(p.OverlapShrink, overlap.MinShrink), overlap.MaxShrink)
	p.PreviewAlpha = min(max(p.PreviewAlpha, 0), 1)

	var errs []error
	if p.SnapRadius <= 0 || math32.IsNaN(p.SnapRadius) {
		errs = append(errs, fmt.Errorf("snap radius %v: must be positive", p.SnapRadius))
	}
	if p.FacingThreshold < -1 || p.FacingThreshold > 1 {
		errs = append(errs, fmt.Errorf("facing threshold %v: must be within [-1, 1]", p.FacingThreshold))
	}
	if p.RaycastDistance <= 0 {
		errs = append(errs, fmt.Errorf("raycast distance %v: must be positive", p.RaycastDistance))
	}
	if p.IndexCell <= 0 {
		errs = append(errs, fmt.Errorf("index cell %v: must be positive", p.IndexCell))
	}
	if _, err := feedback.ParseColor(p.ValidColor); err != nil {
		errs = append(errs, fmt.Errorf("valid color: %w", err))
	}
	if _, err := feedback.ParseColor(p.InvalidColor); err != nil {
		errs = append(errs, fmt.Errorf("invalid color: %w", err))
	}
	return errors.Join(errs...)
}

// Palette returns the preview tints. Unparseable colors fall back to the defaults.
func (p Prefs) Palette() feedback.Palette {
	pal := feedback.DefaultPalette()
	if c, err := feedback.ParseColor(p.ValidColor); err == nil {
		pal.Valid = c
	}
	if c, err := feedback.ParseColor(p.InvalidColor); err == nil {
		pal.Invalid = c
	}
	pal.Alpha = p.PreviewAlpha
	return pal
}

// PlacementConfig returns the session tuning.
func (p Prefs) PlacementConfig() placement.Config {
	cfg := placement.DefaultConfig()
	cfg.Snap = snap.Config{Radius: p.SnapRadius, FacingThreshold: p.FacingThreshold}
	cfg.OverlapShrink = p.OverlapShrink
	cfg.RaycastDistance = p.RaycastDistance
	cfg.Palette = p.Palette()
	return cfg
}
