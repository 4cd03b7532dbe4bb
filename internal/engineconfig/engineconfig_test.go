package engineconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"road-editor/internal/feedback"
	"road-editor/internal/placement"
	"road-editor/internal/snap"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "editor.json")

	p, err := LoadFrom(path, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
	assert.NoFileExists(t, path)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "editor.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"show_fps": true, "snap_radius": 2.5}`), 0644))

	p, err := LoadFrom(path, map[string]string{})
	require.NoError(t, err)
	assert.True(t, p.ShowFPS)
	assert.InDelta(t, 2.5, p.SnapRadius, 1e-6)
	assert.True(t, p.GridVisible)
	assert.Equal(t, "#33FF33", p.ValidColor)
}

func TestLoadInvalidJSONUsesDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "editor.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	p, err := LoadFrom(path, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "editor.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"snap_radius": 2.5, "overlap_shrink": 0.9}`), 0644))

	p, err := LoadFrom(path, map[string]string{
		"ROAD_EDITOR_SNAP_RADIUS":    "3",
		"ROAD_EDITOR_INVALID_COLOR":  "#AA0000",
		"ROAD_EDITOR_SHOW_MEMALLOC":  "true",
		"ROAD_EDITOR_OVERLAP_SHRINK": "0.1",
	})
	require.NoError(t, err)
	assert.InDelta(t, 3, p.SnapRadius, 1e-6)
	assert.Equal(t, "#AA0000", p.InvalidColor)
	assert.True(t, p.ShowMemAlloc)
	assert.InDelta(t, 0.4, p.OverlapShrink, 1e-6, "clamped into range")
}

func TestEnvironmentParseError(t *testing.T) {
	t.Parallel()
	_, err := LoadFrom(filepath.Join(t.TempDir(), "none.json"), map[string]string{
		"ROAD_EDITOR_SNAP_RADIUS": "wide",
	})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()
	p := Default()
	p.SnapRadius = 0
	p.ValidColor = "green"
	p.OverlapShrink = 3
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snap radius")
	assert.Contains(t, err.Error(), "valid color")
	assert.InDelta(t, 1, p.OverlapShrink, 1e-6)

	d := Default()
	assert.NoError(t, d.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "editor.json")
	want := Default()
	want.ShowFPS = true
	want.Catalog = "pieces/custom.yaml"
	require.NoError(t, SaveTo(path, want))

	got, err := LoadFrom(path, map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPlacementConfig(t *testing.T) {
	t.Parallel()
	p := Default()
	assert.Equal(t, placement.DefaultConfig(), p.PlacementConfig())

	p.InvalidColor = "#000000"
	p.PreviewAlpha = 1
	pal := p.PlacementConfig().Palette
	assert.Equal(t, feedback.DefaultPalette().Valid, pal.Valid)
	assert.Zero(t, pal.Invalid.R)
	assert.InDelta(t, 1, pal.Alpha, 1e-6)
}

func TestZeroFacingThresholdReachesSession(t *testing.T) {
	t.Parallel()
	p, err := LoadFrom(filepath.Join(t.TempDir(), "none.json"), map[string]string{
		"ROAD_EDITOR_FACING_THRESHOLD": "0",
	})
	require.NoError(t, err)
	assert.Zero(t, p.FacingThreshold)

	s := placement.New(placement.Deps{}, p.PlacementConfig())
	assert.Zero(t, s.Config().Snap.FacingThreshold)
	assert.InDelta(t, snap.DefaultRadius, s.Config().Snap.Radius, 1e-6)
}
