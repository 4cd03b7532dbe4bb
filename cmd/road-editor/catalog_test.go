package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"road-editor/internal/piece"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCatalogListBuiltIn(t *testing.T) {
	t.Parallel()
	out, err := execute(t, "catalog", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "straight")
	assert.Contains(t, out, "intersection")
}

func TestCatalogValidate(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`pieces:
  - name: ramp
    kind: straight
    size: [1, 0.2, 2]
    points:
      - name: low
        offset: [0, 0, -1]
        forward: [0, 0, -1]
`), 0644))
	out, err := execute(t, "catalog", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "1 pieces ok")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`pieces:
  - name: flat
    size: [1, 0, 1]
`), 0644))
	_, err = execute(t, "catalog", "validate", bad)
	assert.ErrorIs(t, err, piece.ErrInvalidSpec)

	_, err = execute(t, "catalog", "validate")
	assert.Error(t, err)
}
