package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/google/uuid"

	"road-editor/internal/logger"
)

// Editor is what the terminal commands drive.
type Editor interface {
	// Place starts previewing the named catalog piece, cancelling any active preview.
	Place(piece string) error
	Rotate(direction int) error
	Finish() error
	Cancel() error
	Remove(id uuid.UUID) error
	// Describe returns one line per committed piece, including its full id.
	Describe() []string
	// Catalog returns the placeable piece names.
	Catalog() []string
	SetGridVisible(visible bool)
	SetShowFPS(show bool)
	SetShowGizmos(show bool)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// RegisterEditor adds the placement commands to r. Command output goes to log.
//
//	cmd place -piece straight
//	cmd rotate [-left]
//	cmd finish | cmd cancel
//	cmd remove -id <uuid>
//	cmd list | cmd pieces
//	cmd grid -visible=false | cmd fps -show | cmd gizmos -show=false
func RegisterEditor(r *Registry, ed Editor, log *logger.Logger) {
	place := newFlagSet("place")
	pieceName := place.String("piece", "straight", "catalog piece to place")
	r.Register("place", place, func() error {
		name := *pieceName
		if place.NArg() > 0 {
			name = place.Arg(0)
		}
		return ed.Place(name)
	})

	rotate := newFlagSet("rotate")
	left := rotate.Bool("left", false, "rotate by minus one step")
	r.Register("rotate", rotate, func() error {
		dir := 1
		if *left {
			dir = -1
		}
		return ed.Rotate(dir)
	})

	r.Register("finish", newFlagSet("finish"), ed.Finish)
	r.Register("cancel", newFlagSet("cancel"), ed.Cancel)

	remove := newFlagSet("remove")
	id := remove.String("id", "", "id of the committed piece")
	r.Register("remove", remove, func() error {
		if *id == "" {
			return errors.New("remove: -id is required")
		}
		parsed, err := uuid.Parse(*id)
		if err != nil {
			return fmt.Errorf("remove: %w", err)
		}
		return ed.Remove(parsed)
	})

	r.Register("list", newFlagSet("list"), func() error {
		lines := ed.Describe()
		if len(lines) == 0 {
			log.Log("no pieces placed")
		}
		for _, l := range lines {
			log.Log(l)
		}
		return nil
	})
	r.Register("pieces", newFlagSet("pieces"), func() error {
		for _, name := range ed.Catalog() {
			log.Log(name)
		}
		return nil
	})

	grid := newFlagSet("grid")
	visible := grid.Bool("visible", true, "show the editor grid")
	r.Register("grid", grid, func() error {
		ed.SetGridVisible(*visible)
		return nil
	})

	fps := newFlagSet("fps")
	showFPS := fps.Bool("show", true, "show the FPS counter")
	r.Register("fps", fps, func() error {
		ed.SetShowFPS(*showFPS)
		return nil
	})

	gizmos := newFlagSet("gizmos")
	showGizmos := gizmos.Bool("show", true, "show connection point gizmos")
	r.Register("gizmos", gizmos, func() error {
		ed.SetShowGizmos(*showGizmos)
		return nil
	})
}
