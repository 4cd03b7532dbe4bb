package main

import (
	"github.com/spf13/cobra"

	"road-editor/internal/commands"
	"road-editor/internal/editor"
	"road-editor/internal/engineconfig"
	"road-editor/internal/graphics"
	"road-editor/internal/logger"
	"road-editor/internal/terminal"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the interactive editor window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fullscreen, _ := cmd.Flags().GetBool("fullscreen")
			return runEditor(cmd, fullscreen)
		},
	}
	cmd.Flags().Bool("fullscreen", false, "open fullscreen on the primary monitor")
	cmd.Flags().String("catalog", "", "piece catalog YAML (default: built-in pieces)")
	return cmd
}

func runEditor(cmd *cobra.Command, fullscreen bool) error {
	prefs, prefsPath, err := loadPrefs(cmd)
	if err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("catalog"); f != nil && f.Changed {
		prefs.Catalog = f.Value.String()
	}
	cat, err := loadCatalog(prefs.Catalog)
	if err != nil {
		return err
	}

	log := logger.New(prefs.LogPath)
	ed, err := editor.New(editor.Options{Prefs: prefs, Catalog: cat, Log: log})
	if err != nil {
		return err
	}
	reg := commands.NewRegistry()
	commands.RegisterEditor(reg, ed, log)
	term := terminal.New(log, reg)
	log.Logf("loaded %d pieces; press 1-%d to place, T for the terminal", len(cat.Specs()), min(len(cat.Specs()), 9))

	update := func() {
		term.Update()
		ed.Update(term.IsOpen())
	}
	draw := func() {
		ed.Draw()
		term.Draw()
	}
	graphics.Run(graphics.Window{Title: "Road Editor", Width: 1280, Height: 800, Fullscreen: fullscreen}, update, draw)
	ed.Close()
	return engineconfig.SaveTo(prefsPath, ed.Prefs())
}
