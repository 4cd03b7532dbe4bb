package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"road-editor/internal/dotenv"
	"road-editor/internal/engineconfig"
	"road-editor/internal/piece"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "road-editor",
		Short:         "Modular road placement editor",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd, false)
		},
	}
	root.PersistentFlags().String("config", engineconfig.EditorConfigPath, "editor preferences file")
	root.PersistentFlags().String("env-file", ".env", "KEY=VALUE file read before the process environment")
	root.AddCommand(newRunCmd(), newCatalogCmd())
	return root
}

// loadPrefs reads the preferences named by --config plus ROAD_EDITOR_* overrides from the env
// file and the process environment.
func loadPrefs(cmd *cobra.Command) (engineconfig.Prefs, string, error) {
	path, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	environ, err := dotenv.Environ(envFile)
	if err != nil {
		return engineconfig.Default(), path, fmt.Errorf("read %s: %w", envFile, err)
	}
	prefs, err := engineconfig.LoadFrom(path, environ)
	if err != nil {
		return prefs, path, fmt.Errorf("load %s: %w", path, err)
	}
	return prefs, path, nil
}

// loadCatalog reads path, or the built-in catalog when path is empty.
func loadCatalog(path string) (*piece.Catalog, error) {
	if path == "" {
		return piece.DefaultCatalog()
	}
	return piece.LoadCatalog(path)
}
