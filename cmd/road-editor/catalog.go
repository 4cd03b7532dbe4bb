package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect piece catalogs",
	}
	cmd.AddCommand(newCatalogListCmd(), newCatalogValidateCmd())
	return cmd
}

func newCatalogListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [file]",
		Short: "List the pieces of a catalog (default: built-in pieces)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			cat, err := loadCatalog(path)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tLANES\tGRID\tSTEP\tPOINTS")
			for _, s := range cat.Specs() {
				fmt.Fprintf(w, "%s\t%s\t%d\t%g\t%g\t%d\n", s.Name, s.Kind, s.Lanes, s.GridSize, s.RotationStep, len(s.Points))
			}
			return w.Flush()
		},
	}
	return cmd
}

func newCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a catalog file for malformed pieces",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d pieces ok\n", args[0], len(cat.Specs()))
			return nil
		},
	}
}
