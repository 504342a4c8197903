package main

import (
	"github.com/phrazzld/scry-notes/internal/export"
	"github.com/spf13/cobra"
)

func newExportCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write every note to a directory as Markdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			paths, err := export.WriteDir(args[0], c.app.Notes.List())
			if err != nil {
				return err
			}
			if c.jsonOutput {
				return c.printJSON(paths)
			}
			c.printf("Exported %d notes to %s\n", len(paths), args[0])
			return nil
		},
	}
}

func newImportCmd(c *cli) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "import <dir>",
		Short: "Import Markdown notes from a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.app.Auth.IsAuthenticated() {
				return errNotLoggedIn
			}

			notes, err := export.ReadDir(ctx(cmd), args[0], pattern)
			if err != nil {
				return err
			}
			n := c.app.Notes.Import(ctx(cmd), notes)
			if c.jsonOutput {
				return c.printJSON(map[string]int{"imported": n})
			}
			c.printf("Imported %d notes\n", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", export.DefaultPattern, "glob of files to import, relative to dir")
	return cmd
}
