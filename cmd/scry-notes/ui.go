package main

import (
	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/spf13/cobra"
)

func newUICmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Show or toggle display preferences",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return c.printPreferences(c.app.UI.Preferences())
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "dark",
			Short: "Toggle dark mode",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.printPreferences(c.app.UI.ToggleDarkMode(ctx(cmd)))
			},
		},
		&cobra.Command{
			Use:   "sidebar",
			Short: "Toggle the sidebar",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.printPreferences(c.app.UI.ToggleSidebar(ctx(cmd)))
			},
		},
	)
	return cmd
}

func (c *cli) printPreferences(p domain.UIPreferences) error {
	if c.jsonOutput {
		return c.printJSON(p)
	}
	st := newStyles(c.out, p)
	c.printf("%s %s\n", st.title.Render("Dark mode:"), onOff(p.DarkMode))
	c.printf("%s %s\n", st.title.Render("Sidebar:"), onOff(p.SidebarOpen))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
