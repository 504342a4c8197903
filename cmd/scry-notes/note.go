package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/export"
	"github.com/phrazzld/scry-notes/internal/service"
	"github.com/spf13/cobra"
)

func noteNotFound(id string) error {
	return fmt.Errorf("note %q not found", id)
}

func newNoteCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "Create, edit and organize notes",
	}

	cmd.AddCommand(
		newNoteListCmd(c),
		newNoteShowCmd(c),
		newNoteCreateCmd(c),
		newNoteEditCmd(c),
		newNoteDeleteCmd(c),
		newNoteShareCmd(c),
		newNotePublicCmd(c),
		newNoteTagCmd(c),
		newNoteUntagCmd(c),
		newNoteSelectCmd(c),
		newNoteCurrentCmd(c),
		newNoteTagsCmd(c),
		newNoteSharedCmd(c),
		newDashboardCmd(c),
	)
	return cmd
}

func newNoteListCmd(c *cli) *cobra.Command {
	var filter service.NoteFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			notes := c.app.Notes.List()
			if filter.Query != "" || len(filter.Tags) > 0 {
				notes = c.app.Notes.Search(filter)
			}
			return c.printNotes(notes)
		},
	}

	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "only notes whose title or content contains this text")
	cmd.Flags().StringArrayVarP(&filter.Tags, "tag", "t", nil, "only notes with this tag (repeatable)")
	return cmd
}

func newNoteShowCmd(c *cli) *cobra.Command {
	var markdown bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			note, ok := c.app.Notes.Get(args[0])
			if !ok {
				return noteNotFound(args[0])
			}
			if markdown {
				data, err := export.MarshalNote(*note)
				if err != nil {
					return err
				}
				_, err = c.out.Write(data)
				return err
			}
			return c.printNote(note)
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "print as markdown with YAML frontmatter")
	return cmd
}

// noteFields are the editable fields shared by create and edit.
type noteFields struct {
	title       string
	content     string
	contentFile string
}

func (f *noteFields) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "note title")
	cmd.Flags().StringVar(&f.content, "content", "", "note content")
	cmd.Flags().StringVar(&f.contentFile, "content-file", "", "read content from a file, - for stdin")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
}

// update builds a NoteUpdate from the flags that were set.
func (f *noteFields) update(c *cli, cmd *cobra.Command) (domain.NoteUpdate, error) {
	var u domain.NoteUpdate
	if cmd.Flags().Changed("title") {
		u.Title = &f.title
	}
	if cmd.Flags().Changed("content") {
		u.Content = &f.content
	}
	if f.contentFile != "" {
		data, err := c.readInput(f.contentFile)
		if err != nil {
			return u, err
		}
		content := string(data)
		u.Content = &content
	}
	return u, nil
}

// readInput reads a file, or standard input for "-".
func (c *cli) readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(c.in)
	}
	return os.ReadFile(path)
}

func newNoteCreateCmd(c *cli) *cobra.Command {
	var fields noteFields

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note owned by the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := fields.update(c, cmd)
			if err != nil {
				return err
			}

			note, err := c.app.Notes.Create(ctx(cmd))
			if err != nil {
				return err
			}
			if note == nil {
				return errNotLoggedIn
			}

			if u.Title != nil || u.Content != nil {
				note, _ = c.app.Notes.Update(ctx(cmd), note.ID, u)
			}
			return c.printNote(note)
		},
	}

	fields.register(cmd)
	return cmd
}

func newNoteEditCmd(c *cli) *cobra.Command {
	var fields noteFields

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a note's title or content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := fields.update(c, cmd)
			if err != nil {
				return err
			}
			if u.Title == nil && u.Content == nil {
				return fmt.Errorf("nothing to change: pass --title, --content or --content-file")
			}

			note, ok := c.app.Notes.Update(ctx(cmd), args[0], u)
			if !ok {
				return noteNotFound(args[0])
			}
			return c.printNote(note)
		},
	}

	fields.register(cmd)
	return cmd
}

func newNoteDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !c.app.Notes.Delete(ctx(cmd), args[0]) {
				return noteNotFound(args[0])
			}
			return nil
		},
	}
}

func newNoteShareCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "share <id> <email>",
		Short: "Share a note with someone by email",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, ok := c.app.Notes.Share(ctx(cmd), args[0], args[1])
			if !ok {
				return noteNotFound(args[0])
			}
			return c.printNote(note)
		},
	}
}

func newNotePublicCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "public <id>",
		Short: "Toggle whether a note is public",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, ok := c.app.Notes.TogglePublic(ctx(cmd), args[0])
			if !ok {
				return noteNotFound(args[0])
			}
			return c.printNote(note)
		},
	}
}

func newNoteTagCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <id> <tag>",
		Short: "Add a tag to a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, added := c.app.Notes.AddTag(ctx(cmd), args[0], args[1])
			switch {
			case added:
				return nil
			case strings.TrimSpace(args[1]) == "":
				return errors.New("tag cannot be empty")
			case note != nil:
				return fmt.Errorf("note %q already has tag %q", args[0], args[1])
			default:
				return noteNotFound(args[0])
			}
		},
	}
}

func newNoteUntagCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "untag <id> <tag>",
		Short: "Remove a tag from a note",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := c.app.Notes.RemoveTag(ctx(cmd), args[0], args[1]); !ok {
				return noteNotFound(args[0])
			}
			return nil
		},
	}
}

func newNoteSelectCmd(c *cli) *cobra.Command {
	var clearCurrent bool

	cmd := &cobra.Command{
		Use:   "select [id]",
		Short: "Make a note the current note",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if clearCurrent {
				c.app.Notes.SetCurrent(ctx(cmd), nil)
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("pass a note id or --clear")
			}
			note, ok := c.app.Notes.Select(ctx(cmd), args[0])
			if !ok {
				return noteNotFound(args[0])
			}
			return c.printNote(note)
		},
	}

	cmd.Flags().BoolVar(&clearCurrent, "clear", false, "clear the current note")
	return cmd
}

func newNoteCurrentCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the current note",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			note, ok := c.app.Notes.Current()
			if !ok {
				return fmt.Errorf("no note is selected")
			}
			return c.printNote(note)
		},
	}
}

func newNoteTagsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List every tag in use",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			tags := c.app.Notes.Tags()
			if c.jsonOutput {
				return c.printJSON(tags)
			}
			for _, t := range tags {
				c.printf("%s\n", t)
			}
			return nil
		},
	}
}

func newNoteSharedCmd(c *cli) *cobra.Command {
	var byMe bool

	cmd := &cobra.Command{
		Use:   "shared",
		Short: "List notes others shared with you, or that you shared",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			user, ok := c.app.Auth.CurrentUser()
			if !ok {
				return errNotLoggedIn
			}
			if byMe {
				return c.printNotes(c.app.Notes.SharedBy(*user))
			}
			return c.printNotes(c.app.Notes.SharedWith(*user))
		},
	}

	cmd.Flags().BoolVar(&byMe, "by-me", false, "list notes you shared instead")
	return cmd
}

func newDashboardCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Summarize the collection",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			stats := c.app.Notes.Dashboard()
			decks := c.app.Flashcards.Stats()
			if c.jsonOutput {
				return c.printJSON(map[string]any{"notes": stats, "decks": decks})
			}

			st := c.styles()
			c.printf("%s\n", st.title.Render("Dashboard"))
			c.printf("Notes:      %d (%d public, %d shared)\n", stats.Total, stats.Public, stats.Shared)
			c.printf("Decks:      %d (%s flashcards)\n", decks.Decks, humanize.Comma(int64(decks.Flashcards)))
			if len(stats.Recent) > 0 {
				c.printf("\n%s\n", st.title.Render("Recent notes"))
				for _, n := range stats.Recent {
					c.printf("  %s  %s\n", n.Title, st.muted.Render(humanize.Time(n.UpdatedAt)))
				}
			}
			return nil
		},
	}
}

func (c *cli) styles() styles {
	return newStyles(c.out, c.app.UI.Preferences())
}

func (c *cli) printNotes(notes []domain.Note) error {
	if c.jsonOutput {
		if notes == nil {
			notes = []domain.Note{}
		}
		return c.printJSON(notes)
	}
	if len(notes) == 0 {
		c.printf("No notes found\n")
		return nil
	}

	rows := make([][]string, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, []string{
			n.ID,
			n.Title,
			strings.Join(n.Tags, ", "),
			humanize.Time(n.UpdatedAt),
		})
	}
	c.printf("%s\n", c.styles().table([]string{"ID", "Title", "Tags", "Updated"}, rows))
	return nil
}

func (c *cli) printNote(n *domain.Note) error {
	if c.jsonOutput {
		return c.printJSON(n)
	}

	st := c.styles()
	visibility := "private"
	if n.IsPublic {
		visibility = "public"
	}

	c.printf("%s\n", st.title.Render(n.Title))
	c.printf("%s\n", st.muted.Render(fmt.Sprintf("%s · %s · updated %s", n.ID, visibility, humanize.Time(n.UpdatedAt))))
	if len(n.Tags) > 0 {
		c.printf("Tags: %s\n", strings.Join(n.Tags, ", "))
	}
	if len(n.SharedWith) > 0 {
		c.printf("Shared with: %s\n", strings.Join(n.SharedWith, ", "))
	}
	if n.Content != "" {
		c.printf("\n%s\n", n.Content)
	}
	return nil
}
