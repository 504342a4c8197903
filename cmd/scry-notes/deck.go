package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/study"
	"github.com/spf13/cobra"
)

func newDeckCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deck",
		Aliases: []string{"decks"},
		Short:   "Generate and study flashcard decks",
	}

	cmd.AddCommand(
		newDeckGenerateCmd(c),
		newDeckListCmd(c),
		newDeckShowCmd(c),
		newDeckStudyCmd(c),
		newDeckResetCmd(c),
	)
	return cmd
}

func newDeckGenerateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "generate <note-id>",
		Short: "Turn a note into a flashcard deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, err := c.app.Flashcards.Generate(ctx(cmd), args[0])
			if err != nil {
				return err
			}
			if deck == nil {
				return noteNotFound(args[0])
			}
			return c.printDeck(deck)
		},
	}
}

func newDeckListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List decks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			decks := c.app.Flashcards.Decks()
			if c.jsonOutput {
				if decks == nil {
					decks = []domain.FlashcardDeck{}
				}
				return c.printJSON(decks)
			}
			if len(decks) == 0 {
				c.printf("No decks yet. Generate one with: scry-notes deck generate <note-id>\n")
				return nil
			}

			rows := make([][]string, 0, len(decks))
			for _, d := range decks {
				rows = append(rows, []string{
					d.ID,
					d.Name,
					fmt.Sprint(len(d.Flashcards)),
					humanize.Time(d.CreatedAt),
				})
			}
			c.printf("%s\n", c.styles().table([]string{"ID", "Name", "Cards", "Created"}, rows))
			return nil
		},
	}
}

func newDeckShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print a deck, or the current deck without an id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			deck, err := c.findDeck(args)
			if err != nil {
				return err
			}
			return c.printDeck(deck)
		},
	}
}

func newDeckResetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete every deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Flashcards.Reset(ctx(cmd))
			return nil
		},
	}
}

func newDeckStudyCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "study [id]",
		Short: "Study a deck one card at a time",
		Long: `Study a deck one card at a time. Read commands from standard input:

  enter or f  flip the card
  n           next card (marks the current one complete)
  p           previous card
  r           start over
  q           quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, err := c.findDeck(args)
			if err != nil {
				return err
			}
			c.app.Flashcards.SetCurrent(ctx(cmd), deck)

			session, err := study.NewSession(deck)
			if err != nil {
				return err
			}
			return c.study(session)
		},
	}
}

// findDeck resolves the deck named by args, or the current deck.
func (c *cli) findDeck(args []string) (*domain.FlashcardDeck, error) {
	if len(args) == 0 {
		deck, ok := c.app.Flashcards.Current()
		if !ok {
			return nil, fmt.Errorf("no deck is selected")
		}
		return deck, nil
	}
	deck, ok := c.app.Flashcards.Deck(args[0])
	if !ok {
		return nil, fmt.Errorf("deck %q not found", args[0])
	}
	return deck, nil
}

func (c *cli) study(s *study.Session) error {
	st := c.styles()
	scanner := bufio.NewScanner(c.in)

	c.printf("%s\n", st.title.Render(s.Deck().Name))
	c.renderCard(st, s)

	for scanner.Scan() {
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "", "f", "flip":
			s.Flip()
		case "n", "next":
			s.Next()
		case "p", "prev", "previous":
			s.Previous()
		case "r", "reset":
			s.Reset()
		case "q", "quit":
			c.printf("Completed %d of %d cards\n", s.Completed(), s.Len())
			return nil
		default:
			c.printf("%s\n", st.muted.Render("f flip · n next · p previous · r reset · q quit"))
			continue
		}

		if s.Done() {
			c.printf("%s\n", st.title.Render(fmt.Sprintf("Deck complete: all %d cards studied", s.Len())))
			return nil
		}
		c.renderCard(st, s)
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	c.printf("Completed %d of %d cards\n", s.Completed(), s.Len())
	return nil
}

func (c *cli) renderCard(st styles, s *study.Session) {
	card := s.Card()
	side, text := "Question", card.Front
	if s.ShowingAnswer() {
		side, text = "Answer", card.Back
	}

	header := st.muted.Render(fmt.Sprintf("Card %d of %d · %s · %d%% complete",
		s.Index()+1, s.Len(), side, s.Progress()))
	c.printf("%s\n%s\n", header, st.card.Render(text))
}

func (c *cli) printDeck(d *domain.FlashcardDeck) error {
	if c.jsonOutput {
		return c.printJSON(d)
	}

	st := c.styles()
	c.printf("%s\n", st.title.Render(d.Name))
	c.printf("%s\n", st.muted.Render(fmt.Sprintf("%s · %d cards · from note %s", d.ID, len(d.Flashcards), d.NoteID)))

	rows := make([][]string, 0, len(d.Flashcards))
	for i, card := range d.Flashcards {
		rows = append(rows, []string{fmt.Sprint(i + 1), card.Front, card.Back})
	}
	if len(rows) > 0 {
		c.printf("%s\n", st.table([]string{"#", "Front", "Back"}, rows))
	}
	return nil
}
