package main

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newSummarizeCmd(c *cli) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "summarize [text...]",
		Short: "Summarize text from the arguments or standard input",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if len(args) == 0 {
				data, err := io.ReadAll(c.in)
				if err != nil {
					return err
				}
				text = string(data)
			}

			summary, err := c.app.Summaries.Summarize(ctx(cmd), text)
			if err != nil {
				return err
			}

			if !save {
				if c.jsonOutput {
					return c.printJSON(map[string]string{"summary": summary})
				}
				c.printf("%s\n", summary)
				return nil
			}

			note, err := c.app.Summaries.SaveAsNote(ctx(cmd), summary)
			if err != nil {
				return err
			}
			return c.printNote(note)
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "save the summary as a new note")
	return cmd
}
