package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/phrazzld/scry-notes/internal/app"
	"github.com/phrazzld/scry-notes/internal/config"
	"github.com/phrazzld/scry-notes/internal/notify"
	"github.com/phrazzld/scry-notes/internal/platform/logger"
	"github.com/phrazzld/scry-notes/internal/redact"
	"github.com/spf13/cobra"
)

// cli carries what every subcommand needs. The application is opened in
// the root's PersistentPreRunE and closed after the command finishes.
type cli struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	dataDir    string
	driver     string
	verbose    bool
	jsonOutput bool

	app  *app.App
	opts []app.Option
}

func newRootCmd(in io.Reader, out, errOut io.Writer, opts ...app.Option) *cobra.Command {
	c := &cli{in: in, out: out, errOut: errOut, opts: opts}

	root := &cobra.Command{
		Use:   "scry-notes",
		Short: "Notes, flashcards and summaries in your terminal",
		Long: `scry-notes keeps a collection of notes, turns them into flashcard
decks and summarizes text. State lives in the configured store
(a data directory by default) and is shared with the scry-notes server.`,
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  c.open,
		PersistentPostRunE: c.close,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default: ./config.yaml or ~/.scry-notes/config.yaml)")
	flags.StringVar(&c.dataDir, "data-dir", "", "data directory for the file and sqlite drivers")
	flags.StringVar(&c.driver, "driver", "", "storage driver: memory, file, sqlite or redis")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&c.jsonOutput, "json", false, "print results as JSON")

	root.AddCommand(
		newRegisterCmd(c),
		newLoginCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newNoteCmd(c),
		newDeckCmd(c),
		newSummarizeCmd(c),
		newUICmd(c),
		newExportCmd(c),
		newImportCmd(c),
	)

	return root
}

func (c *cli) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFile(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if c.driver != "" {
		cfg.Storage.Driver = c.driver
	}
	if c.dataDir != "" {
		cfg.Storage.Dir = c.dataDir
		cfg.Storage.SQLitePath = filepath.Join(c.dataDir, "scry-notes.db")
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *cli) open(cmd *cobra.Command, _ []string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := "warn"
	if c.verbose {
		level = "debug"
	}
	log, err := logger.Setup(logger.LoggerConfig{Level: level, Format: "text", Output: c.errOut})
	if err != nil {
		return err
	}

	opts := append([]app.Option{app.WithNotifier(notify.NewWriterSink(c.errOut))}, c.opts...)
	c.app, err = app.New(cmd.Context(), cfg, log, opts...)
	if err != nil {
		return err
	}

	if err := c.app.Load(cmd.Context()); err != nil {
		log.Warn("some state could not be restored", redact.ErrorAttr(err))
	}
	return nil
}

func (c *cli) close(*cobra.Command, []string) error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

// printJSON writes v indented.
func (c *cli) printJSON(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// ctx returns the command context, which cobra leaves nil outside Execute.
func ctx(cmd *cobra.Command) context.Context {
	if cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
