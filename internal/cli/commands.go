package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/odysseus0/ankiconv/internal/config"
	"github.com/odysseus0/ankiconv/internal/docio"
)

// Execute runs the command built by newCmd.
func Execute(newCmd func(*config.Config) *cobra.Command) error {
	return withConfig(newCmd).Execute()
}

// withConfig loads the configuration after flags are parsed, so --help works
// even when the config file is broken.
func withConfig(newCmd func(*config.Config) *cobra.Command) *cobra.Command {
	cfg := config.Default()
	cmd := newCmd(&cfg)
	cmd.PersistentPreRunE = func(*cobra.Command, []string) error {
		loaded, err := config.LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	}
	return cmd
}

func NewConvertCmd(cfg *config.Config) *cobra.Command {
	var debug bool
	cmd := newFileCmd(&cobra.Command{
		Use:   "anki-convert [--debug] <file>",
		Short: "Convert an HTML file into Anki note text",
		Long: "Flattens the body of an HTML file into note text and writes it next to the input " +
			"with the configured suffix. Line breaks become the configured break tag unless --debug is set.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp(*cfg, cmd.ErrOrStderr(), debug)
			_, err := app.Convert(args[0], debug)
			return err
		},
	})
	cmd.Flags().BoolVar(&debug, "debug", false, "Keep real line breaks in the output and log verbosely")
	return cmd
}

func NewJoinCmd(cfg *config.Config) *cobra.Command {
	var debug bool
	cmd := newFileCmd(&cobra.Command{
		Use:   "group-lines [--debug] <file>",
		Short: "Join hard-wrapped paragraphs into single lines",
		Long: "Replaces the line breaks inside each paragraph of a text file with spaces, rejoins words " +
			"split by a trailing hyphen, and writes the result next to the input with the configured suffix.",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp(*cfg, cmd.ErrOrStderr(), debug)
			_, err := app.Join(args[0])
			return err
		},
	})
	cmd.Flags().BoolVar(&debug, "debug", false, "Log verbosely")
	return cmd
}

func NewPreviewCmd(cfg *config.Config) *cobra.Command {
	var debug bool
	cmd := newFileCmd(&cobra.Command{
		Use:   "anki-preview [--debug] <file>",
		Short: "Print an HTML file's body as Markdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp(*cfg, cmd.ErrOrStderr(), debug)
			return app.Preview(args[0], cmd.OutOrStdout())
		},
	})
	cmd.Flags().BoolVar(&debug, "debug", false, "Log verbosely")
	return cmd
}

func newFileCmd(cmd *cobra.Command) *cobra.Command {
	cmd.Args = requireInputPath
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", docio.ErrInvalidInput, err)
	})
	return cmd
}

func requireInputPath(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		return fmt.Errorf("%w: %v", docio.ErrInvalidInput, err)
	}
	return nil
}
