package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command of layoutctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "layoutctl",
		Short: "Render text layouts bound to property files",
		Long: `layoutctl renders layouts containing {Name} placeholders and <b>...</b>
markers against properties read from JSON, YAML or "KEY VALUE" files.
TotalAmount is derived from ItemQuantity * ItemPrice before rendering.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}

			logger := slog.New(slog.NewTextHandler(
				cmd.ErrOrStderr(),
				&slog.HandlerOptions{Level: level},
			))
			slog.SetDefault(logger)
		},
	}

	cmd.PersistentFlags().BoolVarP(
		&opts.Verbose, "verbose", "v", false, "enable verbose logging",
	)

	cmd.AddCommand(NewRenderCommand())
	cmd.AddCommand(NewDeriveCommand())
	cmd.AddCommand(NewPropsCommand())
	cmd.AddCommand(NewInsertCommand())
	cmd.AddCommand(NewBoldCommand())
	cmd.AddCommand(NewSaveCommand())
	cmd.AddCommand(NewOpenCommand())
	cmd.AddCommand(NewServeCommand())

	return cmd
}
