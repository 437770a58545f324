package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/byte4ever/layout_designer/edit"
	"github.com/byte4ever/layout_designer/layoutfile"
)

// NewInsertCommand creates the insert command.
func NewInsertCommand() *cobra.Command {
	var (
		pos  int
		name string
	)

	cmd := &cobra.Command{
		Use:   "insert <layout>",
		Short: "Insert a {Name} placeholder into a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return editLayout(args[0], func(text string) (string, error) {
				if pos < 0 {
					pos = len([]rune(text))
				}

				return edit.InsertPlaceholder(text, pos, name)
			})
		},
	}

	cmd.Flags().IntVar(
		&pos, "pos", -1, "rune offset of the cursor (default: end)",
	)
	cmd.Flags().StringVar(&name, "name", "", "property name")
	_ = cmd.MarkFlagRequired("name") //nolint:errcheck // flag exists

	return cmd
}

// NewBoldCommand creates the bold command.
func NewBoldCommand() *cobra.Command {
	var start, end int

	cmd := &cobra.Command{
		Use:   "bold <layout>",
		Short: "Wrap a range of a layout in <b>...</b>",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return editLayout(args[0], func(text string) (string, error) {
				return edit.Embolden(text, start, end)
			})
		},
	}

	cmd.Flags().IntVar(&start, "start", 0, "rune offset where the selection starts")
	cmd.Flags().IntVar(&end, "end", 0, "rune offset where the selection ends")

	return cmd
}

// NewSaveCommand creates the save command.
func NewSaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <layout>",
		Short: "Save a layout read from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("saving layout: reading stdin: %w", err)
			}

			return layoutfile.Save(args[0], string(content))
		},
	}
}

// NewOpenCommand creates the open command.
func NewOpenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <layout>",
		Short: "Print a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lay, err := layoutfile.Open(args[0])
			if err != nil {
				return err
			}

			if _, err := io.WriteString(cmd.OutOrStdout(), lay.Content); err != nil {
				return fmt.Errorf("printing layout: %w", err)
			}

			return nil
		},
	}
}

func editLayout(path string, change func(string) (string, error)) error {
	const errCtx = "editing layout"

	lay, err := layoutfile.Open(path)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	updated, err := change(lay.Content)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if updated == lay.Content {
		slog.Info("layout unchanged", "path", path)
		return nil
	}

	if err := layoutfile.Save(path, updated); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
