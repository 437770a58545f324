package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/byte4ever/layout_designer/properties"
	"github.com/byte4ever/layout_designer/propsource"
)

// NewPropsCommand creates the props command.
func NewPropsCommand() *cobra.Command {
	var propsPath string

	cmd := &cobra.Command{
		Use:   "props",
		Short: "List properties in file order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := propsource.Open(propsPath)
			if err != nil {
				return fmt.Errorf("listing properties: %w", err)
			}

			return listProps(cmd.OutOrStdout(), st)
		},
	}

	cmd.Flags().StringVarP(
		&propsPath, "props", "p", "", "property file",
	)

	return cmd
}

// NewDeriveCommand creates the derive command.
func NewDeriveCommand() *cobra.Command {
	var (
		propsPath string
		write     bool
	)

	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Compute TotalAmount and print the properties",
		Long: `Compute TotalAmount = ItemQuantity * ItemPrice and print the resulting
properties as JSON. With --write the property file is updated in place.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDerive(cmd.OutOrStdout(), propsPath, write)
		},
	}

	cmd.Flags().StringVarP(
		&propsPath, "props", "p", "", "property file",
	)
	cmd.Flags().BoolVar(
		&write, "write", false, "write the result back to the property file",
	)

	return cmd
}

func runDerive(out io.Writer, propsPath string, write bool) error {
	const errCtx = "deriving"

	st, err := propsource.Open(propsPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := st.DeriveTotal(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if write {
		if err := propsource.Write(propsPath, st); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	enc, err := propsource.Encode(st.All(), propsource.FormatJSON)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if _, err := out.Write(enc); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func listProps(out io.Writer, st *properties.Store) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	for _, pr := range st.All() {
		fmt.Fprintf(tw, "%s\t%s\n", pr.Name, properties.Text(pr.Value))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("listing properties: %w", err)
	}

	return nil
}
