package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CollageCut/internal/engine"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a project or layout file covers the canvas exactly",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			proj, err := loadLayout(cmd.Context(), args[0])
			if err != nil {
				printError(out, "%s", err)
				return err
			}
			if err := engine.Validate(proj.Cells); err != nil {
				printError(out, "%s: %s", args[0], err)
				return fmt.Errorf("%s: %w", args[0], err)
			}
			printSuccess(out, "%s: valid layout with %d cells", args[0], len(proj.Cells))
			return nil
		},
	}
}
