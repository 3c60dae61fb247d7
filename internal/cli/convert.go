package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/CollageCut/internal/project"
)

func newConvertCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "convert [layout] [project]",
		Short: "Import a CSV, Excel, DXF or TOML layout and save it as a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadLayout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if name != "" {
				proj.Name = name
			}
			if err := project.Save(args[1], proj); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSuccess(out, "Converted %d cells", len(proj.Cells))
			printFile(out, args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "project name (default: the input file name)")
	return cmd
}
