package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/piwi3910/CollageCut/internal/engine"
	"github.com/piwi3910/CollageCut/internal/model"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "List the cells of a project or layout file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadLayout(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printInspect(cmd.OutOrStdout(), proj)
			return nil
		},
	}
}

func printInspect(w io.Writer, proj model.Project) {
	fmt.Fprintln(w, styleTitle.Render(proj.Name))
	printKeyValue(w, "Cells", fmt.Sprintf("%d", len(proj.Cells)))
	if proj.SelectedID != "" {
		printKeyValue(w, "Selected", proj.SelectedID)
	}
	status := "valid"
	if err := engine.Validate(proj.Cells); err != nil {
		status = err.Error()
	}
	printKeyValue(w, "Layout", status)

	rows := make([][]string, 0, len(proj.Cells))
	for _, c := range proj.Cells {
		grips := make([]string, 0, 4)
		for _, g := range c.Grips() {
			grips = append(grips, g.String())
		}
		marker := ""
		if c.ID == proj.SelectedID {
			marker = "*"
		}
		rows = append(rows, []string{
			marker,
			c.ID,
			c.Label,
			fmt.Sprintf("%.4f", c.Frame.X),
			fmt.Sprintf("%.4f", c.Frame.Y),
			fmt.Sprintf("%.4f", c.Frame.Width),
			fmt.Sprintf("%.4f", c.Frame.Height),
			strings.Join(grips, ","),
			c.Payload.Color.String(),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Label", "X", "Y", "Width", "Height", "Grips", "Colour").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(w, t.String())
}
