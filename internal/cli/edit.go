package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CollageCut/internal/engine"
	"github.com/piwi3910/CollageCut/internal/model"
)

func newSplitCmd() *cobra.Command {
	var cellID, axisName, output string

	cmd := &cobra.Command{
		Use:   "split [file]",
		Short: "Split a cell in half",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, err := model.ParseAxis(axisName)
			if err != nil {
				return err
			}
			var split model.Cell
			target, err := editProject(cmd.Context(), args[0], output, func(c *engine.Collage) error {
				cell, err := selectCell(c, cellID)
				if err != nil {
					return err
				}
				if !c.SplitSelectedCell(axis) {
					return fmt.Errorf("cannot split cell %s %s: halves would be below the minimum size", cell.ID, axis)
				}
				split = cell
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Split %s %s", split.ID, axis)
			printFile(cmd.OutOrStdout(), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&cellID, "cell", "", "cell to split (default: the selected cell)")
	cmd.Flags().StringVar(&axisName, "axis", "vertical", "dividing line: vertical (left/right) or horizontal (top/bottom)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the project here instead of in place")
	return cmd
}

func newMergeCmd() *cobra.Command {
	var cellID, output string

	cmd := &cobra.Command{
		Use:   "merge [file]",
		Short: "Remove a cell by growing its neighbours over it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var merged model.Cell
			target, err := editProject(cmd.Context(), args[0], output, func(c *engine.Collage) error {
				cell, err := selectCell(c, cellID)
				if err != nil {
					return err
				}
				if !c.MergeSelectedCell() {
					return fmt.Errorf("cannot merge cell %s: no neighbour can take its place", cell.ID)
				}
				merged = cell
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Merged %s", merged.ID)
			printFile(cmd.OutOrStdout(), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&cellID, "cell", "", "cell to merge away (default: the selected cell)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the project here instead of in place")
	return cmd
}

func newResizeCmd() *cobra.Command {
	var cellID, gripName, output string
	var value float64

	cmd := &cobra.Command{
		Use:   "resize [file]",
		Short: "Move one edge of a cell, with every cell sharing its line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grip, err := model.ParseGrip(gripName)
			if err != nil {
				return err
			}
			var resized model.Cell
			target, err := editProject(cmd.Context(), args[0], output, func(c *engine.Collage) error {
				cell, err := selectCell(c, cellID)
				if err != nil {
					return err
				}
				if !c.ChangeSelectedCellSize(grip, value) {
					return fmt.Errorf("cannot move the %s edge of cell %s by %g", grip, cell.ID, value)
				}
				resized, _ = c.Selected()
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Resized %s to %s", resized.ID, resized.Frame)
			printFile(cmd.OutOrStdout(), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&cellID, "cell", "", "cell to resize (default: the selected cell)")
	cmd.Flags().StringVar(&gripName, "grip", "", "edge to move: left, right, top or bottom")
	cmd.Flags().Float64Var(&value, "value", 0, "signed distance as a fraction of the canvas")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the project here instead of in place")
	_ = cmd.MarkFlagRequired("grip")
	_ = cmd.MarkFlagRequired("value")
	return cmd
}

func newResetCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "reset [file]",
		Short: "Restore a project to its initial layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := editProject(cmd.Context(), args[0], output, func(c *engine.Collage) error {
				c.Reset()
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Reset to the initial layout")
			printFile(cmd.OutOrStdout(), target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the project here instead of in place")
	return cmd
}
