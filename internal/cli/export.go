package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/piwi3910/CollageCut/internal/export"
	"github.com/piwi3910/CollageCut/internal/model"
	"github.com/piwi3910/CollageCut/internal/project"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	pdf     string  // poster PDF output path
	labels  string  // labels PDF output path
	dxf     string  // DXF output path
	xlsx    string  // Excel output path
	title   string  // poster title
	width   float64 // physical poster width in mm
	height  float64 // physical poster height in mm
	dxfSize float64 // DXF canvas size in mm
}

func newExportCmd() *cobra.Command {
	var opts exportOpts

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a layout as PDF poster, labels, DXF or Excel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.pdf == "" && opts.labels == "" && opts.dxf == "" && opts.xlsx == "" {
				return errors.New("nothing to export: pass --pdf, --labels, --dxf or --xlsx")
			}
			return runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "write a PDF poster to this path")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "write QR-coded cell labels to this path")
	cmd.Flags().StringVar(&opts.dxf, "dxf", "", "write cell outlines as DXF to this path")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "write the cell sheet as Excel to this path")
	cmd.Flags().StringVar(&opts.title, "title", "", "poster title (default: the project name)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "physical poster width in mm")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "physical poster height in mm")
	cmd.Flags().Float64Var(&opts.dxfSize, "dxf-size", 0, "DXF canvas size in mm (default: from config)")

	return cmd
}

func runExport(cmd *cobra.Command, path string, opts exportOpts) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	proj, err := loadLayout(ctx, path)
	if err != nil {
		return err
	}
	cfg := effectiveConfig(ctx)

	if opts.pdf != "" {
		title := opts.title
		if title == "" {
			title = proj.Name
		}
		poster := export.PosterOptionsFromConfig(title, cfg)
		poster.Width, poster.Height = opts.width, opts.height
		if err := export.ExportPDF(opts.pdf, proj.Cells, poster); err != nil {
			return err
		}
		printFile(out, opts.pdf)
	}

	if opts.labels != "" {
		if err := export.ExportLabels(opts.labels, proj.Cells); err != nil {
			return err
		}
		printFile(out, opts.labels)
	}

	if opts.dxf != "" {
		dxfOpts := export.DXFOptionsFromConfig(cfg)
		if opts.dxfSize > 0 {
			dxfOpts.Size = opts.dxfSize
		}
		if err := export.ExportDXF(opts.dxf, proj.Cells, dxfOpts); err != nil {
			return err
		}
		printFile(out, opts.dxf)
	}

	if opts.xlsx != "" {
		if err := export.ExportExcel(opts.xlsx, proj.Cells); err != nil {
			return err
		}
		printFile(out, opts.xlsx)
	}

	printSuccess(out, "Exported %d cells", len(proj.Cells))
	return nil
}

// effectiveConfig loads the app config, falling back to defaults with a
// warning when it cannot be read.
func effectiveConfig(ctx context.Context) model.AppConfig {
	cfg, err := project.LoadEffectiveConfig()
	if err != nil {
		loggerFromContext(ctx).Warn("using default settings", "err", err)
	}
	return cfg
}
