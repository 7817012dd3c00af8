package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/covgen/internal/domain/commands"
	"github.com/rios0rios0/covgen/internal/domain/entities"
)

// ReportController handles the "report" subcommand: synthesize a report
// from coverage artifacts that already exist.
type ReportController struct {
	command commands.Report
}

// NewReportController creates a new ReportController.
func NewReportController(command commands.Report) *ReportController {
	return &ReportController{command: command}
}

// GetBind returns the Cobra command metadata for the report controller.
func (it *ReportController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "report [path]",
		Short: "Render a report from existing coverage artifacts",
		Long: `Render a coverage report from annotated .gcov files that already
exist under a directory tree, without building or running anything.`,
	}
}

// Execute runs the report synthesis mode.
func (it *ReportController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = entities.DefaultOutputDir
	}

	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	if err := it.command.Execute(ctx, commands.ReportOptions{
		Path:      path,
		OutputDir: outputDir,
	}); err != nil {
		logger.Errorf("Report synthesis failed: %v", err)
	}
}
