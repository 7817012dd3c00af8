package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/covgen/internal/domain/commands"
	"github.com/rios0rios0/covgen/internal/domain/entities"
)

// AnalyzeController handles the "analyze" subcommand (inspection only).
type AnalyzeController struct {
	command commands.Analyze
}

// NewAnalyzeController creates a new AnalyzeController.
func NewAnalyzeController(command commands.Analyze) *AnalyzeController {
	return &AnalyzeController{command: command}
}

// GetBind returns the Cobra command metadata for the analyze controller.
func (it *AnalyzeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "analyze [path]",
		Short: "Analyze a local repository's gcov compatibility",
		Long: `Analyze a local repository without modifying it.
Reports the detected languages, build system, and file classification,
and lists every gcov compatibility issue found.`,
	}
}

// Execute runs the analysis mode.
func (it *AnalyzeController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	verbose, _ := cmd.Flags().GetBool("verbose")

	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	if err := it.command.Execute(ctx, commands.AnalyzeOptions{
		Path:    path,
		Verbose: verbose,
	}); err != nil {
		logger.Errorf("Analysis failed: %v", err)
	}
}
