package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/covgen/internal/domain/commands"
	"github.com/rios0rios0/covgen/internal/domain/entities"
)

// GenerateController handles the root command with a repository argument:
// the full clone-to-report coverage pipeline.
type GenerateController struct {
	command commands.Generate
}

// NewGenerateController creates a new GenerateController.
func NewGenerateController(command commands.Generate) *GenerateController {
	return &GenerateController{command: command}
}

// GetBind returns the Cobra command metadata for the generate controller.
func (it *GenerateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "generate <repository>",
		Short: "Generate a gcov coverage report for a repository",
		Long: `Generate a gcov coverage report for a Git repository URL or local path.
Analyzes the repository, patches its build files when it cannot produce
coverage artifacts as-is (suggestions come from a remote model or a
deterministic fallback), builds with instrumentation, runs the tests,
and renders an HTML report. All patches are rolled back afterwards.`,
	}
}

// Execute runs the full pipeline.
func (it *GenerateController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	verbose, _ := cmd.Flags().GetBool("verbose")
	autoApply, _ := cmd.Flags().GetBool("yes")
	outputDir, _ := cmd.Flags().GetString("output-dir")

	if len(args) == 0 {
		logger.Error("A repository URL or local path is required")
		return
	}

	settings := loadSettings(cmd)

	if err := it.command.Execute(ctx, settings, commands.GenerateOptions{
		Source:    args[0],
		OutputDir: outputDir,
		AutoApply: autoApply,
		Verbose:   verbose,
	}); err != nil {
		logger.Errorf("Coverage report generation failed: %v", err)
		return
	}

	logger.Info("Coverage report generation completed successfully!")
}

// loadSettings resolves the configuration: an explicit --config path, then
// the standard file locations, then the documented defaults.
func loadSettings(cmd *cobra.Command) *entities.Settings {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		found, err := entities.FindConfigFile()
		if err != nil {
			logger.Debug("No config file found, using defaults")
			return entities.DefaultSettings()
		}
		cfgPath = found
	}

	logger.Infof("Using config file: %s", cfgPath)

	settings, err := entities.NewSettings(cfgPath)
	if err != nil {
		logger.Warnf("Failed to load config: %v (using defaults)", err)
		return entities.DefaultSettings()
	}
	return settings
}
