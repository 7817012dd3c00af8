package main

import (
	"os"

	"github.com/joho/godotenv"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/covgen/internal"
	"github.com/rios0rios0/covgen/internal/infrastructure/controllers"
)

func buildRootCommand(generateController *controllers.GenerateController) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "covgen [repository]",
		Short: "LLM-assisted Gcov coverage report generator",
		Long: `Analyzes a C/C++ repository, decides whether it can produce Gcov coverage
as-is, applies reversible build-file modifications when it cannot, then builds,
runs the tests and synthesizes an HTML coverage report.

Usage modes:
  covgen .                   Generate coverage for the current repository
  covgen /path/to/repo       Generate coverage for a local repository
  covgen https://host/r.git  Clone a remote repository and generate coverage
  covgen analyze [path]      Only analyze and report compatibility issues`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			if len(args) == 0 {
				return command.Help()
			}
			generateController.Execute(command, args)
			return nil
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("output-dir", "",
		"Directory for generated coverage reports")
	cmd.PersistentFlags().BoolP("yes", "y", false,
		"Apply suggested build modifications without prompting")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Run: func(command *cobra.Command, arguments []string) {
				ctrl.Execute(command, arguments)
			},
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Load environment from a local .env file when present
	_ = godotenv.Load()

	// Inject controllers via DIG
	generateController := injectGenerateController()
	cobraRoot := buildRootCommand(generateController)

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'covgen': %s", err)
	}
}
