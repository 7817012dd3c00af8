package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
	"github.com/rios0rios0/covgen/internal/infrastructure/repositories/suggest"
)

// maxExcerptFileSize caps the build files handed to the suggestion provider.
const maxExcerptFileSize = 10000

// maxExcerptFiles caps how many build files are handed over.
const maxExcerptFiles = 3

// ErrModificationsDeclined is returned when the user rejects the suggested
// modification plan.
var ErrModificationsDeclined = errors.New("modifications declined by user")

// Generate is the interface for the generate command (full pipeline).
type Generate interface {
	Execute(ctx context.Context, settings *entities.Settings, opts GenerateOptions) error
}

// GenerateOptions holds runtime options for one pipeline run.
type GenerateOptions struct {
	Source    string // repository URL or local path
	OutputDir string // overrides the configured output directory when set
	AutoApply bool   // apply suggested modifications without confirmation
	Verbose   bool
}

// GenerateCommand runs the full coverage pipeline: fetch -> analyze ->
// check -> (suggest -> apply) -> build -> test -> extract -> parse ->
// render. A single sequential run; the patch transaction is rolled back
// exactly once on every exit path after a (possibly partial) apply.
type GenerateCommand struct {
	analyzer    domainRepos.AnalyzerRepository
	compat      domainRepos.CompatibilityRepository
	patch       domainRepos.PatchRepository
	coverage    domainRepos.CoverageRepository
	report      domainRepos.ReportRepository
	source      domainRepos.SourceRepository
	toolchain   domainRepos.ToolchainRepository
	suggestions *suggest.Registry

	// Input is read for the interactive confirmation prompt.
	Input io.Reader
}

// NewGenerateCommand creates a new GenerateCommand with its collaborators.
func NewGenerateCommand(
	analyzer domainRepos.AnalyzerRepository,
	compat domainRepos.CompatibilityRepository,
	patch domainRepos.PatchRepository,
	coverage domainRepos.CoverageRepository,
	report domainRepos.ReportRepository,
	source domainRepos.SourceRepository,
	toolchain domainRepos.ToolchainRepository,
	suggestions *suggest.Registry,
) *GenerateCommand {
	return &GenerateCommand{
		analyzer:    analyzer,
		compat:      compat,
		patch:       patch,
		coverage:    coverage,
		report:      report,
		source:      source,
		toolchain:   toolchain,
		suggestions: suggestions,
		Input:       os.Stdin,
	}
}

// Execute runs the pipeline for one repository.
func (it *GenerateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts GenerateOptions,
) error {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	repoPath, cleanup, err := it.source.Fetch(ctx, opts.Source)
	if err != nil {
		return fmt.Errorf("failed to fetch repository: %w", err)
	}
	defer cleanup()

	logger.Info("Analyzing repository structure...")
	analysis, analyzeErr := it.analyzer.Analyze(repoPath)
	if analyzeErr != nil {
		return fmt.Errorf("analysis failed: %w", analyzeErr)
	}
	logAnalysis(analysis)

	logger.Info("Checking Gcov compatibility...")
	compatible, issues := it.compat.Check(repoPath, analysis)

	outputDir := opts.OutputDir
	if outputDir == "" {
		outputDir = settings.OutputDir
	}

	if compatible {
		logger.Info("Repository is Gcov-compatible")
		return it.produceReport(ctx, repoPath, analysis, nil, outputDir)
	}

	logger.Warn("Repository is NOT Gcov-compatible. Issues found:")
	for _, issue := range issues {
		logger.Warnf("  - %s", issue)
	}

	plan := it.suggestPlan(ctx, settings, repoPath, analysis, issues)
	logger.Infof("Suggested modifications: %s", plan.Explanation)

	if !it.confirmPlan(plan, opts.AutoApply || settings.AutoApply) {
		return ErrModificationsDeclined
	}

	logger.Info("Applying temporary modifications...")
	records, applyErr := it.patch.Apply(repoPath, plan)
	// The record sequence is consumed exactly once, on every exit path,
	// including partial applies and build failures.
	defer it.patch.Rollback(records)
	if applyErr != nil {
		return fmt.Errorf("failed to apply modification plan: %w", applyErr)
	}

	return it.produceReport(ctx, repoPath, analysis, plan, outputDir)
}

// produceReport is the shared back half of the pipeline: instrumented
// build, test run, gcov extraction, parsing, and rendering.
func (it *GenerateCommand) produceReport(
	ctx context.Context,
	repoPath string,
	analysis *entities.RepositoryAnalysis,
	plan *entities.ModificationPlan,
	outputDir string,
) error {
	if err := it.toolchain.BuildWithCoverage(ctx, repoPath, analysis, plan); err != nil {
		return fmt.Errorf("failed to build with coverage: %w", err)
	}

	it.toolchain.RunTests(ctx, repoPath)

	if err := it.toolchain.ExtractCoverage(ctx, repoPath, analysis, plan); err != nil {
		return fmt.Errorf("failed to extract coverage data: %w", err)
	}

	artifacts, err := it.coverage.DiscoverArtifacts(repoPath)
	if err != nil {
		return err
	}
	if len(artifacts) == 0 {
		return errors.New("no annotated coverage artifacts were produced")
	}

	model, parseErr := it.coverage.ParseAnnotatedFiles(artifacts)
	if parseErr != nil {
		return parseErr
	}

	if renderErr := it.report.Render(ctx, repoPath, model, outputDir); renderErr != nil {
		return fmt.Errorf("failed to render report: %w", renderErr)
	}

	logger.Infof(
		"Overall coverage: %.1f%% (%d/%d lines)",
		model.Percentage, model.CoveredLines, model.TotalLines,
	)
	return nil
}

// suggestPlan resolves the configured provider and degrades to the
// deterministic fallback on any failure; it always yields a valid plan.
func (it *GenerateCommand) suggestPlan(
	ctx context.Context,
	settings *entities.Settings,
	repoPath string,
	analysis *entities.RepositoryAnalysis,
	issues []string,
) *entities.ModificationPlan {
	buildFiles := readBuildFileExcerpts(repoPath, analysis)

	provider := it.suggestions.Resolve(settings)
	logger.Infof("Requesting modification plan from provider %q...", provider.Name())

	plan, err := provider.Suggest(ctx, analysis, issues, buildFiles)
	if err != nil {
		logger.Warnf(
			"Suggestion provider %q failed: %v (using deterministic fallback)",
			provider.Name(), err,
		)
		plan, _ = it.suggestions.Fallback().Suggest(ctx, analysis, issues, buildFiles)
	}
	return plan
}

// confirmPlan prints the plan summary and asks for confirmation unless
// auto-apply is enabled.
func (it *GenerateCommand) confirmPlan(plan *entities.ModificationPlan, autoApply bool) bool {
	logger.Info("Modifications to be applied:")
	if len(plan.MakefileChanges) > 0 {
		logger.Infof("  - Makefile: %d change lines", len(plan.MakefileChanges))
	}
	if len(plan.CmakeChanges) > 0 {
		logger.Infof("  - CMakeLists.txt: %d change lines", len(plan.CmakeChanges))
	}
	if len(plan.MissingFiles) > 0 {
		logger.Infof("  - New files: %d", len(plan.MissingFiles))
	}

	if autoApply {
		logger.Info("Auto-applying modifications")
		return true
	}

	fmt.Print("Apply these modifications to the working tree? [y/N]: ")
	answer, err := bufio.NewReader(it.Input).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// readBuildFileExcerpts loads the first few reasonably sized build files
// for prompt context.
func readBuildFileExcerpts(
	repoPath string,
	analysis *entities.RepositoryAnalysis,
) map[string]string {
	excerpts := make(map[string]string)

	for _, buildFile := range analysis.BuildFiles {
		if len(excerpts) >= maxExcerptFiles {
			break
		}

		path := filepath.Join(repoPath, buildFile)
		info, err := os.Stat(path)
		if err != nil || info.Size() >= maxExcerptFileSize {
			continue
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			continue
		}
		excerpts[buildFile] = string(content)
	}

	return excerpts
}

// logAnalysis prints the analysis summary.
func logAnalysis(analysis *entities.RepositoryAnalysis) {
	logger.Infof("  Project Type: %s", analysis.ProjectType)
	logger.Infof("  Build System: %s", analysis.BuildSystem)
	logger.Infof("  Languages: %s", strings.Join(analysis.Languages, ", "))
	logger.Infof("  Source Files: %d files", len(analysis.SourceFiles))
	logger.Infof("  Test Files: %d files", len(analysis.TestFiles))
	logger.Infof("  Build Files: %d files", len(analysis.BuildFiles))
}
