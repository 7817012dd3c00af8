package report

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
)

const coverageInfoFile = "coverage.info"

// LcovReportRepository delegates report generation to the native lcov and
// genhtml tools, scanning the repository for raw coverage data.
type LcovReportRepository struct {
	runner domainRepos.RunnerRepository
}

// NewLcovReportRepository creates a new lcov-backed renderer.
func NewLcovReportRepository(runner domainRepos.RunnerRepository) *LcovReportRepository {
	return &LcovReportRepository{runner: runner}
}

var _ domainRepos.ReportRepository = (*LcovReportRepository)(nil)

// Available reports whether lcov is installed on the host.
func (it *LcovReportRepository) Available(ctx context.Context) bool {
	result, err := it.runner.Run(ctx, "", "lcov", "--version")
	return err == nil && result.Succeeded()
}

// Render captures coverage data from repoPath and generates the native
// multi-file HTML report into outputDir.
func (it *LcovReportRepository) Render(
	ctx context.Context,
	repoPath string,
	_ *entities.CoverageModel,
	outputDir string,
) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory %q: %w", outputDir, err)
	}

	capture, err := it.runner.Run(ctx, repoPath,
		"lcov", "--capture", "--directory", ".", "--output-file", coverageInfoFile,
	)
	if err != nil {
		return fmt.Errorf("failed to run lcov: %w", err)
	}
	if !capture.Succeeded() {
		return fmt.Errorf("lcov capture failed: %s", capture.Stderr)
	}

	genhtml, err := it.runner.Run(ctx, repoPath,
		"genhtml", coverageInfoFile, "--output-directory", outputDir,
	)
	if err != nil {
		return fmt.Errorf("failed to run genhtml: %w", err)
	}
	if !genhtml.Succeeded() {
		return fmt.Errorf("genhtml failed: %s", genhtml.Stderr)
	}

	logger.Infof("LCOV report generated in %s", outputDir)
	return nil
}
