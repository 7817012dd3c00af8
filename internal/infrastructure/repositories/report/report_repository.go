package report

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
)

// ReportRepository is the composite renderer: it prefers the native lcov
// toolchain when installed and falls back to the self-contained HTML page.
type ReportRepository struct {
	lcov *LcovReportRepository
	html *HTMLReportRepository
}

// NewReportRepository creates the composite renderer.
func NewReportRepository(runner domainRepos.RunnerRepository) *ReportRepository {
	return &ReportRepository{
		lcov: NewLcovReportRepository(runner),
		html: NewHTMLReportRepository(),
	}
}

var _ domainRepos.ReportRepository = (*ReportRepository)(nil)

// Render tries lcov first when available; any lcov failure degrades to the
// self-rendered page, whose failure is fatal for the reporting step.
func (it *ReportRepository) Render(
	ctx context.Context,
	repoPath string,
	model *entities.CoverageModel,
	outputDir string,
) error {
	if it.lcov.Available(ctx) {
		err := it.lcov.Render(ctx, repoPath, model, outputDir)
		if err == nil {
			return nil
		}
		logger.Warnf("LCOV rendering failed, falling back to built-in renderer: %v", err)
	}

	return it.html.Render(ctx, repoPath, model, outputDir)
}
