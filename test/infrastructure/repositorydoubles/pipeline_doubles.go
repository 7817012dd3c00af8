//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	"github.com/rios0rios0/covgen/internal/domain/repositories"
)

// StubSourceRepository implements repositories.SourceRepository with a
// fixed local path.
type StubSourceRepository struct {
	Path     string
	FetchErr error
	// spy: how many times the cleanup function ran
	CleanupCount int
}

var _ repositories.SourceRepository = (*StubSourceRepository)(nil)

func (s *StubSourceRepository) Fetch(
	_ context.Context, _ string,
) (string, func(), error) {
	if s.FetchErr != nil {
		return "", nil, s.FetchErr
	}
	return s.Path, func() { s.CleanupCount++ }, nil
}

// StubAnalyzerRepository implements repositories.AnalyzerRepository with a
// canned analysis.
type StubAnalyzerRepository struct {
	Analysis   *entities.RepositoryAnalysis
	AnalyzeErr error
}

var _ repositories.AnalyzerRepository = (*StubAnalyzerRepository)(nil)

func (a *StubAnalyzerRepository) Analyze(_ string) (*entities.RepositoryAnalysis, error) {
	return a.Analysis, a.AnalyzeErr
}

// StubCompatibilityRepository implements repositories.CompatibilityRepository
// with a canned verdict.
type StubCompatibilityRepository struct {
	Compatible bool
	Issues     []string
}

var _ repositories.CompatibilityRepository = (*StubCompatibilityRepository)(nil)

func (c *StubCompatibilityRepository) Check(
	_ string, _ *entities.RepositoryAnalysis,
) (bool, []string) {
	return c.Compatible, c.Issues
}

// SpyToolchainRepository implements repositories.ToolchainRepository as a
// configurable spy.
type SpyToolchainRepository struct {
	BuildErr   error
	ExtractErr error

	// --- spy: calls received ---
	BuildPlans   []*entities.ModificationPlan
	RunTestsRuns int
	ExtractPlans []*entities.ModificationPlan
}

var _ repositories.ToolchainRepository = (*SpyToolchainRepository)(nil)

func (t *SpyToolchainRepository) BuildWithCoverage(
	_ context.Context, _ string, _ *entities.RepositoryAnalysis, plan *entities.ModificationPlan,
) error {
	t.BuildPlans = append(t.BuildPlans, plan)
	return t.BuildErr
}

func (t *SpyToolchainRepository) RunTests(_ context.Context, _ string) {
	t.RunTestsRuns++
}

func (t *SpyToolchainRepository) ExtractCoverage(
	_ context.Context, _ string, _ *entities.RepositoryAnalysis, plan *entities.ModificationPlan,
) error {
	t.ExtractPlans = append(t.ExtractPlans, plan)
	return t.ExtractErr
}

// StubCoverageRepository implements repositories.CoverageRepository with
// canned artifacts and a canned model.
type StubCoverageRepository struct {
	Artifacts   []string
	DiscoverErr error
	Model       *entities.CoverageModel
	ParseErr    error
}

var _ repositories.CoverageRepository = (*StubCoverageRepository)(nil)

func (c *StubCoverageRepository) DiscoverArtifacts(_ string) ([]string, error) {
	return c.Artifacts, c.DiscoverErr
}

func (c *StubCoverageRepository) ParseAnnotatedFiles(_ []string) (*entities.CoverageModel, error) {
	return c.Model, c.ParseErr
}

// SpyReportRepository implements repositories.ReportRepository as a spy.
type SpyReportRepository struct {
	RenderErr error

	// --- spy: calls received ---
	RenderedModels []*entities.CoverageModel
	OutputDirs     []string
}

var _ repositories.ReportRepository = (*SpyReportRepository)(nil)

func (r *SpyReportRepository) Render(
	_ context.Context, _ string, model *entities.CoverageModel, outputDir string,
) error {
	r.RenderedModels = append(r.RenderedModels, model)
	r.OutputDirs = append(r.OutputDirs, outputDir)
	return r.RenderErr
}
