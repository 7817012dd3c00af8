package repositories

import (
	"context"

	"github.com/rios0rios0/covgen/internal/domain/entities"
)

// ToolchainRepository drives the external compiler/coverage toolchain:
// instrumented build, test-binary execution, and coverage-data extraction.
// Each step tries its documented fallbacks before surfacing a failure.
type ToolchainRepository interface {
	// BuildWithCoverage builds the repository with gcov instrumentation
	// flags, honoring the plan's suggested compilation command when set.
	// The plan may be nil for already-compatible repositories.
	BuildWithCoverage(
		ctx context.Context,
		repoPath string,
		analysis *entities.RepositoryAnalysis,
		plan *entities.ModificationPlan,
	) error

	// RunTests executes the discovered test binaries best-effort; a failing
	// binary does not abort the remaining ones.
	RunTests(ctx context.Context, repoPath string)

	// ExtractCoverage runs gcov (the plan's suggested commands when set)
	// to turn execution data into annotated artifacts. It fails only when
	// every command fails and no artifact was produced.
	ExtractCoverage(
		ctx context.Context,
		repoPath string,
		analysis *entities.RepositoryAnalysis,
		plan *entities.ModificationPlan,
	) error
}
