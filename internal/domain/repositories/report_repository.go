package repositories

import (
	"context"

	"github.com/rios0rios0/covgen/internal/domain/entities"
)

// ReportRepository renders a coverage model into a static report inside
// outputDir. Implementations may delegate to a native tool (which scans
// repoPath for raw coverage data) or render a self-contained page from the
// model. A render failure is fatal for the reporting step.
type ReportRepository interface {
	Render(ctx context.Context, repoPath string, model *entities.CoverageModel, outputDir string) error
}
