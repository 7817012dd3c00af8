package repositories

import (
	"github.com/rios0rios0/covgen/internal/domain/entities"
)

// CoverageRepository turns annotated per-line coverage artifacts into the
// aggregate coverage model.
type CoverageRepository interface {
	// DiscoverArtifacts returns the annotated coverage artifacts (.gcov
	// files) found anywhere under rootPath, in traversal order.
	DiscoverArtifacts(rootPath string) ([]string, error)

	// ParseAnnotatedFiles parses the given artifacts. Files that cannot be
	// read are logged and skipped; files with zero coverable lines are
	// excluded from the model entirely.
	ParseAnnotatedFiles(paths []string) (*entities.CoverageModel, error)
}
