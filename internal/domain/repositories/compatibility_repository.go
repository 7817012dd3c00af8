package repositories

import (
	"github.com/rios0rios0/covgen/internal/domain/entities"
)

// CompatibilityRepository evaluates an analysis against the gcov rule set.
type CompatibilityRepository interface {
	// Check evaluates every rule (no short-circuiting) and returns whether
	// the repository is coverage-compatible plus the ordered issue list.
	// A repository is compatible iff the issue list is empty. Build files
	// that cannot be read are treated as empty content, never as a failure.
	Check(rootPath string, analysis *entities.RepositoryAnalysis) (bool, []string)
}
