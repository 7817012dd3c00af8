package repositories

import (
	"context"

	"github.com/rios0rios0/covgen/internal/domain/entities"
)

// SuggestionRepository produces a modification plan for a repository that
// is not coverage-compatible. Implementations may call a remote model or
// compute a deterministic default plan.
type SuggestionRepository interface {
	// Name returns the provider identifier (e.g. "claude", "fallback").
	Name() string

	// Suggest returns a structured plan for the given analysis and issue
	// list. buildFiles maps build-file relative paths to their content,
	// for prompt context.
	Suggest(
		ctx context.Context,
		analysis *entities.RepositoryAnalysis,
		issues []string,
		buildFiles map[string]string,
	) (*entities.ModificationPlan, error)
}
