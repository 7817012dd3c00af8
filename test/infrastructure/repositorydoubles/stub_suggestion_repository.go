//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	"github.com/rios0rios0/covgen/internal/domain/repositories"
)

// SuggestCall records a single invocation of Suggest.
type SuggestCall struct {
	Analysis   *entities.RepositoryAnalysis
	Issues     []string
	BuildFiles map[string]string
}

// StubSuggestionRepository implements repositories.SuggestionRepository
// with a canned plan.
type StubSuggestionRepository struct {
	ProviderName string
	Plan         *entities.ModificationPlan
	SuggestErr   error

	// --- spy: calls received ---
	Calls []SuggestCall
}

var _ repositories.SuggestionRepository = (*StubSuggestionRepository)(nil)

func (s *StubSuggestionRepository) Name() string { return s.ProviderName }

func (s *StubSuggestionRepository) Suggest(
	_ context.Context,
	analysis *entities.RepositoryAnalysis,
	issues []string,
	buildFiles map[string]string,
) (*entities.ModificationPlan, error) {
	s.Calls = append(s.Calls, SuggestCall{
		Analysis:   analysis,
		Issues:     issues,
		BuildFiles: buildFiles,
	})
	if s.SuggestErr != nil {
		return nil, s.SuggestErr
	}
	return s.Plan, nil
}
