package suggest

import (
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
)

// RemoteFactory is a constructor that builds the remote provider from the
// loaded settings.
type RemoteFactory func(settings *entities.Settings) domainRepos.SuggestionRepository

// Registry selects the suggestion provider for a run: the remote one when
// an API key is configured, the deterministic fallback otherwise.
type Registry struct {
	remoteFactory RemoteFactory
	fallback      domainRepos.SuggestionRepository
}

// NewRegistry creates a registry with the given remote factory and fallback.
func NewRegistry(remoteFactory RemoteFactory, fallback domainRepos.SuggestionRepository) *Registry {
	return &Registry{
		remoteFactory: remoteFactory,
		fallback:      fallback,
	}
}

// Resolve returns the provider to try first for the given settings.
func (r *Registry) Resolve(settings *entities.Settings) domainRepos.SuggestionRepository {
	if settings.Provider.APIKey == "" {
		logger.Debug("No API key configured, using the deterministic suggestion provider")
		return r.fallback
	}
	return r.remoteFactory(settings)
}

// Fallback returns the deterministic provider, which never fails.
func (r *Registry) Fallback() domainRepos.SuggestionRepository {
	return r.fallback
}
