package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
	"github.com/rios0rios0/covgen/internal/infrastructure/repositories/analyzer"
	"github.com/rios0rios0/covgen/internal/infrastructure/repositories/compat"
	"github.com/rios0rios0/covgen/internal/infrastructure/repositories/execrunner"
	"github.com/rios0rios0/covgen/internal/infrastructure/repositories/gcov"
	gitRepo "github.com/rios0rios0/covgen/internal/infrastructure/repositories/git"
	"github.com/rios0rios0/covgen/internal/infrastructure/repositories/patch"
	"github.com/rios0rios0/covgen/internal/infrastructure/repositories/report"
	"github.com/rios0rios0/covgen/internal/infrastructure/repositories/suggest"
	claudeRepo "github.com/rios0rios0/covgen/internal/infrastructure/repositories/suggest/claude"
	fallbackRepo "github.com/rios0rios0/covgen/internal/infrastructure/repositories/suggest/fallback"
	"github.com/rios0rios0/covgen/internal/infrastructure/repositories/toolchain"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	constructors := []interface{}{
		func() domainRepos.AnalyzerRepository { return analyzer.NewAnalyzerRepository() },
		func() domainRepos.CompatibilityRepository { return compat.NewCompatibilityRepository() },
		func() domainRepos.PatchRepository { return patch.NewPatchRepository() },
		func() domainRepos.CoverageRepository { return gcov.NewCoverageRepository() },
		func() domainRepos.RunnerRepository { return execrunner.NewRunnerRepository() },
		func() domainRepos.SourceRepository { return gitRepo.NewSourceRepository() },
		func(runner domainRepos.RunnerRepository) domainRepos.ToolchainRepository {
			return toolchain.NewToolchainRepository(runner)
		},
		func(runner domainRepos.RunnerRepository) domainRepos.ReportRepository {
			return report.NewReportRepository(runner)
		},
		func() *suggest.Registry {
			return suggest.NewRegistry(
				func(settings *entities.Settings) domainRepos.SuggestionRepository {
					return claudeRepo.NewSuggestionRepository(settings)
				},
				fallbackRepo.NewSuggestionRepository(),
			)
		},
	}

	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}
