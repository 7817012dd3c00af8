//go:build unit

package commands_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/covgen/internal/domain/commands"
	"github.com/rios0rios0/covgen/internal/domain/entities"
	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
	"github.com/rios0rios0/covgen/internal/infrastructure/repositories/suggest"
	"github.com/rios0rios0/covgen/test/domain/entitybuilders"
	"github.com/rios0rios0/covgen/test/infrastructure/repositorydoubles"
)

// pipelineDoubles bundles one configured collaborator set for a run.
type pipelineDoubles struct {
	source    *repositorydoubles.StubSourceRepository
	analyzer  *repositorydoubles.StubAnalyzerRepository
	compat    *repositorydoubles.StubCompatibilityRepository
	patch     *repositorydoubles.SpyPatchRepository
	toolchain *repositorydoubles.SpyToolchainRepository
	coverage  *repositorydoubles.StubCoverageRepository
	report    *repositorydoubles.SpyReportRepository
	remote    *repositorydoubles.StubSuggestionRepository
	fallback  *repositorydoubles.StubSuggestionRepository
}

func newPipelineDoubles(t *testing.T) *pipelineDoubles {
	t.Helper()
	return &pipelineDoubles{
		source: &repositorydoubles.StubSourceRepository{Path: t.TempDir()},
		analyzer: &repositorydoubles.StubAnalyzerRepository{
			Analysis: entitybuilders.NewAnalysisBuilder().BuildAnalysis(),
		},
		compat:    &repositorydoubles.StubCompatibilityRepository{Compatible: true},
		patch:     &repositorydoubles.SpyPatchRepository{},
		toolchain: &repositorydoubles.SpyToolchainRepository{},
		coverage: &repositorydoubles.StubCoverageRepository{
			Artifacts: []string{"main.c.gcov"},
			Model:     &entities.CoverageModel{TotalLines: 10, CoveredLines: 8, Percentage: 80.0},
		},
		report: &repositorydoubles.SpyReportRepository{},
		remote: &repositorydoubles.StubSuggestionRepository{
			ProviderName: "remote",
			Plan:         &entities.ModificationPlan{MakefileChanges: []string{"LDFLAGS += -lgcov"}},
		},
		fallback: &repositorydoubles.StubSuggestionRepository{
			ProviderName: "fallback",
			Plan:         &entities.ModificationPlan{GcovCommands: []string{"gcov *.c"}},
		},
	}
}

func (d *pipelineDoubles) newCommand() *commands.GenerateCommand {
	registry := suggest.NewRegistry(
		func(_ *entities.Settings) domainRepos.SuggestionRepository { return d.remote },
		d.fallback,
	)
	return commands.NewGenerateCommand(
		d.analyzer, d.compat, d.patch, d.coverage, d.report,
		d.source, d.toolchain, registry,
	)
}

func autoApplySettings() *entities.Settings {
	settings := entities.DefaultSettings()
	settings.Provider.APIKey = "test-key"
	settings.AutoApply = true
	return settings
}

func TestGenerateCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should report directly for a compatible repository", func(t *testing.T) {
		t.Parallel()

		// given
		doubles := newPipelineDoubles(t)
		cmd := doubles.newCommand()

		// when
		err := cmd.Execute(context.Background(), autoApplySettings(), commands.GenerateOptions{
			Source: "/tmp/repo",
		})

		// then
		require.NoError(t, err)
		assert.Empty(t, doubles.patch.AppliedPlans)
		assert.Empty(t, doubles.patch.RollbackCalls)
		require.Len(t, doubles.toolchain.BuildPlans, 1)
		assert.Nil(t, doubles.toolchain.BuildPlans[0])
		assert.Equal(t, 1, doubles.toolchain.RunTestsRuns)
		assert.Len(t, doubles.report.RenderedModels, 1)
		assert.Equal(t, 1, doubles.source.CleanupCount)
	})

	t.Run("should apply and roll back exactly once for an incompatible repository", func(t *testing.T) {
		t.Parallel()

		// given
		doubles := newPipelineDoubles(t)
		doubles.compat.Compatible = false
		doubles.compat.Issues = []string{"Makefile missing Gcov linking flags"}
		doubles.patch.ApplyRecords = []entities.ModificationRecord{
			{Kind: entities.RecordBackup, Path: "/r/Makefile", BackupPath: "/r/Makefile.bak"},
		}
		cmd := doubles.newCommand()

		// when
		err := cmd.Execute(context.Background(), autoApplySettings(), commands.GenerateOptions{
			Source: "/tmp/repo",
		})

		// then
		require.NoError(t, err)
		require.Len(t, doubles.patch.AppliedPlans, 1)
		assert.Same(t, doubles.remote.Plan, doubles.patch.AppliedPlans[0])
		require.Len(t, doubles.patch.RollbackCalls, 1)
		assert.Equal(t, doubles.patch.ApplyRecords, doubles.patch.RollbackCalls[0])
		require.Len(t, doubles.toolchain.BuildPlans, 1)
		assert.Same(t, doubles.remote.Plan, doubles.toolchain.BuildPlans[0])
	})

	t.Run("should roll back partial records when apply fails", func(t *testing.T) {
		t.Parallel()

		// given
		doubles := newPipelineDoubles(t)
		doubles.compat.Compatible = false
		doubles.patch.ApplyRecords = []entities.ModificationRecord{
			{Kind: entities.RecordCreated, Path: "/r/CMakeLists.txt"},
		}
		doubles.patch.ApplyErr = errors.New("disk full")
		cmd := doubles.newCommand()

		// when
		err := cmd.Execute(context.Background(), autoApplySettings(), commands.GenerateOptions{
			Source: "/tmp/repo",
		})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to apply modification plan")
		require.Len(t, doubles.patch.RollbackCalls, 1)
		assert.Equal(t, doubles.patch.ApplyRecords, doubles.patch.RollbackCalls[0])
		assert.Empty(t, doubles.toolchain.BuildPlans)
	})

	t.Run("should roll back when the instrumented build fails", func(t *testing.T) {
		t.Parallel()

		// given
		doubles := newPipelineDoubles(t)
		doubles.compat.Compatible = false
		doubles.patch.ApplyRecords = []entities.ModificationRecord{
			{Kind: entities.RecordBackup, Path: "/r/Makefile", BackupPath: "/r/Makefile.bak"},
		}
		doubles.toolchain.BuildErr = errors.New("make failed")
		cmd := doubles.newCommand()

		// when
		err := cmd.Execute(context.Background(), autoApplySettings(), commands.GenerateOptions{
			Source: "/tmp/repo",
		})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to build with coverage")
		require.Len(t, doubles.patch.RollbackCalls, 1)
		assert.Empty(t, doubles.report.RenderedModels)
	})

	t.Run("should degrade to the fallback plan when the provider fails", func(t *testing.T) {
		t.Parallel()

		// given
		doubles := newPipelineDoubles(t)
		doubles.compat.Compatible = false
		doubles.remote.SuggestErr = errors.New("api unreachable")
		cmd := doubles.newCommand()

		// when
		err := cmd.Execute(context.Background(), autoApplySettings(), commands.GenerateOptions{
			Source: "/tmp/repo",
		})

		// then
		require.NoError(t, err)
		require.Len(t, doubles.fallback.Calls, 1)
		require.Len(t, doubles.patch.AppliedPlans, 1)
		assert.Same(t, doubles.fallback.Plan, doubles.patch.AppliedPlans[0])
	})

	t.Run("should use the fallback provider without an API key", func(t *testing.T) {
		t.Parallel()

		// given
		doubles := newPipelineDoubles(t)
		doubles.compat.Compatible = false
		settings := autoApplySettings()
		settings.Provider.APIKey = ""
		cmd := doubles.newCommand()

		// when
		err := cmd.Execute(context.Background(), settings, commands.GenerateOptions{
			Source: "/tmp/repo",
		})

		// then
		require.NoError(t, err)
		assert.Empty(t, doubles.remote.Calls)
		assert.Len(t, doubles.fallback.Calls, 1)
	})

	t.Run("should stop when the user declines the plan", func(t *testing.T) {
		t.Parallel()

		// given
		doubles := newPipelineDoubles(t)
		doubles.compat.Compatible = false
		settings := autoApplySettings()
		settings.AutoApply = false
		cmd := doubles.newCommand()
		cmd.Input = strings.NewReader("n\n")

		// when
		err := cmd.Execute(context.Background(), settings, commands.GenerateOptions{
			Source: "/tmp/repo",
		})

		// then
		require.ErrorIs(t, err, commands.ErrModificationsDeclined)
		assert.Empty(t, doubles.patch.AppliedPlans)
		assert.Empty(t, doubles.toolchain.BuildPlans)
	})

	t.Run("should proceed when the user confirms the plan", func(t *testing.T) {
		t.Parallel()

		// given
		doubles := newPipelineDoubles(t)
		doubles.compat.Compatible = false
		settings := autoApplySettings()
		settings.AutoApply = false
		cmd := doubles.newCommand()
		cmd.Input = strings.NewReader("yes\n")

		// when
		err := cmd.Execute(context.Background(), settings, commands.GenerateOptions{
			Source: "/tmp/repo",
		})

		// then
		require.NoError(t, err)
		assert.Len(t, doubles.patch.AppliedPlans, 1)
	})

	t.Run("should fail when fetching the repository fails", func(t *testing.T) {
		t.Parallel()

		// given
		doubles := newPipelineDoubles(t)
		doubles.source.FetchErr = errors.New("clone failed")
		cmd := doubles.newCommand()

		// when
		err := cmd.Execute(context.Background(), autoApplySettings(), commands.GenerateOptions{
			Source: "https://example.com/repo.git",
		})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch repository")
	})

	t.Run("should fail when no artifacts were produced", func(t *testing.T) {
		t.Parallel()

		// given
		doubles := newPipelineDoubles(t)
		doubles.coverage.Artifacts = nil
		cmd := doubles.newCommand()

		// when
		err := cmd.Execute(context.Background(), autoApplySettings(), commands.GenerateOptions{
			Source: "/tmp/repo",
		})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no annotated coverage artifacts")
		assert.Empty(t, doubles.report.RenderedModels)
	})

	t.Run("should honor the output directory override", func(t *testing.T) {
		t.Parallel()

		// given
		doubles := newPipelineDoubles(t)
		cmd := doubles.newCommand()

		// when
		err := cmd.Execute(context.Background(), autoApplySettings(), commands.GenerateOptions{
			Source:    "/tmp/repo",
			OutputDir: "custom_reports",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"custom_reports"}, doubles.report.OutputDirs)
	})

	t.Run("should fall back to the configured output directory", func(t *testing.T) {
		t.Parallel()

		// given
		doubles := newPipelineDoubles(t)
		settings := autoApplySettings()
		settings.OutputDir = "configured_reports"
		cmd := doubles.newCommand()

		// when
		err := cmd.Execute(context.Background(), settings, commands.GenerateOptions{
			Source: "/tmp/repo",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"configured_reports"}, doubles.report.OutputDirs)
	})
}
