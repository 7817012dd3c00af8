package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
)

// Analyze is the interface for the analyze command (inspection only).
type Analyze interface {
	Execute(ctx context.Context, opts AnalyzeOptions) error
}

// AnalyzeOptions holds runtime options for an analysis run.
type AnalyzeOptions struct {
	Path    string
	Verbose bool
}

// AnalyzeCommand inspects a local repository and reports its structure and
// gcov compatibility without touching the working tree.
type AnalyzeCommand struct {
	analyzer domainRepos.AnalyzerRepository
	compat   domainRepos.CompatibilityRepository
}

// NewAnalyzeCommand creates a new AnalyzeCommand.
func NewAnalyzeCommand(
	analyzer domainRepos.AnalyzerRepository,
	compat domainRepos.CompatibilityRepository,
) *AnalyzeCommand {
	return &AnalyzeCommand{
		analyzer: analyzer,
		compat:   compat,
	}
}

// Execute analyzes the repository at the given path.
func (it *AnalyzeCommand) Execute(_ context.Context, opts AnalyzeOptions) error {
	if opts.Verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	analysis, err := it.analyzer.Analyze(opts.Path)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	logAnalysis(analysis)

	compatible, issues := it.compat.Check(opts.Path, analysis)
	if compatible {
		logger.Info("Repository is Gcov-compatible")
		return nil
	}

	logger.Warn("Repository is NOT Gcov-compatible. Issues found:")
	for _, issue := range issues {
		logger.Warnf("  - %s", issue)
	}
	return nil
}
