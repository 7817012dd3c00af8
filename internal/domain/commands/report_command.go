package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
)

// Report is the interface for the report command (synthesis only).
type Report interface {
	Execute(ctx context.Context, opts ReportOptions) error
}

// ReportOptions holds runtime options for a report run.
type ReportOptions struct {
	Path      string // tree containing annotated coverage artifacts
	OutputDir string
}

// ReportCommand synthesizes a report from coverage artifacts that already
// exist under a tree, without building anything.
type ReportCommand struct {
	coverage domainRepos.CoverageRepository
	report   domainRepos.ReportRepository
}

// NewReportCommand creates a new ReportCommand.
func NewReportCommand(
	coverage domainRepos.CoverageRepository,
	report domainRepos.ReportRepository,
) *ReportCommand {
	return &ReportCommand{
		coverage: coverage,
		report:   report,
	}
}

// Execute parses every artifact under the path and renders the report.
func (it *ReportCommand) Execute(ctx context.Context, opts ReportOptions) error {
	artifacts, err := it.coverage.DiscoverArtifacts(opts.Path)
	if err != nil {
		return err
	}
	if len(artifacts) == 0 {
		return errors.New("no annotated coverage artifacts found")
	}
	logger.Infof("Found %d annotated coverage files", len(artifacts))

	model, parseErr := it.coverage.ParseAnnotatedFiles(artifacts)
	if parseErr != nil {
		return parseErr
	}

	if renderErr := it.report.Render(ctx, opts.Path, model, opts.OutputDir); renderErr != nil {
		return fmt.Errorf("failed to render report: %w", renderErr)
	}

	logger.Infof(
		"Overall coverage: %.1f%% (%d/%d lines)",
		model.Percentage, model.CoveredLines, model.TotalLines,
	)
	return nil
}
