package repositories

import (
	"github.com/rios0rios0/covgen/internal/domain/entities"
)

// AnalyzerRepository walks a repository tree and classifies its files into
// an immutable structural summary.
type AnalyzerRepository interface {
	// Analyze performs a single recursive traversal of rootPath. It fails
	// only when the root itself is unreadable; individual unreadable files
	// are skipped silently.
	Analyze(rootPath string) (*entities.RepositoryAnalysis, error)
}
