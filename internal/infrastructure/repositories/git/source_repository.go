package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	logger "github.com/sirupsen/logrus"

	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
)

const cloneDepth = 1

// SourceRepository materializes repositories to inspect: local paths pass
// through, remote URLs are shallow-cloned into a temporary directory.
type SourceRepository struct{}

// NewSourceRepository creates a new source fetcher.
func NewSourceRepository() *SourceRepository {
	return &SourceRepository{}
}

var _ domainRepos.SourceRepository = (*SourceRepository)(nil)

// Fetch returns a local working tree for the given source. For local
// directories the cleanup is a no-op; for clones it removes the temporary
// directory.
func (it *SourceRepository) Fetch(
	ctx context.Context,
	source string,
) (string, func(), error) {
	if info, err := os.Stat(source); err == nil && info.IsDir() {
		absolute, absErr := filepath.Abs(source)
		if absErr != nil {
			return "", nil, fmt.Errorf("invalid path %q: %w", source, absErr)
		}
		return absolute, func() {}, nil
	}

	tempDir, err := os.MkdirTemp("", "covgen-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temporary directory: %w", err)
	}

	repoPath := filepath.Join(tempDir, repoNameFromURL(source))
	logger.Infof("Cloning repository: %s", source)

	_, cloneErr := gogit.PlainCloneContext(ctx, repoPath, false, &gogit.CloneOptions{
		URL:   source,
		Depth: cloneDepth,
	})
	if cloneErr != nil {
		_ = os.RemoveAll(tempDir)
		return "", nil, fmt.Errorf("failed to clone %q: %w", source, cloneErr)
	}

	logger.Infof("Repository cloned to: %s", repoPath)

	cleanup := func() {
		if removeErr := os.RemoveAll(tempDir); removeErr != nil {
			logger.Warnf("Could not remove temporary directory %q: %v", tempDir, removeErr)
		}
	}
	return repoPath, cleanup, nil
}

// repoNameFromURL extracts the repository name from a clone URL.
func repoNameFromURL(rawURL string) string {
	trimmed := strings.TrimSuffix(strings.TrimRight(rawURL, "/"), ".git")
	if idx := strings.LastIndexAny(trimmed, "/:"); idx != -1 {
		trimmed = trimmed[idx+1:]
	}
	if trimmed == "" {
		return "repository"
	}
	return trimmed
}
