package repositories

import (
	"context"
)

// SourceRepository materializes the repository to inspect as a local
// working tree.
type SourceRepository interface {
	// Fetch returns a local path for the given source, which is either an
	// existing directory (returned as-is) or a remote Git URL (cloned into
	// a temporary directory). The cleanup function removes any temporary
	// state and is safe to call exactly once.
	Fetch(ctx context.Context, source string) (path string, cleanup func(), err error)
}
