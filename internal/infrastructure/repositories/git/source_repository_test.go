//go:build unit

package git_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/covgen/internal/infrastructure/repositories/git"
)

func TestSourceRepository_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("should pass a local directory through unchanged", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		it := git.NewSourceRepository()

		// when
		path, cleanup, err := it.Fetch(context.Background(), dir)

		// then
		require.NoError(t, err)
		assert.Equal(t, dir, path)
		assert.DirExists(t, dir)
		cleanup() // no-op for local paths
		assert.DirExists(t, dir)
	})

	t.Run("should resolve relative local paths", func(t *testing.T) {
		t.Parallel()

		// given
		it := git.NewSourceRepository()

		// when
		path, cleanup, err := it.Fetch(context.Background(), ".")

		// then
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(path))
		cleanup()
	})

	t.Run("should fail fast on an unreachable remote", func(t *testing.T) {
		t.Parallel()

		// given
		it := git.NewSourceRepository()

		// when
		path, _, err := it.Fetch(context.Background(),
			filepath.Join(t.TempDir(), "not-a-repository"))

		// then
		require.Error(t, err)
		assert.Empty(t, path)
	})
}

func TestRepoNameFromURL(t *testing.T) {
	t.Parallel()

	t.Run("should extract names from common clone URL shapes", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "myrepo", git.RepoNameFromURL("https://github.com/org/myrepo.git"))
		assert.Equal(t, "myrepo", git.RepoNameFromURL("git@github.com:org/myrepo.git"))
		assert.Equal(t, "myrepo", git.RepoNameFromURL("https://gitlab.com/group/myrepo/"))
		assert.Equal(t, "repository", git.RepoNameFromURL(""))
	})
}
