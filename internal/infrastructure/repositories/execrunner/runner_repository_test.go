//go:build unit

package execrunner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/covgen/internal/infrastructure/repositories/execrunner"
)

func TestRunnerRepository_Run(t *testing.T) {
	t.Parallel()

	t.Run("should capture stdout of a successful command", func(t *testing.T) {
		t.Parallel()

		// given
		it := execrunner.NewRunnerRepository()

		// when
		result, err := it.Run(context.Background(), t.TempDir(), "sh", "-c", "echo hello")

		// then
		require.NoError(t, err)
		assert.True(t, result.Succeeded())
		assert.Equal(t, "hello\n", result.Stdout)
		assert.Empty(t, result.Stderr)
	})

	t.Run("should return a non-zero exit code inside the result", func(t *testing.T) {
		t.Parallel()

		// given
		it := execrunner.NewRunnerRepository()

		// when
		result, err := it.Run(context.Background(), t.TempDir(), "sh", "-c", "echo oops >&2; exit 3")

		// then
		require.NoError(t, err)
		assert.False(t, result.Succeeded())
		assert.Equal(t, 3, result.ExitCode)
		assert.Equal(t, "oops\n", result.Stderr)
	})

	t.Run("should error when the binary cannot be started", func(t *testing.T) {
		t.Parallel()

		// given
		it := execrunner.NewRunnerRepository()

		// when
		result, err := it.Run(context.Background(), t.TempDir(), "covgen-no-such-binary")

		// then
		require.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("should error on an empty argument vector", func(t *testing.T) {
		t.Parallel()

		// given
		it := execrunner.NewRunnerRepository()

		// when
		result, err := it.Run(context.Background(), t.TempDir())

		// then
		require.Error(t, err)
		assert.Nil(t, result)
	})

	t.Run("should run the command in the given directory", func(t *testing.T) {
		t.Parallel()

		// given
		dir := t.TempDir()
		it := execrunner.NewRunnerRepository()

		// when
		result, err := it.Run(context.Background(), dir, "pwd")

		// then
		require.NoError(t, err)
		assert.Contains(t, result.Stdout, dir)
	})
}

func TestRunnerRepository_RunWithEnv(t *testing.T) {
	t.Parallel()

	t.Run("should layer extra variables over the inherited environment", func(t *testing.T) {
		t.Parallel()

		// given
		it := execrunner.NewRunnerRepository()
		env := map[string]string{"COVGEN_RUNNER_PROBE": "probe-value"}

		// when
		result, err := it.RunWithEnv(context.Background(), t.TempDir(), env,
			"sh", "-c", "echo $COVGEN_RUNNER_PROBE; echo $PATH")

		// then
		require.NoError(t, err)
		assert.Contains(t, result.Stdout, "probe-value")
		assert.NotContains(t, result.Stdout, "probe-value\n\n") // PATH was inherited
	})
}
