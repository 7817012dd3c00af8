package repositories

import (
	"context"

	"github.com/rios0rios0/covgen/internal/domain/entities"
)

// RunnerRepository executes blocking external commands with captured output.
// A non-zero exit code is returned inside the result, not as an error; the
// error is reserved for failures to start the process at all.
type RunnerRepository interface {
	Run(ctx context.Context, dir string, args ...string) (*entities.CommandResult, error)
	RunWithEnv(
		ctx context.Context,
		dir string,
		env map[string]string,
		args ...string,
	) (*entities.CommandResult, error)
}
