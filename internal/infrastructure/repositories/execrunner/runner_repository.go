package execrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
)

// RunnerRepository executes external tools as blocking child processes with
// captured output.
type RunnerRepository struct{}

// NewRunnerRepository creates a new command runner.
func NewRunnerRepository() *RunnerRepository {
	return &RunnerRepository{}
}

var _ domainRepos.RunnerRepository = (*RunnerRepository)(nil)

// Run executes the command in dir with the inherited environment.
func (it *RunnerRepository) Run(
	ctx context.Context,
	dir string,
	args ...string,
) (*entities.CommandResult, error) {
	return it.RunWithEnv(ctx, dir, nil, args...)
}

// RunWithEnv executes the command in dir with extra environment variables
// layered over the inherited environment. A non-zero exit lands in the
// result; only a failure to start the process is an error.
func (it *RunnerRepository) RunWithEnv(
	ctx context.Context,
	dir string,
	env map[string]string,
	args ...string,
) (*entities.CommandResult, error) {
	if len(args) == 0 {
		return nil, errors.New("no command given")
	}

	logger.Debugf("Running: %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = os.Environ()
		for key, value := range env {
			cmd.Env = append(cmd.Env, key+"="+value)
		}
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &entities.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("failed to run %q: %w", args[0], err)
		}
		result.ExitCode = exitErr.ExitCode()
		logger.Debugf("Command %q exited with %d: %s", args[0], result.ExitCode, result.Stderr)
	}

	return result, nil
}
