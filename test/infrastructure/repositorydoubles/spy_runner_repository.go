//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"strings"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	"github.com/rios0rios0/covgen/internal/domain/repositories"
)

// RunnerCall records a single command invocation.
type RunnerCall struct {
	Dir  string
	Env  map[string]string
	Args []string
}

// SpyRunnerRepository implements repositories.RunnerRepository as a
// configurable spy. Results are keyed by the space-joined argument vector;
// unscripted commands get Default (or a zero-exit result when Default is
// nil).
type SpyRunnerRepository struct {
	// --- scripted responses ---
	Results map[string]*entities.CommandResult
	Errs    map[string]error
	Default *entities.CommandResult

	// --- spy: calls received ---
	Calls []RunnerCall
}

var _ repositories.RunnerRepository = (*SpyRunnerRepository)(nil)

func (r *SpyRunnerRepository) Run(
	ctx context.Context, dir string, args ...string,
) (*entities.CommandResult, error) {
	return r.RunWithEnv(ctx, dir, nil, args...)
}

func (r *SpyRunnerRepository) RunWithEnv(
	_ context.Context, dir string, env map[string]string, args ...string,
) (*entities.CommandResult, error) {
	r.Calls = append(r.Calls, RunnerCall{Dir: dir, Env: env, Args: args})

	key := strings.Join(args, " ")
	if err, ok := r.Errs[key]; ok {
		return nil, err
	}
	if result, ok := r.Results[key]; ok {
		return result, nil
	}
	if r.Default != nil {
		return r.Default, nil
	}
	return &entities.CommandResult{ExitCode: 0}, nil
}

// CommandLines returns the space-joined argument vectors of all calls, in
// order, for simple assertions.
func (r *SpyRunnerRepository) CommandLines() []string {
	lines := make([]string, 0, len(r.Calls))
	for _, call := range r.Calls {
		lines = append(lines, strings.Join(call.Args, " "))
	}
	return lines
}
