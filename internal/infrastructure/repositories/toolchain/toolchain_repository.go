package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
)

const (
	makefileName   = "Makefile"
	cmakeName      = "CMakeLists.txt"
	cmakeBuildDir  = "build"
	binaryPrefix   = "covgen_test_"
	executableBits = 0o111
)

// coverageFlags instrument the build for gcov statement counting.
var coverageFlags = []string{"-fprofile-arcs", "-ftest-coverage", "-g", "-O0"}

// ToolchainRepository invokes the external compiler and gcov tools, trying
// the documented fallback chain at each step.
type ToolchainRepository struct {
	runner domainRepos.RunnerRepository
}

// NewToolchainRepository creates a new coverage toolchain driver.
func NewToolchainRepository(runner domainRepos.RunnerRepository) *ToolchainRepository {
	return &ToolchainRepository{runner: runner}
}

var _ domainRepos.ToolchainRepository = (*ToolchainRepository)(nil)

func coverageEnv() map[string]string {
	flags := strings.Join(coverageFlags, " ")
	return map[string]string{
		"CFLAGS":   flags,
		"CXXFLAGS": flags,
		"LDFLAGS":  "-lgcov",
	}
}

// BuildWithCoverage builds the repository with instrumentation. The build
// path is chosen by the detected (or freshly patched) build files: make,
// then cmake, then direct per-source compilation.
func (it *ToolchainRepository) BuildWithCoverage(
	ctx context.Context,
	repoPath string,
	analysis *entities.RepositoryAnalysis,
	plan *entities.ModificationPlan,
) error {
	logger.Info("Building project with coverage instrumentation...")

	switch {
	case analysis.BuildSystem == entities.BuildSystemMake || fileExists(filepath.Join(repoPath, makefileName)):
		return it.buildWithMake(ctx, repoPath, analysis, plan)
	case analysis.BuildSystem == entities.BuildSystemCmake || fileExists(filepath.Join(repoPath, cmakeName)):
		return it.buildWithCmake(ctx, repoPath)
	default:
		return it.compileDirect(ctx, repoPath, analysis)
	}
}

func (it *ToolchainRepository) buildWithMake(
	ctx context.Context,
	repoPath string,
	analysis *entities.RepositoryAnalysis,
	plan *entities.ModificationPlan,
) error {
	env := coverageEnv()

	// Stale objects would carry no instrumentation; a failing clean is fine.
	if _, err := it.runner.RunWithEnv(ctx, repoPath, env, "make", "clean"); err != nil {
		logger.Debugf("make clean failed to start: %v", err)
	}

	if plan != nil && plan.TestCompilation != "" {
		logger.Infof("Using suggested compilation command: %s", plan.TestCompilation)
		result, err := it.runner.RunWithEnv(ctx, repoPath, env, "sh", "-c", plan.TestCompilation)
		if err == nil && result.Succeeded() {
			return nil
		}
		logger.Warn("Suggested compilation failed, trying make...")
	}

	result, err := it.runner.RunWithEnv(ctx, repoPath, env, "make")
	if err == nil && result.Succeeded() {
		return nil
	}

	logger.Warn("make failed, falling back to direct compilation")
	return it.compileDirect(ctx, repoPath, analysis)
}

func (it *ToolchainRepository) buildWithCmake(ctx context.Context, repoPath string) error {
	buildDir := filepath.Join(repoPath, cmakeBuildDir)
	if err := os.MkdirAll(buildDir, 0o755); err != nil {
		return fmt.Errorf("failed to create build directory: %w", err)
	}

	flags := strings.Join(coverageFlags, " ")
	configure, err := it.runner.Run(ctx, buildDir,
		"cmake", "..",
		"-DCMAKE_C_FLAGS="+flags,
		"-DCMAKE_CXX_FLAGS="+flags,
	)
	if err != nil {
		return fmt.Errorf("failed to run cmake: %w", err)
	}
	if !configure.Succeeded() {
		return fmt.Errorf("cmake configure failed: %s", configure.Stderr)
	}

	build, err := it.runner.Run(ctx, buildDir, "cmake", "--build", ".")
	if err != nil {
		return fmt.Errorf("failed to run cmake build: %w", err)
	}
	if !build.Succeeded() {
		return fmt.Errorf("cmake build failed: %s", build.Stderr)
	}

	return nil
}

// compileDirect compiles each source file into its own instrumented binary,
// the path for repositories without a usable build system.
func (it *ToolchainRepository) compileDirect(
	ctx context.Context,
	repoPath string,
	analysis *entities.RepositoryAnalysis,
) error {
	compiledAny := false

	for index, sourceFile := range analysis.SourceFiles {
		compiler := "g++"
		if strings.HasSuffix(sourceFile, ".c") {
			compiler = "gcc"
		}

		output := fmt.Sprintf("%s%d", binaryPrefix, index)
		args := append([]string{compiler}, coverageFlags...)
		args = append(args, sourceFile, "-lgcov", "-o", output)

		result, err := it.runner.Run(ctx, repoPath, args...)
		if err == nil && result.Succeeded() {
			logger.Infof("Compiled %s -> %s", sourceFile, output)
			compiledAny = true
		} else {
			logger.Warnf("Failed to compile %s", sourceFile)
		}
	}

	if !compiledAny {
		return errors.New("no source file could be compiled with coverage instrumentation")
	}
	return nil
}

// RunTests executes the discovered binaries best-effort so execution counts
// get written; a failing binary does not abort the remaining ones.
func (it *ToolchainRepository) RunTests(ctx context.Context, repoPath string) {
	executables := discoverExecutables(repoPath)
	if len(executables) == 0 {
		logger.Warn("No executables found to run for testing")
		return
	}

	for _, executable := range executables {
		logger.Infof("Running: %s", filepath.Base(executable))
		result, err := it.runner.Run(ctx, repoPath, executable)
		if err != nil || !result.Succeeded() {
			logger.Warnf("%s execution failed, continuing...", filepath.Base(executable))
		}
	}
}

// discoverExecutables finds candidate test binaries in the repository root
// and the cmake build directory.
func discoverExecutables(repoPath string) []string {
	var executables []string
	for _, dir := range []string{repoPath, filepath.Join(repoPath, cmakeBuildDir)} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			name := entry.Name()
			if !strings.HasPrefix(strings.ToLower(name), "test") &&
				!strings.HasPrefix(name, binaryPrefix) {
				continue
			}
			info, infoErr := entry.Info()
			if infoErr != nil || info.Mode().Perm()&executableBits == 0 {
				continue
			}
			executables = append(executables, filepath.Join(dir, name))
		}
	}
	return executables
}

// ExtractCoverage runs gcov over the execution data. Suggested commands
// take precedence; otherwise one command per source file, with a generic
// fallback when the analysis found none. Success is any command exiting
// cleanly, or any annotated artifact existing afterwards.
func (it *ToolchainRepository) ExtractCoverage(
	ctx context.Context,
	repoPath string,
	analysis *entities.RepositoryAnalysis,
	plan *entities.ModificationPlan,
) error {
	logger.Info("Generating coverage data with gcov...")

	commands := gcovCommands(analysis, plan)

	succeeded := false
	for _, command := range commands {
		result, err := it.runner.Run(ctx, repoPath, "sh", "-c", command)
		if err == nil && result.Succeeded() {
			succeeded = true
			logger.Debugf("%q executed successfully", command)
		} else {
			logger.Debugf("%q failed, trying next...", command)
		}
	}

	artifacts := countArtifacts(repoPath)
	logger.Infof("Generated %d annotated coverage files", artifacts)

	if !succeeded && artifacts == 0 {
		return errors.New("could not extract any coverage data")
	}
	return nil
}

func gcovCommands(analysis *entities.RepositoryAnalysis, plan *entities.ModificationPlan) []string {
	if plan != nil && len(plan.GcovCommands) > 0 {
		return plan.GcovCommands
	}

	var commands []string
	for _, sourceFile := range analysis.SourceFiles {
		commands = append(commands, "gcov "+sourceFile)
	}
	if len(commands) == 0 {
		commands = []string{"gcov main.c", "gcov *.c"}
	}
	return commands
}

func countArtifacts(repoPath string) int {
	count := 0
	_ = filepath.WalkDir(repoPath, func(_ string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), ".gcov") {
			count++
		}
		return nil
	})
	return count
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
