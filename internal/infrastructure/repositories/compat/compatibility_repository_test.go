//go:build unit

package compat_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	"github.com/rios0rios0/covgen/internal/infrastructure/repositories/compat"
	"github.com/rios0rios0/covgen/test/domain/entitybuilders"
)

func writeFile(t *testing.T, root, relPath, content string) {
	t.Helper()
	path := filepath.Join(root, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCompatibilityRepository_Check(t *testing.T) {
	t.Parallel()

	t.Run("should accept a Makefile with all coverage flags", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "Makefile",
			"CFLAGS = -fprofile-arcs -ftest-coverage\nLDFLAGS = -lgcov\n")
		analysis := entitybuilders.NewAnalysisBuilder().BuildAnalysis()
		it := compat.NewCompatibilityRepository()

		// when
		compatible, issues := it.Check(root, analysis)

		// then
		assert.True(t, compatible)
		assert.Empty(t, issues)
	})

	t.Run("should flag only the linking issue when -lgcov is missing", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "Makefile",
			"CFLAGS = -fprofile-arcs -ftest-coverage\n")
		analysis := entitybuilders.NewAnalysisBuilder().BuildAnalysis()
		it := compat.NewCompatibilityRepository()

		// when
		compatible, issues := it.Check(root, analysis)

		// then
		assert.False(t, compatible)
		assert.Equal(t, []string{compat.IssueMakefileLinkingFlags}, issues)
	})

	t.Run("should flag both Makefile issues when neither flag set is present", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "Makefile", "all:\n\tgcc main.c\n")
		analysis := entitybuilders.NewAnalysisBuilder().BuildAnalysis()
		it := compat.NewCompatibilityRepository()

		// when
		compatible, issues := it.Check(root, analysis)

		// then
		assert.False(t, compatible)
		assert.Equal(t, []string{
			compat.IssueMakefileCoverageFlags,
			compat.IssueMakefileLinkingFlags,
		}, issues)
	})

	t.Run("should treat an unreadable Makefile as empty content", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		analysis := entitybuilders.NewAnalysisBuilder().BuildAnalysis()
		it := compat.NewCompatibilityRepository()

		// when
		compatible, issues := it.Check(root, analysis)

		// then
		assert.False(t, compatible)
		assert.Contains(t, issues, compat.IssueMakefileCoverageFlags)
		assert.Contains(t, issues, compat.IssueMakefileLinkingFlags)
	})

	t.Run("should flag every CMake file without coverage configuration", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "CMakeLists.txt", "project(demo)\n")
		writeFile(t, root, "lib/CMakeLists.txt", "add_library(demo lib.c)\n")
		analysis := entitybuilders.NewAnalysisBuilder().
			WithBuildSystem(entities.BuildSystemCmake).
			WithBuildFiles("CMakeLists.txt", filepath.Join("lib", "CMakeLists.txt")).
			WithMakefile(false).
			WithCmake(true).
			BuildAnalysis()
		it := compat.NewCompatibilityRepository()

		// when
		compatible, issues := it.Check(root, analysis)

		// then
		assert.False(t, compatible)
		assert.Equal(t, []string{
			compat.IssueCmakeCoverageConfig,
			compat.IssueCmakeCoverageConfig,
		}, issues)
	})

	t.Run("should accept a CMake file mentioning coverage regardless of case", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "CMakeLists.txt",
			"project(demo)\nset(CMAKE_C_FLAGS \"--COVERAGE\")\n")
		analysis := entitybuilders.NewAnalysisBuilder().
			WithBuildSystem(entities.BuildSystemCmake).
			WithBuildFiles("CMakeLists.txt").
			WithMakefile(false).
			WithCmake(true).
			BuildAnalysis()
		it := compat.NewCompatibilityRepository()

		// when
		compatible, issues := it.Check(root, analysis)

		// then
		assert.True(t, compatible)
		assert.Empty(t, issues)
	})

	t.Run("should flag bare multi-source repositories without tests", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "main.c", "")
		writeFile(t, root, "helper.c", "")
		analysis := entitybuilders.NewAnalysisBuilder().
			WithBuildSystem(entities.BuildSystemSimple).
			WithSourceFiles("main.c", "helper.c").
			WithBuildFiles().
			WithTestFiles().
			WithMakefile(false).
			BuildAnalysis()
		it := compat.NewCompatibilityRepository()

		// when
		compatible, issues := it.Check(root, analysis)

		// then
		assert.False(t, compatible)
		assert.Equal(t, []string{
			compat.IssueNoTests,
			compat.IssueMultipleSourcesNoBS,
		}, issues)
	})

	t.Run("should accept a single bare source file with tests", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "main.c", "")
		analysis := entitybuilders.NewAnalysisBuilder().
			WithBuildSystem(entities.BuildSystemSimple).
			WithSourceFiles("main.c").
			WithBuildFiles().
			WithTestFiles("run_tests.sh").
			WithMakefile(false).
			BuildAnalysis()
		it := compat.NewCompatibilityRepository()

		// when
		compatible, issues := it.Check(root, analysis)

		// then
		assert.True(t, compatible)
		assert.Empty(t, issues)
	})
}
