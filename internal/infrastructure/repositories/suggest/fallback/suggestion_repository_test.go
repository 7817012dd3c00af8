//go:build unit

package fallback_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	"github.com/rios0rios0/covgen/internal/infrastructure/repositories/suggest/fallback"
	"github.com/rios0rios0/covgen/test/domain/entitybuilders"
)

func TestSuggestionRepository_Suggest(t *testing.T) {
	t.Parallel()

	t.Run("should produce Makefile changes for Make projects", func(t *testing.T) {
		t.Parallel()

		// given
		analysis := entitybuilders.NewAnalysisBuilder().BuildAnalysis()
		it := fallback.NewSuggestionRepository()

		// when
		plan, err := it.Suggest(context.Background(), analysis, nil, nil)

		// then
		require.NoError(t, err)
		assert.Contains(t, plan.MakefileChanges, "CFLAGS += -fprofile-arcs -ftest-coverage -g -O0")
		assert.Contains(t, plan.MakefileChanges, "LDFLAGS += -lgcov")
		assert.Empty(t, plan.CmakeChanges)
		assert.Equal(t, []string{"gcov *.gcda", "gcov *.c *.cpp"}, plan.GcovCommands)
		assert.Equal(t, "Basic Gcov compatibility modifications", plan.Explanation)
	})

	t.Run("should produce Makefile changes for bare simple projects", func(t *testing.T) {
		t.Parallel()

		// given
		analysis := entitybuilders.NewAnalysisBuilder().
			WithBuildSystem(entities.BuildSystemSimple).
			WithBuildFiles().
			WithMakefile(false).
			BuildAnalysis()
		it := fallback.NewSuggestionRepository()

		// when
		plan, err := it.Suggest(context.Background(), analysis, nil, nil)

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, plan.MakefileChanges)
	})

	t.Run("should produce CMake changes for CMake projects", func(t *testing.T) {
		t.Parallel()

		// given
		analysis := entitybuilders.NewAnalysisBuilder().
			WithBuildSystem(entities.BuildSystemCmake).
			WithBuildFiles("CMakeLists.txt").
			WithMakefile(false).
			WithCmake(true).
			BuildAnalysis()
		it := fallback.NewSuggestionRepository()

		// when
		plan, err := it.Suggest(context.Background(), analysis, nil, nil)

		// then
		require.NoError(t, err)
		assert.Empty(t, plan.MakefileChanges)
		assert.Len(t, plan.CmakeChanges, 4)
		assert.Contains(t, plan.CmakeChanges, "target_link_libraries(${TARGET_NAME} gcov)")
	})

	t.Run("should always carry extraction commands", func(t *testing.T) {
		t.Parallel()

		// given
		analysis := entitybuilders.NewAnalysisBuilder().
			WithBuildSystem(entities.BuildSystemUnknown).
			WithBuildFiles("configure.ac").
			WithMakefile(false).
			BuildAnalysis()
		it := fallback.NewSuggestionRepository()

		// when
		plan, err := it.Suggest(context.Background(), analysis, nil, nil)

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, plan.GcovCommands)
		assert.Equal(t, "fallback", it.Name())
	})
}
