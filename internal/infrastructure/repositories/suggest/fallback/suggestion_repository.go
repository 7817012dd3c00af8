package fallback

import (
	"context"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
)

// SuggestionRepository computes a deterministic default modification plan
// without any remote call. It always returns a structurally valid plan and
// never an error, which makes it a safe last resort.
type SuggestionRepository struct{}

// NewSuggestionRepository creates the deterministic plan generator.
func NewSuggestionRepository() *SuggestionRepository {
	return &SuggestionRepository{}
}

var _ domainRepos.SuggestionRepository = (*SuggestionRepository)(nil)

func (it *SuggestionRepository) Name() string { return "fallback" }

// Suggest returns the fixed coverage-flag plan for the detected build
// systems.
func (it *SuggestionRepository) Suggest(
	_ context.Context,
	analysis *entities.RepositoryAnalysis,
	_ []string,
	_ map[string]string,
) (*entities.ModificationPlan, error) {
	plan := &entities.ModificationPlan{
		GcovCommands: []string{"gcov *.gcda", "gcov *.c *.cpp"},
		Explanation:  "Basic Gcov compatibility modifications",
	}

	if analysis.HasMakefile || analysis.BuildSystem == entities.BuildSystemSimple {
		plan.MakefileChanges = []string{
			"CFLAGS += -fprofile-arcs -ftest-coverage -g -O0",
			"CXXFLAGS += -fprofile-arcs -ftest-coverage -g -O0",
			"LDFLAGS += -lgcov",
			"",
			"coverage:",
			"\t@echo 'Generating coverage report...'",
			"\tgcov *.gcda",
			"\tlcov --capture --directory . --output-file coverage.info",
			"\tgenhtml coverage.info --output-directory coverage_html",
		}
	}

	if analysis.HasCmake {
		plan.CmakeChanges = []string{
			"# Add coverage flags",
			`set(CMAKE_CXX_FLAGS "${CMAKE_CXX_FLAGS} -fprofile-arcs -ftest-coverage")`,
			`set(CMAKE_C_FLAGS "${CMAKE_C_FLAGS} -fprofile-arcs -ftest-coverage")`,
			"target_link_libraries(${TARGET_NAME} gcov)",
		}
	}

	return plan, nil
}
