package compat

import (
	"os"
	"path/filepath"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
)

// Issue strings reported by the compatibility rules.
const (
	IssueMakefileCoverageFlags = "Makefile missing Gcov coverage flags"
	IssueMakefileLinkingFlags  = "Makefile missing Gcov linking flags"
	IssueCmakeCoverageConfig   = "CMakeLists.txt missing coverage configuration"
	IssueNoTests               = "No test files found"
	IssueMultipleSourcesNoBS   = "Multiple source files without build system"
)

// CompatibilityRepository checks whether a repository can already produce
// gcov artifacts without modification.
type CompatibilityRepository struct{}

// NewCompatibilityRepository creates a new compatibility checker.
func NewCompatibilityRepository() *CompatibilityRepository {
	return &CompatibilityRepository{}
}

var _ domainRepos.CompatibilityRepository = (*CompatibilityRepository)(nil)

// Check evaluates every rule and appends each failing one to the issue
// list, in rule order. The checker is conservative: unreadable build files
// are read as empty content, so they flag issues rather than crash.
func (it *CompatibilityRepository) Check(
	rootPath string,
	analysis *entities.RepositoryAnalysis,
) (bool, []string) {
	var issues []string

	if analysis.HasMakefile {
		issues = append(issues, checkMakefile(rootPath, analysis)...)
	}

	if analysis.HasCmake {
		issues = append(issues, checkCmakeFiles(rootPath, analysis)...)
	}

	if !analysis.HasTests {
		issues = append(issues, IssueNoTests)
	}

	if analysis.BuildSystem == entities.BuildSystemSimple && len(analysis.SourceFiles) > 1 {
		issues = append(issues, IssueMultipleSourcesNoBS)
	}

	return len(issues) == 0, issues
}

// checkMakefile inspects the first build file whose name contains "makefile".
func checkMakefile(rootPath string, analysis *entities.RepositoryAnalysis) []string {
	var makefilePath string
	for _, buildFile := range analysis.BuildFiles {
		if strings.Contains(strings.ToLower(buildFile), "makefile") {
			makefilePath = filepath.Join(rootPath, buildFile)
			break
		}
	}
	if makefilePath == "" {
		return nil
	}

	content := readLenient(makefilePath)

	var issues []string
	if !strings.Contains(content, "-fprofile-arcs") || !strings.Contains(content, "-ftest-coverage") {
		issues = append(issues, IssueMakefileCoverageFlags)
	}
	if !strings.Contains(content, "-lgcov") {
		issues = append(issues, IssueMakefileLinkingFlags)
	}
	return issues
}

// checkCmakeFiles inspects every build file whose name contains "cmake";
// the issue may be appended once per offending file.
func checkCmakeFiles(rootPath string, analysis *entities.RepositoryAnalysis) []string {
	var issues []string
	for _, buildFile := range analysis.BuildFiles {
		if !strings.Contains(strings.ToLower(buildFile), "cmake") {
			continue
		}

		content := strings.ToLower(readLenient(filepath.Join(rootPath, buildFile)))
		if !strings.Contains(content, "coverage") && !strings.Contains(content, "gcov") {
			issues = append(issues, IssueCmakeCoverageConfig)
		}
	}
	return issues
}

// readLenient returns the file content, or empty content when the file
// cannot be read.
func readLenient(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debugf("Treating unreadable build file %q as empty: %v", path, err)
		return ""
	}
	return string(data)
}
