package analyzer

import (
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
	languageC   = "c"
	languageCpp = "c++"
)

// autotoolsNames are build files recognized but not tied to a build system flag.
var autotoolsNames = map[string]bool{
	"configure.ac": true,
	"configure.in": true,
	"autoconf":     true,
	"autotools":    true,
}

// cFamilyExtensions maps recognized source extensions to their language label.
var cFamilyExtensions = map[string]string{
	".c":   languageC,
	".cpp": languageCpp,
	".cc":  languageCpp,
	".cxx": languageCpp,
	".c++": languageCpp,
}

// AnalyzerRepository classifies every regular file under a root into build,
// source, and test files with first-match-wins rules.
type AnalyzerRepository struct{}

// NewAnalyzerRepository creates a new repository analyzer.
func NewAnalyzerRepository() *AnalyzerRepository {
	return &AnalyzerRepository{}
}

var _ domainRepos.AnalyzerRepository = (*AnalyzerRepository)(nil)

// Analyze performs a single recursive traversal of rootPath and returns the
// structural summary. Only an unreadable root is fatal; unreadable entries
// below it are skipped.
func (it *AnalyzerRepository) Analyze(rootPath string) (*entities.RepositoryAnalysis, error) {
	if _, err := os.Stat(rootPath); err != nil {
		return nil, fmt.Errorf("cannot read repository root %q: %w", rootPath, err)
	}

	analysis := &entities.RepositoryAnalysis{
		ProjectType: "unknown",
		BuildSystem: entities.BuildSystemUnknown,
	}

	walkErr := filepath.WalkDir(rootPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == rootPath {
				return err
			}
			logger.Debugf("Skipping unreadable path %q: %v", path, err)
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}

		relPath, relErr := filepath.Rel(rootPath, path)
		if relErr != nil {
			return nil
		}

		classify(analysis, relPath, entry.Name())
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to traverse %q: %w", rootPath, walkErr)
	}

	analysis.ProjectType = entities.DeriveProjectType(analysis.Languages)
	analysis.BuildSystem = entities.DeriveBuildSystem(
		analysis.HasCmake, analysis.HasMakefile,
		analysis.SourceFiles, analysis.BuildFiles,
	)

	return analysis, nil
}

// classify applies the classification rules to one file. Each rule is
// mutually exclusive in evaluation order: the first match terminates
// classification for that file.
func classify(analysis *entities.RepositoryAnalysis, relPath, name string) {
	lowerName := strings.ToLower(name)

	switch {
	case lowerName == "makefile" || lowerName == "makefile.am":
		analysis.HasMakefile = true
		analysis.BuildFiles = append(analysis.BuildFiles, relPath)

	case lowerName == "cmakelists.txt":
		analysis.HasCmake = true
		analysis.BuildFiles = append(analysis.BuildFiles, relPath)

	case autotoolsNames[lowerName]:
		analysis.BuildFiles = append(analysis.BuildFiles, relPath)

	default:
		if language, ok := cFamilyExtensions[strings.ToLower(filepath.Ext(name))]; ok {
			analysis.SourceFiles = append(analysis.SourceFiles, relPath)
			recordLanguage(analysis, language)
			return
		}
		if isTestFile(relPath, lowerName) {
			analysis.TestFiles = append(analysis.TestFiles, relPath)
			analysis.HasTests = true
		}
	}
}

// recordLanguage adds a language on its first occurrence, preserving order.
func recordLanguage(analysis *entities.RepositoryAnalysis, language string) {
	for _, known := range analysis.Languages {
		if known == language {
			return
		}
	}
	analysis.Languages = append(analysis.Languages, language)
}

func isTestFile(relPath, lowerName string) bool {
	if strings.Contains(lowerName, "test") {
		return true
	}
	parent := strings.ToLower(filepath.Base(filepath.Dir(relPath)))
	return parent == "test" || parent == "tests"
}
