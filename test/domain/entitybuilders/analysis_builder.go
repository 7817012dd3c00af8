//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/covgen/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// AnalysisBuilder helps create test repository analyses with a fluent
// interface.
type AnalysisBuilder struct {
	*testkit.BaseBuilder
	projectType string
	buildSystem entities.BuildSystem
	languages   []string
	sourceFiles []string
	buildFiles  []string
	testFiles   []string
	hasMakefile bool
	hasCmake    bool
	hasTests    bool
}

// NewAnalysisBuilder creates a new analysis builder with sensible defaults:
// a Make-based C project with one source file and one test file.
func NewAnalysisBuilder() *AnalysisBuilder {
	return &AnalysisBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		projectType: "c",
		buildSystem: entities.BuildSystemMake,
		languages:   []string{"c"},
		sourceFiles: []string{"main.c"},
		buildFiles:  []string{"Makefile"},
		testFiles:   []string{"tests/test_main.c"},
		hasMakefile: true,
		hasCmake:    false,
		hasTests:    true,
	}
}

// WithProjectType sets the project type label.
func (b *AnalysisBuilder) WithProjectType(projectType string) *AnalysisBuilder {
	b.projectType = projectType
	return b
}

// WithBuildSystem sets the build system.
func (b *AnalysisBuilder) WithBuildSystem(buildSystem entities.BuildSystem) *AnalysisBuilder {
	b.buildSystem = buildSystem
	return b
}

// WithLanguages sets the detected languages.
func (b *AnalysisBuilder) WithLanguages(languages ...string) *AnalysisBuilder {
	b.languages = languages
	return b
}

// WithSourceFiles sets the source file list.
func (b *AnalysisBuilder) WithSourceFiles(files ...string) *AnalysisBuilder {
	b.sourceFiles = files
	return b
}

// WithBuildFiles sets the build file list and the detection flags derived
// from it.
func (b *AnalysisBuilder) WithBuildFiles(files ...string) *AnalysisBuilder {
	b.buildFiles = files
	return b
}

// WithTestFiles sets the test file list.
func (b *AnalysisBuilder) WithTestFiles(files ...string) *AnalysisBuilder {
	b.testFiles = files
	b.hasTests = len(files) > 0
	return b
}

// WithMakefile sets the Makefile detection flag.
func (b *AnalysisBuilder) WithMakefile(hasMakefile bool) *AnalysisBuilder {
	b.hasMakefile = hasMakefile
	return b
}

// WithCmake sets the CMake detection flag.
func (b *AnalysisBuilder) WithCmake(hasCmake bool) *AnalysisBuilder {
	b.hasCmake = hasCmake
	return b
}

// Build creates the analysis (satisfies testkit.Builder interface).
func (b *AnalysisBuilder) Build() interface{} {
	return b.BuildAnalysis()
}

// BuildAnalysis creates the analysis with a concrete return type.
func (b *AnalysisBuilder) BuildAnalysis() *entities.RepositoryAnalysis {
	return &entities.RepositoryAnalysis{
		ProjectType: b.projectType,
		BuildSystem: b.buildSystem,
		Languages:   b.languages,
		SourceFiles: b.sourceFiles,
		BuildFiles:  b.buildFiles,
		TestFiles:   b.testFiles,
		HasMakefile: b.hasMakefile,
		HasCmake:    b.hasCmake,
		HasTests:    b.hasTests,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *AnalysisBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.projectType = "c"
	b.buildSystem = entities.BuildSystemMake
	b.languages = []string{"c"}
	b.sourceFiles = []string{"main.c"}
	b.buildFiles = []string{"Makefile"}
	b.testFiles = []string{"tests/test_main.c"}
	b.hasMakefile = true
	b.hasCmake = false
	b.hasTests = true
	return b
}

// Clone creates a deep copy of the AnalysisBuilder.
func (b *AnalysisBuilder) Clone() testkit.Builder {
	return &AnalysisBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		projectType: b.projectType,
		buildSystem: b.buildSystem,
		languages:   append([]string(nil), b.languages...),
		sourceFiles: append([]string(nil), b.sourceFiles...),
		buildFiles:  append([]string(nil), b.buildFiles...),
		testFiles:   append([]string(nil), b.testFiles...),
		hasMakefile: b.hasMakefile,
		hasCmake:    b.hasCmake,
		hasTests:    b.hasTests,
	}
}
