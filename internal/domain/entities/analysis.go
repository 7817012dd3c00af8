package entities

import "strings"

// BuildSystem identifies the build tooling detected in a repository.
type BuildSystem string

const (
	BuildSystemMake    BuildSystem = "make"
	BuildSystemCmake   BuildSystem = "cmake"
	BuildSystemSimple  BuildSystem = "simple" // bare sources without any build files
	BuildSystemUnknown BuildSystem = "unknown"
)

// RepositoryAnalysis is an immutable snapshot of a repository's structure.
// It is built once per analysis pass; downstream components only read it.
type RepositoryAnalysis struct {
	ProjectType string
	BuildSystem BuildSystem
	Languages   []string // in order of first occurrence
	SourceFiles []string // relative paths, traversal order
	BuildFiles  []string
	TestFiles   []string
	HasMakefile bool
	HasCmake    bool
	HasTests    bool
}

// DeriveProjectType returns the project label for a set of detected languages.
func DeriveProjectType(languages []string) string {
	if len(languages) == 0 {
		return "unknown"
	}
	return strings.Join(languages, "/")
}

// DeriveBuildSystem resolves the build system from the detection flags.
func DeriveBuildSystem(hasCmake, hasMakefile bool, sourceFiles, buildFiles []string) BuildSystem {
	switch {
	case hasCmake:
		return BuildSystemCmake
	case hasMakefile:
		return BuildSystemMake
	case len(sourceFiles) > 0 && len(buildFiles) == 0:
		return BuildSystemSimple
	default:
		return BuildSystemUnknown
	}
}
