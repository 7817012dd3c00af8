package entities

// MissingFile describes a file the suggestion provider wants created.
type MissingFile struct {
	Path    string
	Content string
}

// ModificationPlan is a provider-generated description of the build-file
// edits and new files needed to make a repository coverage-compatible.
// It is never mutated after creation.
type ModificationPlan struct {
	MakefileChanges []string // lines appended to the Makefile
	CmakeChanges    []string // lines appended to CMakeLists.txt
	TestCompilation string   // exact shell command to compile tests, optional
	GcovCommands    []string // commands to extract coverage data
	MissingFiles    []MissingFile
	Explanation     string
}

// IsEmpty reports whether the plan carries no filesystem changes at all.
func (p *ModificationPlan) IsEmpty() bool {
	return len(p.MakefileChanges) == 0 &&
		len(p.CmakeChanges) == 0 &&
		len(p.MissingFiles) == 0
}
