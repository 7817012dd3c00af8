package entities

import "strconv"

// LineRecord is one annotated source line from a coverage artifact.
type LineRecord struct {
	Number int
	Count  string // raw execution-count field, e.g. "5", "0", "#####", "-"
	Source string
}

// Covered reports whether the line was executed at least once.
// Non-numeric markers ("#####", "-") and "0" count as not covered.
func (l LineRecord) Covered() bool {
	if !IsDigits(l.Count) {
		return false
	}
	count, err := strconv.ParseUint(l.Count, 10, 64)
	return err == nil && count > 0
}

// FileCoverage aggregates the line records of a single source file.
type FileCoverage struct {
	Name         string
	Lines        []LineRecord
	TotalLines   int
	CoveredLines int
	Percentage   float64
}

// CoverageModel is the aggregate coverage report model. It is built fresh
// for each report generation and read-only once built.
type CoverageModel struct {
	Files        []FileCoverage
	TotalLines   int
	CoveredLines int
	Percentage   float64
}

// IsDigits reports whether s is non-empty and composed entirely of digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
