package gcov

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
)

const (
	artifactExtension = ".gcov"
	fieldCount        = 3
	percentageScale   = 100
)

// CoverageRepository parses gcov annotated-source artifacts into the
// aggregate coverage model.
type CoverageRepository struct{}

// NewCoverageRepository creates a new coverage artifact parser.
func NewCoverageRepository() *CoverageRepository {
	return &CoverageRepository{}
}

var _ domainRepos.CoverageRepository = (*CoverageRepository)(nil)

// DiscoverArtifacts returns every .gcov file under rootPath in lexical
// traversal order.
func (it *CoverageRepository) DiscoverArtifacts(rootPath string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(rootPath, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == rootPath {
				return walkErr
			}
			return nil
		}
		if entry.Type().IsRegular() && strings.HasSuffix(entry.Name(), artifactExtension) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %q for coverage artifacts: %w", rootPath, err)
	}
	return paths, nil
}

// ParseAnnotatedFiles parses the given artifacts into a fresh model.
// Unreadable artifacts are logged and skipped; files contributing zero
// coverable lines are excluded from the model's file list.
func (it *CoverageRepository) ParseAnnotatedFiles(paths []string) (*entities.CoverageModel, error) {
	model := &entities.CoverageModel{}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warnf("Skipping unreadable coverage artifact %q: %v", path, err)
			continue
		}

		file := parseArtifact(artifactName(path), string(data))
		if file.TotalLines == 0 {
			continue
		}

		model.Files = append(model.Files, file)
		model.TotalLines += file.TotalLines
		model.CoveredLines += file.CoveredLines
	}

	model.Percentage = percentage(model.CoveredLines, model.TotalLines)
	return model, nil
}

// parseArtifact parses one annotated artifact. Each content line is
// "<executionCount>:<lineNumber>:<sourceText>", split into at most three
// fields so embedded colons in source text are preserved. Lines whose
// line-number field is not purely numeric are tool annotations and are
// ignored entirely.
func parseArtifact(name, content string) entities.FileCoverage {
	file := entities.FileCoverage{Name: name}

	for _, raw := range strings.Split(content, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		parts := strings.SplitN(raw, ":", fieldCount)
		if len(parts) < fieldCount {
			continue
		}

		lineNumber := strings.TrimSpace(parts[1])
		if !entities.IsDigits(lineNumber) {
			continue
		}
		number, err := strconv.Atoi(lineNumber)
		if err != nil {
			continue
		}

		record := entities.LineRecord{
			Number: number,
			Count:  strings.TrimSpace(parts[0]),
			Source: strings.TrimRight(parts[2], " \t\r"),
		}

		file.Lines = append(file.Lines, record)
		file.TotalLines++
		if record.Covered() {
			file.CoveredLines++
		}
	}

	file.Percentage = percentage(file.CoveredLines, file.TotalLines)
	return file
}

// artifactName strips the directory and the .gcov suffix, mirroring how
// the native tool names its outputs after the source file.
func artifactName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), artifactExtension)
}

func percentage(covered, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(covered) / float64(total) * percentageScale
}
