//go:build unit

package report_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	"github.com/rios0rios0/covgen/internal/infrastructure/repositories/report"
)

func renderToString(t *testing.T, model *entities.CoverageModel) string {
	t.Helper()
	outputDir := t.TempDir()
	it := report.NewHTMLReportRepository()
	require.NoError(t, it.Render(context.Background(), "/tmp/myrepo", model, outputDir))
	data, err := os.ReadFile(filepath.Join(outputDir, "index.html"))
	require.NoError(t, err)
	return string(data)
}

func TestHTMLReportRepository_Render(t *testing.T) {
	t.Parallel()

	t.Run("should render the summary and per-file sections", func(t *testing.T) {
		t.Parallel()

		// given
		model := &entities.CoverageModel{
			Files: []entities.FileCoverage{
				{
					Name: "main.c",
					Lines: []entities.LineRecord{
						{Number: 1, Count: "5", Source: "int main(void) {"},
						{Number: 2, Count: "#####", Source: "    unreachable();"},
					},
					TotalLines:   2,
					CoveredLines: 1,
					Percentage:   50.0,
				},
			},
			TotalLines:   2,
			CoveredLines: 1,
			Percentage:   50.0,
		}

		// when
		html := renderToString(t, model)

		// then
		assert.Contains(t, html, "Repository: myrepo")
		assert.Contains(t, html, "Overall Coverage: 50.0%")
		assert.Contains(t, html, "(1/2 lines)")
		assert.Contains(t, html, "<h3>main.c</h3>")
		assert.Contains(t, html, "line-covered")
		assert.Contains(t, html, "line-uncovered")
	})

	t.Run("should map percentages onto the three color classes", func(t *testing.T) {
		t.Parallel()

		// given
		model := &entities.CoverageModel{
			Files: []entities.FileCoverage{
				{Name: "high.c", TotalLines: 1, Percentage: 92.0},
				{Name: "medium.c", TotalLines: 1, Percentage: 85.0},
				{Name: "mid.c", TotalLines: 1, Percentage: 50.0},
				{Name: "low.c", TotalLines: 1, Percentage: 49.9},
			},
		}
		model.Files[1].Percentage = 85.0

		// when
		html := renderToString(t, model)

		// then
		assert.Contains(t, html, `class="file coverage-high"`)
		assert.Contains(t, html, `class="file coverage-medium"`)
		assert.Contains(t, html, `class="file coverage-low"`)
	})

	t.Run("should cap the shown lines and note the omission", func(t *testing.T) {
		t.Parallel()

		// given
		file := entities.FileCoverage{Name: "big.c"}
		for i := 1; i <= 60; i++ {
			file.Lines = append(file.Lines, entities.LineRecord{
				Number: i, Count: "1", Source: fmt.Sprintf("line%d();", i),
			})
		}
		file.TotalLines = 60
		file.CoveredLines = 60
		file.Percentage = 100.0
		model := &entities.CoverageModel{Files: []entities.FileCoverage{file}}

		// when
		html := renderToString(t, model)

		// then
		assert.Contains(t, html, "line50();")
		assert.NotContains(t, html, "line51();")
		assert.Contains(t, html, "... and 10 more lines")
	})

	t.Run("should escape markup in source text", func(t *testing.T) {
		t.Parallel()

		// given
		model := &entities.CoverageModel{
			Files: []entities.FileCoverage{
				{
					Name: "cmp.c",
					Lines: []entities.LineRecord{
						{Number: 1, Count: "1", Source: "if (a < b && b > c) {"},
					},
					TotalLines: 1,
				},
			},
		}

		// when
		html := renderToString(t, model)

		// then
		assert.NotContains(t, html, "if (a < b && b > c) {")
		assert.Contains(t, html, "a &lt; b")
	})

	t.Run("should render an empty model without files", func(t *testing.T) {
		t.Parallel()

		// given
		model := &entities.CoverageModel{}

		// when
		html := renderToString(t, model)

		// then
		assert.Contains(t, html, "Overall Coverage: 0.0%")
		assert.NotContains(t, html, "<h3>")
	})

	t.Run("should create the output directory when missing", func(t *testing.T) {
		t.Parallel()

		// given
		outputDir := filepath.Join(t.TempDir(), "nested", "coverage_output")
		it := report.NewHTMLReportRepository()

		// when
		err := it.Render(context.Background(), "/tmp/repo", &entities.CoverageModel{}, outputDir)

		// then
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(outputDir, "index.html"))
	})
}
