package report

import (
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
)

const (
	reportFileName = "index.html"
	maxLinesShown  = 50

	thresholdHigh   = 85.0
	thresholdMedium = 50.0
)

// HTMLReportRepository renders a self-contained static coverage page. It is
// the renderer of last resort and is always available.
type HTMLReportRepository struct{}

// NewHTMLReportRepository creates a new self-contained HTML renderer.
func NewHTMLReportRepository() *HTMLReportRepository {
	return &HTMLReportRepository{}
}

var _ domainRepos.ReportRepository = (*HTMLReportRepository)(nil)

type fileView struct {
	Name          string
	CoverageClass string
	Percentage    float64
	CoveredLines  int
	TotalLines    int
	Lines         []lineView
	OmittedLines  int
}

type lineView struct {
	Number    int
	Count     string
	Source    string
	LineClass string
}

type reportView struct {
	RepoName     string
	Percentage   float64
	CoveredLines int
	TotalLines   int
	Files        []fileView
}

// Render writes index.html for the given model into outputDir.
func (it *HTMLReportRepository) Render(
	_ context.Context,
	repoPath string,
	model *entities.CoverageModel,
	outputDir string,
) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory %q: %w", outputDir, err)
	}

	target := filepath.Join(outputDir, reportFileName)
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create report file %q: %w", target, err)
	}
	defer out.Close()

	if execErr := reportTemplate.Execute(out, buildView(repoPath, model)); execErr != nil {
		return fmt.Errorf("failed to render coverage report: %w", execErr)
	}

	logger.Infof("Coverage report written to %s", target)
	return nil
}

func buildView(repoPath string, model *entities.CoverageModel) reportView {
	view := reportView{
		RepoName:     filepath.Base(repoPath),
		Percentage:   model.Percentage,
		CoveredLines: model.CoveredLines,
		TotalLines:   model.TotalLines,
	}

	for _, file := range model.Files {
		fv := fileView{
			Name:          file.Name,
			CoverageClass: coverageClass(file.Percentage),
			Percentage:    file.Percentage,
			CoveredLines:  file.CoveredLines,
			TotalLines:    file.TotalLines,
		}

		shown := file.Lines
		if len(shown) > maxLinesShown {
			fv.OmittedLines = len(shown) - maxLinesShown
			shown = shown[:maxLinesShown]
		}
		for _, line := range shown {
			lineClass := "line-uncovered"
			if line.Covered() {
				lineClass = "line-covered"
			}
			fv.Lines = append(fv.Lines, lineView{
				Number:    line.Number,
				Count:     line.Count,
				Source:    line.Source,
				LineClass: lineClass,
			})
		}

		view.Files = append(view.Files, fv)
	}

	return view
}

// coverageClass maps a percentage onto the three-way color classification.
func coverageClass(pct float64) string {
	switch {
	case pct >= thresholdHigh:
		return "coverage-high"
	case pct >= thresholdMedium:
		return "coverage-medium"
	default:
		return "coverage-low"
	}
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Code Coverage Report - {{.RepoName}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 40px; }
        .header { background: #f0f0f0; padding: 20px; border-radius: 5px; }
        .summary { margin: 20px 0; }
        .file { margin: 10px 0; padding: 15px; border: 1px solid #ddd; border-radius: 5px; }
        .coverage-high { background-color: #d4edda; }
        .coverage-medium { background-color: #fff3cd; }
        .coverage-low { background-color: #f8d7da; }
        .line { font-family: monospace; font-size: 12px; }
        .line-covered { background-color: #d4edda; }
        .line-uncovered { background-color: #f8d7da; }
        .line-number { color: #666; width: 50px; display: inline-block; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Code Coverage Report</h1>
        <h2>Repository: {{.RepoName}}</h2>
        <div class="summary">
            <strong>Overall Coverage: {{printf "%.1f" .Percentage}}%</strong>
            ({{.CoveredLines}}/{{.TotalLines}} lines)
        </div>
    </div>
{{range .Files}}
    <div class="file {{.CoverageClass}}">
        <h3>{{.Name}}</h3>
        <p>Coverage: {{printf "%.1f" .Percentage}}% ({{.CoveredLines}}/{{.TotalLines}} lines)</p>
        <div class="code">
{{- range .Lines}}
            <div class="line {{.LineClass}}"><span class="line-number">{{.Number}}:</span> {{.Count}} | {{.Source}}</div>
{{- end}}
{{- if .OmittedLines}}
            <p><em>... and {{.OmittedLines}} more lines</em></p>
{{- end}}
        </div>
    </div>
{{end}}
</body>
</html>
`))
