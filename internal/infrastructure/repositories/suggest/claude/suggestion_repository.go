package claude

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/covgen/internal/domain/entities"
	domainRepos "github.com/rios0rios0/covgen/internal/domain/repositories"
)

const (
	maxPromptSourceFiles = 10
	maxPromptBuildFiles  = 3
	maxExcerptLength     = 1000
)

// SuggestionRepository asks Claude for the build-file modifications needed
// to make a repository gcov-compatible. Any transport or parse failure is
// surfaced as an error so the caller can degrade to the deterministic plan.
type SuggestionRepository struct {
	client      anthropic.Client
	model       string
	maxTokens   int
	temperature float64
}

// NewSuggestionRepository creates a Claude-backed provider from the settings.
func NewSuggestionRepository(settings *entities.Settings) *SuggestionRepository {
	logger.Debugf(
		"Claude suggestion provider initialized (model: %s, region: %s)",
		settings.Provider.Model, settings.Provider.Region,
	)
	return &SuggestionRepository{
		client:      anthropic.NewClient(option.WithAPIKey(settings.Provider.APIKey)),
		model:       settings.Provider.Model,
		maxTokens:   settings.Provider.MaxTokens,
		temperature: settings.Provider.Temperature,
	}
}

var _ domainRepos.SuggestionRepository = (*SuggestionRepository)(nil)

func (it *SuggestionRepository) Name() string { return "claude" }

// Suggest builds the prompt from the analysis and issue list, calls the
// Messages API, and parses the structured plan out of the response text.
func (it *SuggestionRepository) Suggest(
	ctx context.Context,
	analysis *entities.RepositoryAnalysis,
	issues []string,
	buildFiles map[string]string,
) (*entities.ModificationPlan, error) {
	prompt := buildPrompt(analysis, issues, buildFiles)

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(it.model),
		MaxTokens: int64(it.maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if it.temperature > 0 {
		params.Temperature = anthropic.Float(it.temperature)
	}

	response, err := it.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("claude API call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range response.Content {
		text.WriteString(block.Text)
	}

	return parsePlan(text.String())
}

// buildPrompt renders the analysis context and current build files into
// the instruction prompt. Source files and build-file excerpts are capped
// to keep the prompt inside the token budget.
func buildPrompt(
	analysis *entities.RepositoryAnalysis,
	issues []string,
	buildFiles map[string]string,
) string {
	sourceFiles := analysis.SourceFiles
	if len(sourceFiles) > maxPromptSourceFiles {
		sourceFiles = sourceFiles[:maxPromptSourceFiles]
	}

	var prompt strings.Builder
	prompt.WriteString("You are a C/C++ build system expert. Help make this repository compatible with Gcov code coverage.\n\n")
	prompt.WriteString("Repository Analysis:\n")
	fmt.Fprintf(&prompt, "- Project Type: %s\n", analysis.ProjectType)
	fmt.Fprintf(&prompt, "- Build System: %s\n", analysis.BuildSystem)
	fmt.Fprintf(&prompt, "- Source Files: %s\n", strings.Join(sourceFiles, ", "))
	fmt.Fprintf(&prompt, "- Has Tests: %v\n", analysis.HasTests)

	prompt.WriteString("\nCompatibility Issues Found:\n")
	for _, issue := range issues {
		fmt.Fprintf(&prompt, "- %s\n", issue)
	}

	prompt.WriteString("\nCurrent Build Files:\n")
	included := 0
	for _, buildFile := range analysis.BuildFiles {
		content, ok := buildFiles[buildFile]
		if !ok {
			continue
		}
		if included >= maxPromptBuildFiles {
			break
		}
		if len(content) > maxExcerptLength {
			content = content[:maxExcerptLength]
		}
		fmt.Fprintf(&prompt, "\n=== %s ===\n%s...\n", buildFile, content)
		included++
	}

	prompt.WriteString(`
Please provide SPECIFIC modifications to make this repository Gcov-compatible:

1. MAKEFILE_CHANGES: Exact lines to add/modify in Makefile (if applicable)
2. CMAKE_CHANGES: Exact lines to add/modify in CMakeLists.txt (if applicable)
3. TEST_COMPILATION: How to compile tests with coverage
4. GCOV_COMMANDS: Exact commands to generate coverage data
5. MISSING_FILES: Any files that need to be created

Respond in JSON format:
{
    "modifications": {
        "makefile_changes": ["line1", "line2"],
        "cmake_changes": ["line1", "line2"],
        "test_compilation": "exact command",
        "gcov_commands": ["cmd1", "cmd2"],
        "missing_files": [{"path": "filename", "content": "file content"}]
    },
    "explanation": "Brief explanation of changes"
}`)

	return prompt.String()
}

// Wire format of the model's structured response.
type planPayload struct {
	Modifications modificationsPayload `json:"modifications"`
	Explanation   string               `json:"explanation"`
}

type modificationsPayload struct {
	MakefileChanges []string             `json:"makefile_changes"`
	CmakeChanges    []string             `json:"cmake_changes"`
	TestCompilation string               `json:"test_compilation"`
	GcovCommands    []string             `json:"gcov_commands"`
	MissingFiles    []missingFilePayload `json:"missing_files"`
}

type missingFilePayload struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// parsePlan extracts the first JSON object from the response text. Models
// often wrap the JSON in prose, so everything before the first brace and
// after the last one is discarded.
func parsePlan(response string) (*entities.ModificationPlan, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end <= start {
		return nil, errors.New("no JSON object found in model response")
	}

	var payload planPayload
	if err := json.Unmarshal([]byte(response[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("malformed modification plan: %w", err)
	}

	plan := &entities.ModificationPlan{
		MakefileChanges: payload.Modifications.MakefileChanges,
		CmakeChanges:    payload.Modifications.CmakeChanges,
		TestCompilation: payload.Modifications.TestCompilation,
		GcovCommands:    payload.Modifications.GcovCommands,
		Explanation:     payload.Explanation,
	}
	for _, missing := range payload.Modifications.MissingFiles {
		if missing.Path == "" {
			continue
		}
		plan.MissingFiles = append(plan.MissingFiles, entities.MissingFile{
			Path:    missing.Path,
			Content: missing.Content,
		})
	}

	return plan, nil
}
