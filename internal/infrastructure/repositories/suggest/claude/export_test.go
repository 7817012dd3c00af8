package claude

// ParsePlan exports parsePlan for testing.
var ParsePlan = parsePlan //nolint:gochecknoglobals // test export

// BuildPrompt exports buildPrompt for testing.
var BuildPrompt = buildPrompt //nolint:gochecknoglobals // test export
