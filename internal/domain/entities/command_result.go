package entities

// CommandResult is the outcome of one external tool invocation. A non-zero
// exit code is data for the caller's fallback logic, not an error.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Succeeded reports whether the command exited cleanly.
func (r *CommandResult) Succeeded() bool {
	return r.ExitCode == 0
}
