// Package cli provides terminal output helpers for the parley
// command-line tool: lipgloss styling, episode transcript rendering,
// and structured output formatting (JSON, YAML, raw).
package cli
