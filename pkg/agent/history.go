package agent

import (
	"fmt"
	"strings"
)

// observationLabel is the history label for plain-text observations.
const observationLabel = "observation data"

// HistoryEntry is one line of an agent's private conversation history.
// Entries are appended in arrival order, never removed or reordered, and
// are read-only once appended.
type HistoryEntry struct {
	Speaker string
	Kind    string
	Content string
}

// formatHistory serializes history entries for prompt injection, one
// "speaker kind content" line per entry.
func formatHistory(entries []HistoryEntry) string {
	var sb strings.Builder
	for i, e := range entries {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%s %s %s", e.Speaker, e.Kind, e.Content)
	}
	return sb.String()
}
