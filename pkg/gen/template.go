package gen

import (
	"regexp"
	"strings"
)

// formatInstructionsKey is the reserved placeholder name. It may appear in
// a template without a matching input value; the pipeline fills it from the
// parser's FormatInstructions.
const formatInstructionsKey = "format_instructions"

var placeholderRe = regexp.MustCompile(`\{(.*?)\}`)

// Template is an immutable prompt string containing {name} placeholders.
type Template string

// Placeholders returns the placeholder names in order of first appearance,
// without duplicates.
func (t Template) Placeholders() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(string(t), -1) {
		name := m[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// Validate checks the template contract: the placeholder set must equal
// keys(inputs) or keys(inputs) ∪ {"format_instructions"}. On mismatch it
// returns a *ContractError naming both sets.
//
// Validate is pure: it never mutates inputs and has no side effects.
func (t Template) Validate(inputs map[string]string) error {
	names := t.Placeholders()

	nameSet := make(map[string]struct{}, len(names))
	for _, n := range names {
		nameSet[n] = struct{}{}
	}

	keySet := make(map[string]struct{}, len(inputs))
	keys := make([]string, 0, len(inputs))
	for k := range inputs {
		keySet[k] = struct{}{}
		keys = append(keys, k)
	}

	// Exact match against keys(inputs).
	if setsEqual(nameSet, keySet) {
		return nil
	}

	// Exact match against keys(inputs) ∪ {format_instructions}.
	keySet[formatInstructionsKey] = struct{}{}
	if setsEqual(nameSet, keySet) {
		return nil
	}

	return &ContractError{Placeholders: names, Inputs: keys}
}

// Render substitutes every placeholder with its value from inputs.
// Placeholders without a value are left untouched; callers are expected to
// Validate first.
func (t Template) Render(inputs map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(string(t), func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := inputs[name]; ok {
			return v
		}
		return m
	})
}

// Dedent removes leading and trailing blank space from the template and
// strips the leading whitespace of every line. Prompt templates are written
// as indented Go string literals; the indentation is not part of the prompt.
func (t Template) Dedent() Template {
	lines := strings.Split(string(t), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return Template(strings.TrimSpace(strings.Join(lines, "\n")))
}

func setsEqual(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
