package gen

import (
	"errors"
	"testing"
)

func TestTemplatePlaceholders(t *testing.T) {
	tmpl := Template("You are {agent}. {history} Turn #{turn}. {agent} speaks.")
	got := tmpl.Placeholders()
	want := []string{"agent", "history", "turn"}
	if len(got) != len(want) {
		t.Fatalf("Placeholders() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Placeholders() = %v, want %v", got, want)
		}
	}
}

func TestTemplateValidate(t *testing.T) {
	tmpl := Template("Hello {name}, goal: {goal}")

	// Exact match of placeholder set and input keys.
	if err := tmpl.Validate(map[string]string{"name": "a", "goal": "b"}); err != nil {
		t.Fatalf("Validate exact match: %v", err)
	}

	// format_instructions may appear without an input value.
	withFI := Template("Hello {name}\n{format_instructions}")
	if err := withFI.Validate(map[string]string{"name": "a"}); err != nil {
		t.Fatalf("Validate with format_instructions placeholder: %v", err)
	}

	// Extra input key is a contract violation.
	err := tmpl.Validate(map[string]string{"name": "a", "goal": "b", "extra": "c"})
	var ce *ContractError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ContractError for extra input, got %v", err)
	}

	// Missing input key is a contract violation.
	err = tmpl.Validate(map[string]string{"name": "a"})
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ContractError for missing input, got %v", err)
	}
	// The error names both sets for diagnosability.
	if ce.Error() == "" {
		t.Fatal("ContractError message should not be empty")
	}
}

func TestTemplateRender(t *testing.T) {
	tmpl := Template("You are {agent}, goal: {goal}")
	got := tmpl.Render(map[string]string{"agent": "Ava", "goal": "negotiate price"})
	want := "You are Ava, goal: negotiate price"
	if got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestTemplateDedent(t *testing.T) {
	tmpl := Template(`
		line one
		  line two
	`)
	got := string(tmpl.Dedent())
	want := "line one\nline two"
	if got != want {
		t.Fatalf("Dedent() = %q, want %q", got, want)
	}
}
