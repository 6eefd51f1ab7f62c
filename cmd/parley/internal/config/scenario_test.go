package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	path := writeScenario(t, `
name: negotiation
tick_period: 500ms
max_ticks: 40
dashboard: 127.0.0.1:8700
agents:
  - name: Ava
    goal: sell the car for at least $45
    model: gpt-4
    query_interval: 2
  - name: Ben
    goal: buy the car for at most $40
    model: gemini-pro
    input_topic: env/ben/input
`)
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if sc.Name != "negotiation" || sc.MaxTicks != 40 || sc.Dashboard != "127.0.0.1:8700" {
		t.Fatalf("scenario = %+v", sc)
	}
	period, err := sc.Period()
	if err != nil {
		t.Fatalf("Period: %v", err)
	}
	if period != 500*time.Millisecond {
		t.Fatalf("period = %v", period)
	}
	if len(sc.Agents) != 2 || sc.Agents[0].QueryInterval != 2 || sc.Agents[1].InputTopic != "env/ben/input" {
		t.Fatalf("agents = %+v", sc.Agents)
	}
	names := sc.AgentNames()
	if len(names) != 2 || names[0] != "Ava" || names[1] != "Ben" {
		t.Fatalf("names = %v", names)
	}
}

func TestLoadScenarioDefaults(t *testing.T) {
	path := writeScenario(t, `
name: solo
agents:
  - name: Ava
    goal: think out loud
    model: gpt-4
`)
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	period, err := sc.Period()
	if err != nil {
		t.Fatalf("Period: %v", err)
	}
	if period != time.Second {
		t.Fatalf("default period = %v", period)
	}
}

func TestLoadScenarioValidation(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing name", "agents:\n  - {name: Ava, goal: g, model: m}\n"},
		{"no agents", "name: x\n"},
		{"agent without model", "name: x\nagents:\n  - {name: Ava, goal: g}\n"},
		{"duplicate agent", "name: x\nagents:\n  - {name: Ava, goal: g, model: m}\n  - {name: Ava, goal: g, model: m}\n"},
		{"bad period", "name: x\ntick_period: fast\nagents:\n  - {name: Ava, goal: g, model: m}\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeScenario(t, tc.content)
			if _, err := LoadScenario(path); err == nil {
				t.Fatalf("scenario should be rejected:\n%s", tc.content)
			}
		})
	}
}

func TestOutputTopic(t *testing.T) {
	if got := OutputTopic("Ava"); got != "env/ava/output" {
		t.Fatalf("OutputTopic = %q", got)
	}
	if got := OutputTopic("Dr Smith"); got != "env/dr-smith/output" {
		t.Fatalf("OutputTopic = %q", got)
	}
}

func TestBuildRegistryRejectsUnknownKind(t *testing.T) {
	catalog := ProviderCatalog{Providers: []ProviderEntry{
		{Kind: "anthropic", APIKey: "k", Models: []ModelEntry{{Name: "a", Model: "b"}}},
	}}
	if _, err := BuildRegistry(t.Context(), catalog); err == nil {
		t.Fatal("unknown provider kind should fail")
	}
}

func TestBuildRegistryOpenAI(t *testing.T) {
	catalog := ProviderCatalog{Providers: []ProviderEntry{
		{
			Kind:   "openai",
			APIKey: "test-key",
			Models: []ModelEntry{
				{Name: "gpt-4", Model: "gpt-4", Temperature: 0.7, MaxTokens: 2500},
			},
		},
	}}
	reg, err := BuildRegistry(t.Context(), catalog)
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}
	if _, err := reg.Lookup("gpt-4"); err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if _, err := reg.Lookup("gpt-5"); err == nil {
		t.Fatal("unknown model should fail")
	}
}

func TestBuildRegistryDuplicateModel(t *testing.T) {
	entry := ProviderEntry{
		Kind:   "openai",
		APIKey: "k",
		Models: []ModelEntry{{Name: "m", Model: "gpt-4"}},
	}
	catalog := ProviderCatalog{Providers: []ProviderEntry{entry, entry}}
	if _, err := BuildRegistry(t.Context(), catalog); err == nil {
		t.Fatal("duplicate model name should fail")
	}
}
