package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// TickTopic is the topic all scenario clocks publish on.
const TickTopic = "env/tick"

// Scenario describes one simulation run.
type Scenario struct {
	// Name labels the episode.
	Name string `yaml:"name"`

	// TickPeriod is the clock interval, e.g. "1s". Empty defaults to
	// one second.
	TickPeriod string `yaml:"tick_period"`

	// MaxTicks stops the run after this many ticks; zero runs until
	// interrupted.
	MaxTicks int `yaml:"max_ticks"`

	// Dashboard, when set, is the dashboard listen address, e.g.
	// "127.0.0.1:8700".
	Dashboard string `yaml:"dashboard"`

	Agents []ScenarioAgent `yaml:"agents"`
}

// ScenarioAgent configures one agent in a scenario.
type ScenarioAgent struct {
	Name string `yaml:"name"`
	Goal string `yaml:"goal"`

	// Model is a name from the provider catalog.
	Model string `yaml:"model"`

	// QueryInterval is the number of ticks between decisions. Zero
	// defaults to 1.
	QueryInterval int `yaml:"query_interval"`

	// InputTopic, when set, delivers environment observations to this
	// agent.
	InputTopic string `yaml:"input_topic"`
}

// LoadScenario reads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("config: parse scenario: %w", err)
	}
	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("config: scenario %s: %w", path, err)
	}
	return &sc, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Agents) == 0 {
		return fmt.Errorf("at least one agent is required")
	}
	if _, err := s.Period(); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for i, a := range s.Agents {
		if a.Name == "" {
			return fmt.Errorf("agent %d: name is required", i)
		}
		if a.Model == "" {
			return fmt.Errorf("agent %q: model is required", a.Name)
		}
		if a.QueryInterval < 0 {
			return fmt.Errorf("agent %q: query_interval must not be negative", a.Name)
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate agent name %q", a.Name)
		}
		seen[a.Name] = true
	}
	return nil
}

// Period returns the parsed tick period.
func (s *Scenario) Period() (time.Duration, error) {
	if s.TickPeriod == "" {
		return time.Second, nil
	}
	d, err := time.ParseDuration(s.TickPeriod)
	if err != nil {
		return 0, fmt.Errorf("invalid tick_period %q: %w", s.TickPeriod, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("tick_period must be positive, got %q", s.TickPeriod)
	}
	return d, nil
}

// AgentNames returns the scenario's agent names in order.
func (s *Scenario) AgentNames() []string {
	names := make([]string, len(s.Agents))
	for i, a := range s.Agents {
		names[i] = a.Name
	}
	return names
}

// OutputTopic returns the bus topic an agent's speech is published on.
func OutputTopic(agentName string) string {
	slug := strings.ToLower(strings.ReplaceAll(agentName, " ", "-"))
	return "env/" + slug + "/output"
}
