package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"google.golang.org/genai"

	"github.com/parleylab/parley/pkg/gen"
)

// ProviderCatalog is the providers.yaml document.
type ProviderCatalog struct {
	Providers []ProviderEntry `yaml:"providers"`
}

// ProviderEntry configures one provider backend and the models it
// serves.
type ProviderEntry struct {
	// Kind is the backend type: "openai" or "gemini".
	Kind string `yaml:"kind"`

	// APIKey is the credential. A leading "$" expands from the
	// environment.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the API endpoint (openai only). Useful for
	// OpenAI-compatible gateways.
	BaseURL string `yaml:"base_url"`

	Models []ModelEntry `yaml:"models"`
}

// ModelEntry maps a parley model name to a backend model.
type ModelEntry struct {
	// Name is the identifier scenarios refer to.
	Name string `yaml:"name"`

	// Model is the backend model identifier.
	Model string `yaml:"model"`

	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// LoadRegistry reads a provider catalog file and builds the model
// registry from it.
func LoadRegistry(ctx context.Context, path string) (*gen.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read provider catalog: %w", err)
	}
	var catalog ProviderCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("config: parse provider catalog: %w", err)
	}
	return BuildRegistry(ctx, catalog)
}

// BuildRegistry constructs the model registry from a catalog.
func BuildRegistry(ctx context.Context, catalog ProviderCatalog) (*gen.Registry, error) {
	providers := make(map[string]gen.Provider)
	for i, entry := range catalog.Providers {
		models, err := buildProvider(ctx, entry)
		if err != nil {
			return nil, fmt.Errorf("config: provider %d (%s): %w", i, entry.Kind, err)
		}
		for name, p := range models {
			if _, dup := providers[name]; dup {
				return nil, fmt.Errorf("config: duplicate model name %q", name)
			}
			providers[name] = p
		}
	}
	return gen.NewRegistry(providers), nil
}

func buildProvider(ctx context.Context, entry ProviderEntry) (map[string]gen.Provider, error) {
	apiKey := expandEnv(entry.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("api_key is required")
	}

	models := make(map[string]gen.Provider)
	switch entry.Kind {
	case "openai":
		opts := []option.RequestOption{option.WithAPIKey(apiKey)}
		if entry.BaseURL != "" {
			opts = append(opts, option.WithBaseURL(entry.BaseURL))
		}
		client := openai.NewClient(opts...)
		for _, m := range entry.Models {
			if m.Name == "" || m.Model == "" {
				return nil, fmt.Errorf("model entry missing name or model")
			}
			models[m.Name] = &gen.OpenAIProvider{
				Client:      &client,
				Model:       m.Model,
				Temperature: m.Temperature,
				MaxTokens:   m.MaxTokens,
			}
		}

	case "gemini":
		client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
		if err != nil {
			return nil, err
		}
		for _, m := range entry.Models {
			if m.Name == "" || m.Model == "" {
				return nil, fmt.Errorf("model entry missing name or model")
			}
			p := &gen.GeminiProvider{
				Client:    client,
				Model:     m.Model,
				MaxTokens: m.MaxTokens,
			}
			if m.Temperature > 0 {
				temp := float32(m.Temperature)
				p.Temperature = &temp
			}
			models[m.Name] = p
		}

	default:
		return nil, fmt.Errorf("unsupported kind %q", entry.Kind)
	}
	return models, nil
}

// expandEnv resolves "$VAR" style references; literal values pass
// through unchanged.
func expandEnv(s string) string {
	if strings.HasPrefix(s, "$") {
		return os.ExpandEnv(s)
	}
	return s
}
