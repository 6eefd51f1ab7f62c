package gen

import (
	"context"
	"fmt"
)

// Provider is an opaque text-completion service. The prompt is the fully
// rendered template; the result is the raw model text.
//
// Complete may block on network I/O; it must honor ctx cancellation.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProviderFunc adapts a function to the Provider interface. Useful for
// tests and for wrapping providers with middleware.
type ProviderFunc func(ctx context.Context, prompt string) (string, error)

func (f ProviderFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Registry maps model identifiers to providers. The set of supported
// identifiers is closed at construction: Lookup of an unknown identifier
// fails with ErrUnsupportedModel and is never silently downgraded.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry creates a Registry over the given model → provider table.
func NewRegistry(providers map[string]Provider) *Registry {
	m := make(map[string]Provider, len(providers))
	for name, p := range providers {
		m[name] = p
	}
	return &Registry{providers: m}
}

// Lookup returns the provider for a model identifier.
func (r *Registry) Lookup(model string) (Provider, error) {
	p, ok := r.providers[model]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedModel, model)
	}
	return p, nil
}

// Models returns the supported model identifiers.
func (r *Registry) Models() []string {
	models := make([]string, 0, len(r.providers))
	for name := range r.providers {
		models = append(models, name)
	}
	return models
}
