package gen

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
)

// maxAttempts bounds parsing to the original output plus exactly one
// reformat round-trip.
const maxAttempts = 2

// reformatTemplate asks the model to fix its own unparseable output.
const reformatTemplate Template = `
	Given the string that can not be parsed by json parser, reformat it to a string that can be parsed by json parser.
	Original string: {ill_formed_output}

	Format instructions: {format_instructions}

	Please only generate the JSON:
`

// Pipeline renders templates, invokes providers, and parses results.
type Pipeline struct {
	reg *Registry
	log *slog.Logger
}

// NewPipeline creates a Pipeline over a provider registry.
// A nil logger falls back to slog.Default().
func NewPipeline(reg *Registry, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{reg: reg, log: logger}
}

// Generate runs the full pipeline: validate the template contract, render,
// invoke the provider, and parse. On parse failure it performs exactly one
// recovery round-trip, asking the model to reformat its own malformed
// output, then parses again. A second failure returns an error wrapping
// ErrUnrecoverableOutput.
//
// The inputs map is never mutated.
func Generate[T any](ctx context.Context, p *Pipeline, model string, tmpl Template, inputs map[string]string, parser Parser[T]) (T, error) {
	var zero T

	if err := tmpl.Validate(inputs); err != nil {
		return zero, err
	}

	vals := make(map[string]string, len(inputs)+1)
	maps.Copy(vals, inputs)
	if _, ok := vals[formatInstructionsKey]; !ok {
		vals[formatInstructionsKey] = parser.FormatInstructions()
	}

	provider, err := p.reg.Lookup(model)
	if err != nil {
		return zero, err
	}

	prompt := tmpl.Dedent().Render(vals)
	raw, err := provider.Complete(ctx, prompt)
	if err != nil {
		return zero, fmt.Errorf("gen: complete: %w", err)
	}

	text := raw
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		out, perr := parser.Parse(text)
		if perr == nil {
			p.log.Debug("generated result", "model", model, "attempt", attempt)
			return out, nil
		}
		lastErr = perr
		if attempt == maxAttempts {
			break
		}
		p.log.Debug("failed to parse result, asking model to reformat",
			"model", model, "error", perr)
		text, err = p.reformat(ctx, provider, raw, parser.FormatInstructions())
		if err != nil {
			return zero, err
		}
	}
	return zero, fmt.Errorf("%w: %v", ErrUnrecoverableOutput, lastErr)
}

// reformat issues the single recovery round-trip for ill-formed output.
func (p *Pipeline) reformat(ctx context.Context, provider Provider, illFormed, instructions string) (string, error) {
	prompt := reformatTemplate.Dedent().Render(map[string]string{
		"ill_formed_output":   illFormed,
		formatInstructionsKey: instructions,
	})
	out, err := provider.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("gen: reformat: %w", err)
	}
	p.log.Debug("reformatted output", "output", out)
	return out, nil
}
