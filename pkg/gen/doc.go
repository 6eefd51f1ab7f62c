// Package gen provides a structured text-generation pipeline on top of
// LLM providers, with typed output parsing and bounded self-healing.
//
// # Core Types
//
// Template is a prompt string with {name} placeholders. Before any model
// call the placeholder set is validated against the supplied input values
// (plus the reserved "format_instructions" name), so a template/input
// mismatch never reaches the network.
//
// Parser turns raw model text into a typed value and can describe its own
// expected format in natural language:
//
//	type Parser[T any] interface {
//	    Parse(text string) (T, error)
//	    FormatInstructions() string
//	}
//
// Provider is an opaque text-completion service:
//
//	type Provider interface {
//	    Complete(ctx context.Context, prompt string) (string, error)
//	}
//
// Registry maps a closed set of model identifiers to providers. Unknown
// identifiers fail with ErrUnsupportedModel and are never retried.
//
// # Generation Flow
//
//	Generate → validate template → render → provider call → parse
//	                                            │ parse failed
//	                                            ▼
//	                              one reformat round-trip → parse
//	                                            │ parse failed again
//	                                            ▼
//	                                  ErrUnrecoverableOutput
//
// The recovery is bounded to exactly one extra round-trip: benign
// formatting drift (code fences, trailing commas, minor schema slips) gets
// a second chance, persistent failures surface to the caller.
package gen
