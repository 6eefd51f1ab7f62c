package gen

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnsupportedModel indicates an unrecognized model identifier.
	// This is fatal: the registry set is closed and never downgraded.
	ErrUnsupportedModel = errors.New("gen: unsupported model")

	// ErrUnrecoverableOutput indicates the model output could not be
	// parsed even after the single reformat round-trip.
	ErrUnrecoverableOutput = errors.New("gen: unrecoverable output")
)

// ContractError reports a mismatch between a template's placeholders and
// the supplied input values. It is raised before any model call.
type ContractError struct {
	// Placeholders is the set of names found in the template.
	Placeholders []string

	// Inputs is the set of keys supplied by the caller.
	Inputs []string
}

func (e *ContractError) Error() string {
	ph := append([]string(nil), e.Placeholders...)
	in := append([]string(nil), e.Inputs...)
	sort.Strings(ph)
	sort.Strings(in)
	return fmt.Sprintf(
		"gen: template placeholders must match input values (plus optional %q): placeholders [%s], inputs [%s]",
		formatInstructionsKey, strings.Join(ph, " "), strings.Join(in, " "))
}

// ParseError reports that a parser rejected model output. The pipeline
// recovers from it once via the reformat round-trip before giving up.
type ParseError struct {
	// Raw is the text the parser rejected.
	Raw string

	// Expected describes the shape the parser wanted.
	Expected string

	// Err is the underlying cause, if any.
	Err error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("gen: parse: %v: expected %s, got %q", e.Err, e.Expected, e.Raw)
	}
	return fmt.Sprintf("gen: parse: expected %s, got %q", e.Expected, e.Raw)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
