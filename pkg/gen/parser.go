package gen

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser turns raw model text into a typed value, and can describe its own
// expected format in natural language. Implementations are selected at
// construction time; the pipeline never probes them beyond this interface.
type Parser[T any] interface {
	// Parse converts raw model output into a T, or fails with a
	// descriptive error (usually a *ParseError).
	Parse(text string) (T, error)

	// FormatInstructions describes the expected output shape in natural
	// language, suitable for injection into a prompt.
	FormatInstructions() string
}

// StringParser returns model output unchanged. It never fails.
type StringParser struct{}

var _ Parser[string] = StringParser{}

func (StringParser) Parse(text string) (string, error) {
	return text, nil
}

func (StringParser) FormatInstructions() string {
	return "Please output a string"
}

// IntListParser parses a whitespace-separated list of integers.
//
// When Count is non-zero the list must contain exactly Count integers.
// When Bounded is set every integer must lie within [Min, Max].
type IntListParser struct {
	Count int

	Min, Max int
	Bounded  bool
}

var _ Parser[[]int] = IntListParser{}

// describe enumerates the expected shape for errors and instructions.
func (p IntListParser) describe() string {
	var sb strings.Builder
	sb.WriteString("a list of")
	if p.Count > 0 {
		fmt.Fprintf(&sb, " %d", p.Count)
	}
	sb.WriteString(" integers")
	if p.Bounded {
		fmt.Fprintf(&sb, " within the range of [%d, %d]", p.Min, p.Max)
	}
	sb.WriteString(" separated by space")
	return sb.String()
}

func (p IntListParser) FormatInstructions() string {
	return "Please output " + p.describe()
}

func (p IntListParser) Parse(text string) ([]int, error) {
	var result []int
	for _, tok := range strings.Fields(text) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, &ParseError{Raw: text, Expected: p.describe(), Err: err}
		}
		result = append(result, n)
	}
	if p.Count > 0 && len(result) != p.Count {
		return nil, &ParseError{
			Raw:      text,
			Expected: p.describe(),
			Err:      fmt.Errorf("expect %d integers, got %d", p.Count, len(result)),
		}
	}
	if p.Bounded {
		for _, n := range result {
			if n < p.Min || n > p.Max {
				return nil, &ParseError{
					Raw:      text,
					Expected: p.describe(),
					Err:      fmt.Errorf("expect integers within [%d, %d], got %v", p.Min, p.Max, result),
				}
			}
		}
	}
	return result, nil
}
