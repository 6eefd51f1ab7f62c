package gen

import (
	"strings"
	"testing"
)

func TestStringParserIdentity(t *testing.T) {
	p := StringParser{}
	for _, s := range []string{"", "hello", "{\"not\": \"parsed\"}", "  spaced  "} {
		got, err := p.Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		if got != s {
			t.Fatalf("Parse(%q) = %q, want identity", s, got)
		}
	}
}

func TestIntListParser(t *testing.T) {
	p := IntListParser{Count: 3}
	got, err := p.Parse("1 2 3")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("Parse(\"1 2 3\") = %v, want [1 2 3]", got)
	}

	// Wrong count fails.
	if _, err := p.Parse("1 2"); err == nil {
		t.Fatal("Parse(\"1 2\") with Count=3 should fail")
	}

	// Out-of-range value fails.
	ranged := IntListParser{Min: 1, Max: 4, Bounded: true}
	if _, err := ranged.Parse("5"); err == nil {
		t.Fatal("Parse(\"5\") with range [1,4] should fail")
	}

	// Non-integer token fails with a descriptive error.
	_, err = p.Parse("1 two 3")
	if err == nil {
		t.Fatal("Parse(\"1 two 3\") should fail")
	}
	if !strings.Contains(err.Error(), "integers") {
		t.Fatalf("error should enumerate expected shape, got: %v", err)
	}
}

func TestIntListParserFormatInstructions(t *testing.T) {
	p := IntListParser{Count: 2, Min: 1, Max: 10, Bounded: true}
	fi := p.FormatInstructions()
	for _, want := range []string{"2", "[1, 10]", "integers"} {
		if !strings.Contains(fi, want) {
			t.Fatalf("FormatInstructions() = %q, missing %q", fi, want)
		}
	}
}
