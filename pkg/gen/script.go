package gen

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/google/jsonschema-go/jsonschema"
)

// Script is a fully generated episode: scenario, participant backgrounds
// and goals, the conversation itself, and the participants' ratings.
type Script struct {
	Scenario     string `json:"scenario" jsonschema:"scenario of the episode"`
	P1Background string `json:"p1_background" jsonschema:"background of participant 1"`
	P2Background string `json:"p2_background" jsonschema:"background of participant 2"`
	P1Goal       string `json:"p1_goal" jsonschema:"goal of participant 1"`
	P2Goal       string `json:"p2_goal" jsonschema:"goal of participant 2"`

	// Conversation is a list of (speaker id, message) pairs. Speaker ids
	// are 1 or 2.
	Conversation []ScriptTurn `json:"conversation" jsonschema:"conversation between participants"`

	P1Rate int `json:"p1_rate" jsonschema:"rating of participant 1, on the scale of 1 to 10"`
	P2Rate int `json:"p2_rate" jsonschema:"rating of participant 2, on the scale of 1 to 10"`
}

// ScriptTurn is one conversation turn, serialized on the wire as a
// two-element [speaker, message] array.
type ScriptTurn struct {
	Speaker int
	Message string
}

func (t ScriptTurn) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{t.Speaker, t.Message})
}

func (t *ScriptTurn) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if err := json.Unmarshal(pair[0], &t.Speaker); err != nil {
		return fmt.Errorf("speaker id: %w", err)
	}
	if err := json.Unmarshal(pair[1], &t.Message); err != nil {
		return fmt.Errorf("message: %w", err)
	}
	return nil
}

// scriptSchema is built once; jsonschema.For only fails on unsupported
// types, which would be a programming error here. ScriptTurn gets an
// explicit schema because its wire form is a two-element array, not an
// object.
var scriptSchema = func() *jsonschema.Schema {
	s, err := jsonschema.For[Script](&jsonschema.ForOptions{
		TypeSchemas: map[reflect.Type]*jsonschema.Schema{
			reflect.TypeFor[ScriptTurn](): {
				Type:        "array",
				Description: "a (speaker id, message) pair",
			},
		},
	})
	if err != nil {
		panic(err)
	}
	return s
}()

// ScriptParser parses model output as a Script object.
//
// Before validation the text is pre-processed to strip trailing commas
// immediately before a closing bracket or parenthesis, tolerating a common
// model formatting mistake.
type ScriptParser struct{}

var _ Parser[*Script] = ScriptParser{}

func (ScriptParser) Parse(text string) (*Script, error) {
	cleaned := stripTrailingCommas(text)
	var script Script
	if err := unmarshalJSON([]byte(cleaned), &script); err != nil {
		return nil, &ParseError{Raw: text, Expected: "a JSON Script object", Err: err}
	}
	if err := validateScript(&script); err != nil {
		return nil, &ParseError{Raw: text, Expected: "a JSON Script object", Err: err}
	}
	return &script, nil
}

func validateScript(s *Script) error {
	switch {
	case s.Scenario == "":
		return fmt.Errorf("missing scenario")
	case s.P1Background == "" || s.P2Background == "":
		return fmt.Errorf("missing participant background")
	case s.P1Goal == "" || s.P2Goal == "":
		return fmt.Errorf("missing participant goal")
	}
	for _, turn := range s.Conversation {
		if turn.Speaker != 1 && turn.Speaker != 2 {
			return fmt.Errorf("speaker id must be 1 or 2, got %d", turn.Speaker)
		}
	}
	return nil
}

func (ScriptParser) FormatInstructions() string {
	schema, err := json.Marshal(scriptSchema)
	if err != nil {
		// The schema is a fixed value; marshal cannot fail at runtime.
		panic(err)
	}
	return fmt.Sprintf(
		"The output should be formatted as a JSON instance that conforms to the JSON schema below.\n\n```\n%s\n```\n"+
			"conversation is a list of tuples, where the first element is the speaker id (1 or 2) "+
			"and the second element is the message. Don't leave trailing commas.",
		schema)
}
