package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// readArgumentSentinel is the placeholder argument for read actions; the
// execution runtime fills in the file content.
const readArgumentSentinel = "Nan"

// sanitizeDecision strips the wrapping models put around a JSON decision:
// code-fence markers, the literal token "json", surrounding quotes, and
// whitespace.
func sanitizeDecision(raw string) string {
	s := strings.ReplaceAll(raw, "```", "")
	s = strings.ReplaceAll(s, "json", "")
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}

// decision is the wire shape the model must produce for one decision
// cycle: an action name plus a map of arguments.
type decision struct {
	Action string            `json:"action"`
	Args   map[string]string `json:"args"`
}

// decodeDecision unmarshals sanitized decision text, repairing malformed
// JSON on a syntax error before giving up.
func decodeDecision(text string) (*decision, error) {
	var d decision
	err := json.Unmarshal([]byte(text), &d)
	if err != nil {
		if _, ok := err.(*json.SyntaxError); ok {
			if fixed, rerr := jsonrepair.JSONRepair(text); rerr == nil {
				err = json.Unmarshal([]byte(fixed), &d)
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadDecision, err)
	}
	if d.Action == "" {
		return nil, fmt.Errorf("%w: missing action field", ErrBadDecision)
	}
	return &d, nil
}

// Classify parses raw decision text into a typed Action for the named
// agent. It is a pure mapping: sanitize, decode the {action, args}
// object, then extract kind-specific arguments.
func Classify(agentName, raw string) (*Action, error) {
	d, err := decodeDecision(sanitizeDecision(raw))
	if err != nil {
		return nil, err
	}

	arg := func(field string) (string, error) {
		v, ok := d.Args[field]
		if !ok {
			return "", fmt.Errorf("%w: action %q requires %q", ErrMissingArgument, d.Action, field)
		}
		return v, nil
	}

	switch Kind(d.Action) {
	case KindThought, KindSpeak:
		content, err := arg("content")
		if err != nil {
			return nil, err
		}
		return &Action{AgentName: agentName, Kind: Kind(d.Action), Argument: content}, nil

	case KindBrowse:
		url, err := arg("url")
		if err != nil {
			return nil, err
		}
		return &Action{AgentName: agentName, Kind: KindBrowse, Argument: url}, nil

	case KindBrowseAction, KindRun:
		command, err := arg("command")
		if err != nil {
			return nil, err
		}
		return &Action{AgentName: agentName, Kind: Kind(d.Action), Argument: command}, nil

	case KindWrite:
		path, err := arg("path")
		if err != nil {
			return nil, err
		}
		content, err := arg("content")
		if err != nil {
			return nil, err
		}
		return &Action{AgentName: agentName, Kind: KindWrite, Argument: content, Path: path}, nil

	case KindRead:
		path, err := arg("path")
		if err != nil {
			return nil, err
		}
		return &Action{AgentName: agentName, Kind: KindRead, Argument: readArgumentSentinel, Path: path}, nil

	case KindNone:
		return noop(agentName), nil

	case KindLeave:
		return &Action{AgentName: agentName, Kind: KindLeave}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, d.Action)
	}
}
