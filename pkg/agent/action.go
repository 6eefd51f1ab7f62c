package agent

import (
	"encoding/json"
	"fmt"
)

// Kind is the closed set of behaviors an agent may perform in one
// decision cycle.
type Kind string

// Action kind constants.
const (
	KindNone         Kind = "none"          // no action this cycle
	KindSpeak        Kind = "speak"         // talk to the other agents
	KindThought      Kind = "thought"       // private note to self
	KindBrowse       Kind = "browse"        // open a web page
	KindBrowseAction Kind = "browse_action" // drive the browser
	KindRead         Kind = "read"          // read a file
	KindWrite        Kind = "write"         // write a file
	KindRun          Kind = "run"           // run a shell command
	KindLeave        Kind = "leave"         // goals completed or abandoned
)

var validKinds = map[string]struct{}{
	string(KindNone):         {},
	string(KindSpeak):        {},
	string(KindThought):      {},
	string(KindBrowse):       {},
	string(KindBrowseAction): {},
	string(KindRead):         {},
	string(KindWrite):        {},
	string(KindRun):          {},
	string(KindLeave):        {},
}

// IsValid returns true if the kind is a member of the closed set.
func (k Kind) IsValid() bool {
	_, ok := validKinds[string(k)]
	return ok
}

// UnmarshalJSON implements json.Unmarshaler with validation.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	kk := Kind(s)
	if !kk.IsValid() {
		return fmt.Errorf("invalid action kind: %q", s)
	}
	*k = kk
	return nil
}

// Kinds returns all action kinds in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindSpeak, KindThought, KindNone, KindBrowse, KindBrowseAction,
		KindRead, KindWrite, KindRun, KindLeave,
	}
}

// Action is one typed decision produced by an agent. It is an immutable
// value: produced once per decision cycle and never mutated after
// construction.
type Action struct {
	AgentName string `json:"agent_name"`
	Kind      Kind   `json:"action_type"`
	Argument  string `json:"argument"`

	// Path is used only by the read and write kinds.
	Path string `json:"path"`
}

// noop returns the explicit no-op action for the named agent.
func noop(agentName string) *Action {
	return &Action{AgentName: agentName, Kind: KindNone, Argument: "", Path: ""}
}
