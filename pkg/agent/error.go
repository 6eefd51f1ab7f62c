package agent

import "errors"

var (
	// ErrBadDecision indicates the model's decision text was not a valid
	// JSON decision object. The cycle is aborted; the agent keeps
	// processing events.
	ErrBadDecision = errors.New("agent: bad decision")

	// ErrMissingArgument indicates a recognized action kind lacked a
	// required argument field. Fatal for that decision cycle.
	ErrMissingArgument = errors.New("agent: missing argument")

	// ErrUnknownAction indicates the decision named an action outside
	// the closed kind set.
	ErrUnknownAction = errors.New("agent: unknown action")
)
