package episode

import "time"

// Meta describes one episode.
type Meta struct {
	// ID is a generated UUID identifying the episode.
	ID string `msgpack:"id"`

	// Name is a human-readable scenario name.
	Name string `msgpack:"name"`

	// Agents lists the participating agent names.
	Agents []string `msgpack:"agents"`

	// StartedAt is the episode creation time.
	StartedAt time.Time `msgpack:"started_at"`
}

// Record is one replayable episode event: a history entry or a
// published action.
type Record struct {
	// Seq is the record's position in the episode, assigned by Append.
	Seq uint64 `msgpack:"seq"`

	// Time is the record timestamp, assigned by Append when zero.
	Time time.Time `msgpack:"time"`

	// Agent is the acting agent's name.
	Agent string `msgpack:"agent"`

	// Kind is the action kind or history label ("speak", "observation
	// data", ...).
	Kind string `msgpack:"kind"`

	// Content is the record payload: the spoken message, observation
	// text, command, or file content.
	Content string `msgpack:"content"`

	// Topic is the bus topic the action was published on, empty for
	// unpublished records.
	Topic string `msgpack:"topic,omitempty"`
}
