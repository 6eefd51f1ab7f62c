// Package agent implements the tick-driven decision loop for a
// conversational agent.
//
// An Agent consumes inbound events strictly in arrival order — plain-text
// observations, actions taken by peer agents, and periodic ticks — and
// maintains a private, append-only conversation history. Every
// QueryInterval ticks it asks a language model for its next move, parses
// the free-text reply into a typed Action, and hands it back to the
// caller for routing:
//
//	event → HandleEvent → (history update | decision cycle) → Action
//
// Events form a closed union (Observation, PeerAction, Tick); dispatch is
// an exhaustive type switch, so a new event kind forces every dispatch
// site to be updated. Actions likewise form a closed Kind set.
//
// Each Agent owns its state exclusively. HandleEvent is synchronous: no
// new event is handled while a decision cycle is in flight, which
// guarantees at most one outstanding generation call per agent.
package agent
