package agent

// Event is an inbound message consumed by HandleEvent. The union is
// closed: Observation, PeerAction, and Tick are the only members, and
// dispatch sites switch exhaustively over them.
type Event interface {
	isEvent()
}

// Observation is plain text perceived by the agent (not an action), e.g.
// data coming back from the execution runtime.
type Observation struct {
	Text string
}

func (Observation) isEvent() {}

// PeerAction is an action taken by another agent.
type PeerAction struct {
	Action Action
}

func (PeerAction) isEvent() {}

// Tick is a periodic scheduling signal advancing the agent's decision
// clock by one unit. It carries no payload.
type Tick struct{}

func (Tick) isEvent() {}
