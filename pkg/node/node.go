package node

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/parleylab/parley/pkg/agent"
	"github.com/parleylab/parley/pkg/bus"
	"github.com/parleylab/parley/pkg/episode"
)

// Config configures one Node.
type Config struct {
	// Agent is the decision state machine the node drives. Required.
	Agent *agent.Agent

	// Bus carries events in and actions out. Required.
	Bus *bus.Bus

	// TickTopic delivers clock ticks. Required.
	TickTopic string

	// InputTopic delivers environment observations addressed to this
	// agent. Optional.
	InputTopic string

	// OutputTopic is where this agent's speech is published. Required.
	OutputTopic string

	// PeerTopics are the output topics of the other agents. The node
	// subscribes to them to observe peer speech.
	PeerTopics []string

	// Store records the episode, keyed by EpisodeID. Optional; nil
	// disables recording.
	Store *episode.Store

	// EpisodeID is the episode to record into. Required when Store is
	// set.
	EpisodeID string

	// Buffer sizes the node's bus subscription. Zero uses a default.
	Buffer int

	// Logger receives runtime diagnostics. Nil falls back to
	// slog.Default().
	Logger *slog.Logger
}

const defaultBuffer = 64

// Node runs one agent against the bus.
type Node struct {
	cfg Config
	log *slog.Logger
}

// New validates cfg and creates a Node.
func New(cfg Config) (*Node, error) {
	if cfg.Agent == nil {
		return nil, errors.New("node: agent is required")
	}
	if cfg.Bus == nil {
		return nil, errors.New("node: bus is required")
	}
	if cfg.TickTopic == "" || cfg.OutputTopic == "" {
		return nil, errors.New("node: tick and output topics are required")
	}
	if cfg.Store != nil && cfg.EpisodeID == "" {
		return nil, errors.New("node: episode ID is required when recording")
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = defaultBuffer
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Node{
		cfg: cfg,
		log: logger.With("agent", cfg.Agent.Name()),
	}, nil
}

// Run consumes bus messages until ctx is cancelled or the bus closes.
// Decision-cycle failures are logged and skipped; Run only returns an
// error for setup or publish failures.
func (n *Node) Run(ctx context.Context) error {
	patterns := append([]string{n.cfg.TickTopic}, n.cfg.PeerTopics...)
	if n.cfg.InputTopic != "" {
		patterns = append(patterns, n.cfg.InputTopic)
	}
	sub, err := n.cfg.Bus.Subscribe(n.cfg.Buffer, patterns...)
	if err != nil {
		return fmt.Errorf("node: subscribe: %w", err)
	}
	defer sub.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sub.Done():
			return nil
		case msg := <-sub.C():
			if err := n.handle(ctx, msg); err != nil {
				return err
			}
		}
	}
}

func (n *Node) handle(ctx context.Context, msg bus.Message) error {
	ev, ok, err := n.toEvent(msg)
	if err != nil {
		n.log.Warn("dropping undecodable message", "topic", msg.Topic, "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	action, err := n.cfg.Agent.HandleEvent(ctx, ev)
	if err != nil {
		// Bad decisions abort only their own cycle.
		n.log.Warn("decision cycle failed", "error", err)
		return nil
	}
	if action == nil || action.Kind == agent.KindNone {
		return nil
	}

	topic, publish := agent.Route(action, n.cfg.OutputTopic)
	if publish {
		payload, err := json.Marshal(action)
		if err != nil {
			return fmt.Errorf("node: encode action: %w", err)
		}
		if err := n.cfg.Bus.Publish(topic, payload); err != nil {
			return fmt.Errorf("node: publish action: %w", err)
		}
	}
	n.record(ctx, action, topic)
	return nil
}

// toEvent maps a bus message to an agent event. The second return value
// is false for messages the node ignores.
func (n *Node) toEvent(msg bus.Message) (agent.Event, bool, error) {
	switch {
	case msg.Topic == n.cfg.TickTopic:
		return agent.Tick{}, true, nil
	case msg.Topic == n.cfg.InputTopic && n.cfg.InputTopic != "":
		return agent.Observation{Text: string(msg.Payload)}, true, nil
	case slices.Contains(n.cfg.PeerTopics, msg.Topic):
		var action agent.Action
		if err := json.Unmarshal(msg.Payload, &action); err != nil {
			return nil, false, err
		}
		return agent.PeerAction{Action: action}, true, nil
	default:
		return nil, false, nil
	}
}

func (n *Node) record(ctx context.Context, action *agent.Action, topic string) {
	if n.cfg.Store == nil {
		return
	}
	content := action.Argument
	if action.Kind == agent.KindRead {
		content = action.Path
	}
	rec := episode.Record{
		Agent:   action.AgentName,
		Kind:    string(action.Kind),
		Content: content,
		Topic:   topic,
	}
	if err := n.cfg.Store.Append(ctx, n.cfg.EpisodeID, rec); err != nil {
		n.log.Error("episode append failed", "episode", n.cfg.EpisodeID, "error", err)
	}
}
