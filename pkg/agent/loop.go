package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/parleylab/parley/pkg/gen"
)

// Config configures one Agent.
type Config struct {
	// Name identifies the agent in conversations and published actions.
	Name string

	// Goal is the agent's objective, injected into every decision
	// prompt.
	Goal string

	// Model is the model identifier resolved through the pipeline's
	// provider registry.
	Model string

	// QueryInterval is the number of ticks between two consecutive
	// decision cycles. Must be positive.
	QueryInterval int

	// Pipeline performs the structured generation.
	Pipeline *gen.Pipeline

	// Logger receives decision-cycle diagnostics. Nil falls back to
	// slog.Default().
	Logger *slog.Logger
}

// Agent is a per-agent decision state machine. It is not safe for
// concurrent use: the surrounding runtime must deliver events one at a
// time, which also guarantees at most one generation call in flight.
type Agent struct {
	name          string
	goal          string
	model         string
	queryInterval int

	tickCount int
	history   []HistoryEntry

	tmpl     gen.Template
	pipeline *gen.Pipeline
	log      *slog.Logger
}

// New creates an Agent from cfg.
func New(cfg Config) (*Agent, error) {
	if cfg.Name == "" {
		return nil, errors.New("agent: name is required")
	}
	if cfg.QueryInterval <= 0 {
		return nil, fmt.Errorf("agent: query interval must be positive, got %d", cfg.QueryInterval)
	}
	if cfg.Pipeline == nil {
		return nil, errors.New("agent: pipeline is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		name:          cfg.Name,
		goal:          cfg.Goal,
		model:         cfg.Model,
		queryInterval: cfg.QueryInterval,
		tmpl:          decisionTemplate(Kinds()),
		pipeline:      cfg.Pipeline,
		log:           logger.With("agent", cfg.Name),
	}, nil
}

// Name returns the agent's name.
func (a *Agent) Name() string { return a.name }

// History returns a copy of the agent's conversation history.
func (a *Agent) History() []HistoryEntry {
	return append([]HistoryEntry(nil), a.history...)
}

// HandleEvent processes one inbound event and returns the agent's action
// for this cycle. Off-cadence events and peer actions yield an explicit
// no-op action.
//
// A decision-cycle failure (unparseable decision, missing argument,
// generation error) aborts only that cycle: the returned error describes
// the failure, the returned action is an explicit no-op, and the agent
// keeps processing subsequent events.
func (a *Agent) HandleEvent(ctx context.Context, ev Event) (*Action, error) {
	switch ev := ev.(type) {
	case Observation:
		a.history = append(a.history, HistoryEntry{
			Speaker: a.name,
			Kind:    observationLabel,
			Content: ev.Text,
		})
		return noop(a.name), nil

	case PeerAction:
		if ev.Action.Kind == KindSpeak {
			a.history = append(a.history, HistoryEntry{
				Speaker: ev.Action.AgentName,
				Kind:    string(KindSpeak),
				Content: ev.Action.Argument,
			})
		}
		return noop(a.name), nil

	case Tick:
		a.tickCount++
		if a.tickCount%a.queryInterval != 0 {
			return noop(a.name), nil
		}
		return a.decide(ctx)

	default:
		// The union is closed; anything else is a programming error.
		return nil, fmt.Errorf("agent: unexpected event type: %T", ev)
	}
}

// decide runs one decision cycle: generate, sanitize, classify, record.
func (a *Agent) decide(ctx context.Context) (*Action, error) {
	raw, err := gen.Generate(ctx, a.pipeline, a.model, a.tmpl, map[string]string{
		"message_history": formatHistory(a.history),
		"goal":            a.goal,
		"agent_name":      a.name,
	}, gen.StringParser{})
	if err != nil {
		a.log.Error("decision generation failed", "error", err)
		return noop(a.name), fmt.Errorf("agent: decision cycle: %w", err)
	}

	action, err := Classify(a.name, raw)
	if err != nil {
		a.log.Error("decision classification failed", "error", err, "raw", raw)
		return noop(a.name), err
	}

	if action.Kind != KindNone {
		a.history = append(a.history, HistoryEntry{
			Speaker: a.name,
			Kind:    string(action.Kind),
			Content: a.historyContent(action),
		})
	}
	return action, nil
}

// historyContent picks the content recorded in history for an action:
// the path for reads, the argument for everything else.
func (a *Agent) historyContent(action *Action) string {
	if action.Kind == KindRead {
		return action.Path
	}
	return action.Argument
}
