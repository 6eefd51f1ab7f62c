package node

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/parleylab/parley/pkg/agent"
	"github.com/parleylab/parley/pkg/bus"
	"github.com/parleylab/parley/pkg/episode"
	"github.com/parleylab/parley/pkg/gen"
)

// scriptedAgent builds an agent whose provider replies with the given
// responses in order and records every prompt it sees.
func scriptedAgent(t *testing.T, name string, interval int, prompts *[]string, responses ...string) *agent.Agent {
	t.Helper()
	var i int
	provider := gen.ProviderFunc(func(_ context.Context, prompt string) (string, error) {
		if prompts != nil {
			*prompts = append(*prompts, prompt)
		}
		if i >= len(responses) {
			t.Error("provider called more times than scripted")
			return "", context.Canceled
		}
		resp := responses[i]
		i++
		return resp, nil
	})
	pipeline := gen.NewPipeline(gen.NewRegistry(map[string]gen.Provider{"test-model": provider}), nil)
	a, err := agent.New(agent.Config{
		Name:          name,
		Goal:          "test goal",
		Model:         "test-model",
		QueryInterval: interval,
		Pipeline:      pipeline,
	})
	if err != nil {
		t.Fatalf("agent.New: %v", err)
	}
	return a
}

func startNode(t *testing.T, cfg Config) (stop func()) {
	t.Helper()
	n, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- n.Run(ctx) }()
	return func() {
		cancel()
		select {
		case err := <-done:
			if err != nil && err != context.Canceled {
				t.Fatalf("Run: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("node did not stop")
		}
	}
}

func await(t *testing.T, sub *bus.Subscription) bus.Message {
	t.Helper()
	select {
	case msg := <-sub.C():
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for message")
		return bus.Message{}
	}
}

func TestNodeSpeakFlow(t *testing.T) {
	b := bus.New()
	defer b.Close()
	store := newTestStore(t)
	ctx := context.Background()

	meta, err := store.Create(ctx, "test", []string{"Ava"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	observer, err := b.Subscribe(4, "env/ava/output")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	ava := scriptedAgent(t, "Ava", 1, nil,
		`{"action":"speak","args":{"content":"Let's start at $50."}}`)
	stop := startNode(t, Config{
		Agent:       ava,
		Bus:         b,
		TickTopic:   "env/tick",
		OutputTopic: "env/ava/output",
		Store:       store,
		EpisodeID:   meta.ID,
	})

	if err := b.Publish("env/tick", nil); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	msg := await(t, observer)
	var action agent.Action
	if err := json.Unmarshal(msg.Payload, &action); err != nil {
		t.Fatalf("decode action: %v", err)
	}
	if action.AgentName != "Ava" || action.Kind != agent.KindSpeak || action.Argument != "Let's start at $50." {
		t.Fatalf("action = %+v", action)
	}

	stop()

	records, err := store.Entries(ctx, meta.ID)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Agent != "Ava" || rec.Kind != "speak" || rec.Content != "Let's start at $50." || rec.Topic != "env/ava/output" {
		t.Fatalf("record = %+v", rec)
	}
}

func newTestStore(t *testing.T) *episode.Store {
	t.Helper()
	s, err := episode.Open(episode.Options{InMemory: true})
	if err != nil {
		t.Fatalf("episode.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNodeRoutesRuntimeActions(t *testing.T) {
	b := bus.New()
	defer b.Close()

	observer, err := b.Subscribe(4, agent.RuntimeTopic)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	ava := scriptedAgent(t, "Ava", 1, nil,
		`{"action":"run","args":{"command":"ls -la"}}`)
	stop := startNode(t, Config{
		Agent:       ava,
		Bus:         b,
		TickTopic:   "env/tick",
		OutputTopic: "env/ava/output",
	})
	defer stop()

	if err := b.Publish("env/tick", nil); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	msg := await(t, observer)
	var action agent.Action
	if err := json.Unmarshal(msg.Payload, &action); err != nil {
		t.Fatalf("decode action: %v", err)
	}
	if action.Kind != agent.KindRun || action.Argument != "ls -la" {
		t.Fatalf("action = %+v", action)
	}
}

func TestNodeSurvivesBadDecision(t *testing.T) {
	b := bus.New()
	defer b.Close()

	observer, err := b.Subscribe(4, "env/ava/output")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	// First decision is unparseable; the node drops it and stays up.
	ava := scriptedAgent(t, "Ava", 1, nil,
		"not json at all",
		`{"action":"speak","args":{"content":"recovered"}}`)
	stop := startNode(t, Config{
		Agent:       ava,
		Bus:         b,
		TickTopic:   "env/tick",
		OutputTopic: "env/ava/output",
	})
	defer stop()

	for i := 0; i < 2; i++ {
		if err := b.Publish("env/tick", nil); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}

	msg := await(t, observer)
	var action agent.Action
	if err := json.Unmarshal(msg.Payload, &action); err != nil {
		t.Fatalf("decode action: %v", err)
	}
	if action.Argument != "recovered" {
		t.Fatalf("action = %+v", action)
	}
}

func TestNodeRecordsPeerSpeech(t *testing.T) {
	b := bus.New()
	defer b.Close()

	observer, err := b.Subscribe(4, "env/ben/output")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	ben := scriptedAgent(t, "Ben", 1, nil,
		`{"action":"speak","args":{"content":"ack"}}`)
	stop := startNode(t, Config{
		Agent:       ben,
		Bus:         b,
		TickTopic:   "env/tick",
		OutputTopic: "env/ben/output",
		PeerTopics:  []string{"env/ava/output"},
	})

	// Ava speaks, then the clock ticks. The subscription is ordered, so
	// Ben sees the peer speech before deciding.
	avaSpeak, _ := json.Marshal(agent.Action{AgentName: "Ava", Kind: agent.KindSpeak, Argument: "hello Ben"})
	if err := b.Publish("env/ava/output", avaSpeak); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := b.Publish("env/tick", nil); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	await(t, observer)
	stop()

	h := ben.History()
	if len(h) != 2 {
		t.Fatalf("history = %+v", h)
	}
	if h[0].Speaker != "Ava" || h[0].Content != "hello Ben" {
		t.Fatalf("history[0] = %+v", h[0])
	}
	if h[1].Speaker != "Ben" || h[1].Content != "ack" {
		t.Fatalf("history[1] = %+v", h[1])
	}
}

func TestNodeObservationInPrompt(t *testing.T) {
	b := bus.New()
	defer b.Close()

	observer, err := b.Subscribe(4, "env/ava/output")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	var prompts []string
	ava := scriptedAgent(t, "Ava", 1, &prompts,
		`{"action":"speak","args":{"content":"done"}}`)
	stop := startNode(t, Config{
		Agent:       ava,
		Bus:         b,
		TickTopic:   "env/tick",
		InputTopic:  "env/ava/input",
		OutputTopic: "env/ava/output",
	})

	if err := b.Publish("env/ava/input", []byte("the page loaded")); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := b.Publish("env/tick", nil); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	await(t, observer)
	stop()

	if len(prompts) != 1 {
		t.Fatalf("got %d prompts, want 1", len(prompts))
	}
	if !strings.Contains(prompts[0], "the page loaded") {
		t.Fatalf("prompt does not carry the observation:\n%s", prompts[0])
	}
}

func TestClock(t *testing.T) {
	b := bus.New()
	defer b.Close()

	sub, err := b.Subscribe(8, "env/tick")
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	clock, err := NewClock(ClockConfig{
		Bus:      b,
		Topic:    "env/tick",
		Period:   time.Millisecond,
		MaxTicks: 3,
	})
	if err != nil {
		t.Fatalf("NewClock: %v", err)
	}
	if err := clock.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i := 0; i < 3; i++ {
		await(t, sub)
	}
	select {
	case <-sub.C():
		t.Fatal("clock published more than MaxTicks")
	default:
	}
}

func TestNewValidation(t *testing.T) {
	b := bus.New()
	defer b.Close()
	ava := scriptedAgent(t, "Ava", 1, nil)

	if _, err := New(Config{Bus: b, TickTopic: "t", OutputTopic: "o"}); err == nil {
		t.Fatal("New without agent should fail")
	}
	if _, err := New(Config{Agent: ava, TickTopic: "t", OutputTopic: "o"}); err == nil {
		t.Fatal("New without bus should fail")
	}
	if _, err := New(Config{Agent: ava, Bus: b, OutputTopic: "o"}); err == nil {
		t.Fatal("New without tick topic should fail")
	}
	if _, err := NewClock(ClockConfig{Bus: b, Topic: "t"}); err == nil {
		t.Fatal("NewClock without period should fail")
	}
}
