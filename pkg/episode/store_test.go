package episode

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{InMemory: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	meta, err := s.Create(ctx, "negotiation", []string{"Ava", "Ben"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if meta.ID == "" {
		t.Fatal("Create returned empty ID")
	}
	if meta.StartedAt.IsZero() {
		t.Fatal("Create returned zero StartedAt")
	}

	got, err := s.Get(ctx, meta.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "negotiation" || len(got.Agents) != 2 || got.Agents[0] != "Ava" {
		t.Fatalf("Get = %+v", got)
	}
}

func TestGetUnknown(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get(context.Background(), "no-such-id"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAppendAndEntries(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	meta, err := s.Create(ctx, "negotiation", []string{"Ava", "Ben"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 0; i < 5; i++ {
		rec := Record{
			Agent:   "Ava",
			Kind:    "speak",
			Content: fmt.Sprintf("message %d", i),
			Topic:   "env/ava/output",
		}
		if err := s.Append(ctx, meta.ID, rec); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	records, err := s.Entries(ctx, meta.ID)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("got %d records, want 5", len(records))
	}
	for i, rec := range records {
		if want := fmt.Sprintf("message %d", i); rec.Content != want {
			t.Fatalf("record %d content = %q, want %q", i, rec.Content, want)
		}
		if i > 0 && records[i-1].Seq >= rec.Seq {
			t.Fatalf("sequence not increasing: %d then %d", records[i-1].Seq, rec.Seq)
		}
		if rec.Time.IsZero() {
			t.Fatalf("record %d has zero Time", i)
		}
	}
}

func TestAppendUnknownEpisode(t *testing.T) {
	s := newTestStore(t)
	err := s.Append(context.Background(), "no-such-id", Record{Agent: "Ava", Kind: "speak"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEpisodesIsolated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, _ := s.Create(ctx, "a", nil)
	b, _ := s.Create(ctx, "b", nil)

	if err := s.Append(ctx, a.ID, Record{Agent: "Ava", Kind: "speak", Content: "only in a"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	recsA, err := s.Entries(ctx, a.ID)
	if err != nil {
		t.Fatalf("Entries(a): %v", err)
	}
	recsB, err := s.Entries(ctx, b.ID)
	if err != nil {
		t.Fatalf("Entries(b): %v", err)
	}
	if len(recsA) != 1 || len(recsB) != 0 {
		t.Fatalf("got %d/%d records, want 1/0", len(recsA), len(recsB))
	}
}

func TestList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ids := make(map[string]bool)
	for _, name := range []string{"one", "two", "three"} {
		meta, err := s.Create(ctx, name, nil)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		ids[meta.ID] = true
		// Records must not leak into the listing.
		if err := s.Append(ctx, meta.ID, Record{Agent: "Ava", Kind: "speak"}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	metas, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 3 {
		t.Fatalf("got %d episodes, want 3", len(metas))
	}
	for _, meta := range metas {
		if !ids[meta.ID] {
			t.Fatalf("unexpected episode %q", meta.ID)
		}
	}
}

func TestOpenRequiresDir(t *testing.T) {
	if _, err := Open(Options{}); err == nil {
		t.Fatal("Open without Dir should fail")
	}
}
