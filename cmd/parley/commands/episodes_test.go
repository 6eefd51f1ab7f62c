package commands

import (
	"errors"
	"testing"

	"github.com/parleylab/parley/pkg/episode"
	"github.com/parleylab/parley/pkg/export"
)

func TestLoadEpisode(t *testing.T) {
	store, err := episode.Open(episode.Options{InMemory: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	ctx := t.Context()

	meta, err := store.Create(ctx, "negotiation", []string{"Ava"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Append(ctx, meta.ID, episode.Record{Agent: "Ava", Kind: "speak", Content: "hi"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	gotMeta, records, err := loadEpisode(ctx, store, meta.ID)
	if err != nil {
		t.Fatalf("loadEpisode: %v", err)
	}
	if gotMeta.Name != "negotiation" || len(records) != 1 {
		t.Fatalf("got %+v, %d records", gotMeta, len(records))
	}

	if _, _, err := loadEpisode(ctx, store, "missing"); !errors.Is(err, episode.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRunQueryInvalidExpression(t *testing.T) {
	err := runQuery(export.Transcript{}, ".records[")
	if err == nil {
		t.Fatal("invalid jq expression should fail")
	}
}

func TestRunQuery(t *testing.T) {
	tr := export.Transcript{
		Episode: episode.Meta{ID: "x", Name: "negotiation"},
		Records: []episode.Record{{Agent: "Ava", Kind: "speak", Content: "hi"}},
	}
	if err := runQuery(tr, ".records | length"); err != nil {
		t.Fatalf("runQuery: %v", err)
	}
	if err := runQuery(tr, ".records[].agent"); err != nil {
		t.Fatalf("runQuery: %v", err)
	}
}
