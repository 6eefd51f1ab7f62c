package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/parleylab/parley/pkg/episode"
)

// Format selects the transcript rendering.
type Format string

const (
	// FormatText renders a human-readable transcript.
	FormatText Format = "text"

	// FormatJSON renders a single JSON document with metadata and
	// records.
	FormatJSON Format = "json"
)

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	if f == FormatJSON {
		return "json"
	}
	return "txt"
}

func (f Format) valid() bool {
	return f == FormatText || f == FormatJSON
}

// Transcript is the JSON export document.
type Transcript struct {
	Episode episode.Meta     `json:"episode"`
	Records []episode.Record `json:"records"`
}

// Write renders the episode in the given format and stores it at path
// in the sink.
func Write(ctx context.Context, sink Sink, path string, meta episode.Meta, records []episode.Record, format Format) error {
	if !format.valid() {
		return fmt.Errorf("export: unknown format %q", format)
	}
	w, err := sink.Put(ctx, path)
	if err != nil {
		return fmt.Errorf("export: open %s: %w", path, err)
	}
	if err := render(w, meta, records, format); err != nil {
		w.Close()
		return fmt.Errorf("export: render %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	return nil
}

// Filename returns the conventional transcript filename for an episode.
func Filename(meta episode.Meta, format Format) string {
	return meta.ID + "." + format.Ext()
}

func render(w io.Writer, meta episode.Meta, records []episode.Record, format Format) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Transcript{Episode: meta, Records: records})
	}
	_, err := io.WriteString(w, renderText(meta, records))
	return err
}

func renderText(meta episode.Meta, records []episode.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s (%s)\n", meta.Name, meta.ID)
	fmt.Fprintf(&b, "# agents: %s\n", strings.Join(meta.Agents, ", "))
	fmt.Fprintf(&b, "# started: %s\n\n", meta.StartedAt.Format(time.RFC3339))
	for _, rec := range records {
		fmt.Fprintf(&b, "%s %s: %s\n", rec.Agent, rec.Kind, rec.Content)
	}
	return b.String()
}
