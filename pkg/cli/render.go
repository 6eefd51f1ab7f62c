package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/parleylab/parley/pkg/episode"
)

// RenderEpisodeList renders episode metadata as aligned rows.
func RenderEpisodeList(s Styles, metas []episode.Meta) string {
	if len(metas) == 0 {
		return s.Meta.Render("no episodes") + "\n"
	}
	var b strings.Builder
	for _, meta := range metas {
		fmt.Fprintf(&b, "%s  %s  %s  %s\n",
			s.Speaker.Render(meta.ID),
			meta.Name,
			s.Meta.Render(meta.StartedAt.Format(time.RFC3339)),
			s.Meta.Render(strings.Join(meta.Agents, ", ")),
		)
	}
	return b.String()
}

// RenderTranscript renders an episode as a styled conversation
// transcript.
func RenderTranscript(s Styles, meta episode.Meta, records []episode.Record) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(meta.Name) + " " + s.Meta.Render("("+meta.ID+")") + "\n")
	b.WriteString(s.Meta.Render("agents: "+strings.Join(meta.Agents, ", ")) + "\n")
	b.WriteString(s.Meta.Render("started: "+meta.StartedAt.Format(time.RFC3339)) + "\n\n")
	for _, rec := range records {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			s.Speaker.Render(rec.Agent),
			s.Kind.Render("["+rec.Kind+"]"),
			rec.Content,
		))
	}
	return b.String()
}
