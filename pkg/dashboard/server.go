package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/parleylab/parley/pkg/bus"
	"github.com/parleylab/parley/pkg/episode"
	"github.com/parleylab/parley/pkg/export"
)

// Config configures a Server.
type Config struct {
	// Addr is the listen address, e.g. "127.0.0.1:8700". Required for
	// Run; Handler works without it.
	Addr string

	// Store provides episode data. Required.
	Store *episode.Store

	// Bus feeds the live stream. Optional; nil disables /api/live.
	Bus *bus.Bus

	// Patterns are the bus patterns bridged to live clients. Empty
	// defaults to everything.
	Patterns []string

	// Logger receives server diagnostics. Nil falls back to
	// slog.Default().
	Logger *slog.Logger
}

// Server is the episode inspection HTTP server.
type Server struct {
	cfg      Config
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// New validates cfg and creates a Server.
func New(cfg Config) (*Server, error) {
	if cfg.Store == nil {
		return nil, errors.New("dashboard: store is required")
	}
	if len(cfg.Patterns) == 0 {
		cfg.Patterns = []string{"#"}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg: cfg,
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/episodes", s.handleList)
	mux.HandleFunc("GET /api/episodes/{id}", s.handleShow)
	if s.cfg.Bus != nil {
		mux.HandleFunc("GET /api/live", s.handleLive)
	}
	return mux
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Handler(),
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("dashboard listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	metas, err := s.cfg.Store.List(r.Context())
	if err != nil {
		s.log.Error("episode listing failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if metas == nil {
		metas = []episode.Meta{}
	}
	writeJSON(w, metas)
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	meta, err := s.cfg.Store.Get(r.Context(), id)
	if errors.Is(err, episode.ErrNotFound) {
		http.Error(w, "episode not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	records, err := s.cfg.Store.Entries(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, export.Transcript{Episode: meta, Records: records})
}

// LiveEvent is one bus message forwarded to a live client.
type LiveEvent struct {
	Topic   string `json:"topic"`
	Payload string `json:"payload"`
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	sub, err := s.cfg.Bus.Subscribe(100, s.cfg.Patterns...)
	if err != nil {
		s.log.Error("live subscribe failed", "error", err)
		return
	}
	defer sub.Close()

	// Drain client frames to observe disconnects.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case <-sub.Done():
			return
		case msg := <-sub.C():
			ev := LiveEvent{Topic: msg.Topic, Payload: string(msg.Payload)}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
