package episode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrNotFound reports a lookup for an unknown episode.
var ErrNotFound = errors.New("episode: not found")

// Options configures a Store.
type Options struct {
	// Dir is the directory for data files. Required unless InMemory.
	Dir string

	// InMemory runs the store without disk persistence. Useful for
	// tests against a real storage engine.
	InMemory bool

	// Logger receives storage diagnostics. Nil falls back to
	// slog.Default().
	Logger *slog.Logger
}

// Store is a BadgerDB-backed episode store. Safe for concurrent use.
type Store struct {
	db  *badger.DB
	log *slog.Logger

	mu   sync.Mutex
	seqs map[string]*badger.Sequence
}

// Open opens (or creates) a store per opts.
func Open(opts Options) (*Store, error) {
	if !opts.InMemory && opts.Dir == "" {
		return nil, errors.New("episode: Options.Dir is required for on-disk mode")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dbOpts := badger.DefaultOptions(opts.Dir).
		WithInMemory(opts.InMemory).
		WithLogger(badgerLogger{log: logger})
	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("episode: open store: %w", err)
	}
	return &Store{
		db:   db,
		log:  logger,
		seqs: make(map[string]*badger.Sequence),
	}, nil
}

// Create starts a new episode and returns its metadata.
func (s *Store) Create(_ context.Context, name string, agents []string) (Meta, error) {
	meta := Meta{
		ID:        uuid.New().String(),
		Name:      name,
		Agents:    append([]string(nil), agents...),
		StartedAt: time.Now().UTC(),
	}
	val, err := msgpack.Marshal(meta)
	if err != nil {
		return Meta{}, fmt.Errorf("episode: encode meta: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(metaKey(meta.ID), val)
	})
	if err != nil {
		return Meta{}, fmt.Errorf("episode: create: %w", err)
	}
	s.log.Info("episode created", "episode", meta.ID, "name", name)
	return meta, nil
}

// Append adds a record to an episode. The record's Seq is assigned;
// a zero Time is set to now.
func (s *Store) Append(ctx context.Context, episodeID string, rec Record) error {
	if _, err := s.Get(ctx, episodeID); err != nil {
		return err
	}
	seq, err := s.nextSeq(episodeID)
	if err != nil {
		return fmt.Errorf("episode: sequence: %w", err)
	}
	rec.Seq = seq
	if rec.Time.IsZero() {
		rec.Time = time.Now().UTC()
	}
	val, err := msgpack.Marshal(rec)
	if err != nil {
		return fmt.Errorf("episode: encode record: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(recordKey(episodeID, seq), val)
	})
	if err != nil {
		return fmt.Errorf("episode: append: %w", err)
	}
	return nil
}

// Get returns an episode's metadata.
func (s *Store) Get(_ context.Context, episodeID string) (Meta, error) {
	var meta Meta
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaKey(episodeID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &meta)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Meta{}, fmt.Errorf("%w: %s", ErrNotFound, episodeID)
	}
	if err != nil {
		return Meta{}, fmt.Errorf("episode: get: %w", err)
	}
	return meta, nil
}

// Entries returns an episode's records in append order.
func (s *Store) Entries(ctx context.Context, episodeID string) ([]Record, error) {
	if _, err := s.Get(ctx, episodeID); err != nil {
		return nil, err
	}
	prefix := recordPrefix(episodeID)
	var records []Record
	err := s.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = prefix
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("episode: entries: %w", err)
	}
	return records, nil
}

// List returns metadata for every stored episode, ordered by ID.
func (s *Store) List(_ context.Context) ([]Meta, error) {
	prefix := []byte(keyPrefix)
	var metas []Meta
	err := s.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = prefix
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			if !isMetaKey(item.Key()) {
				continue
			}
			var meta Meta
			err := item.Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &meta)
			})
			if err != nil {
				return err
			}
			metas = append(metas, meta)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("episode: list: %w", err)
	}
	return metas, nil
}

// Close releases sequence leases and closes the database.
func (s *Store) Close() error {
	s.mu.Lock()
	for id, seq := range s.seqs {
		if err := seq.Release(); err != nil {
			s.log.Warn("sequence release failed", "episode", id, "error", err)
		}
	}
	s.seqs = nil
	s.mu.Unlock()
	return s.db.Close()
}

func (s *Store) nextSeq(episodeID string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seqs == nil {
		return 0, errors.New("store is closed")
	}
	seq, ok := s.seqs[episodeID]
	if !ok {
		var err error
		seq, err = s.db.GetSequence(seqKey(episodeID), 128)
		if err != nil {
			return 0, err
		}
		s.seqs[episodeID] = seq
	}
	return seq.Next()
}

// badgerLogger bridges badger's logger to slog, dropping info and debug
// chatter.
type badgerLogger struct {
	log *slog.Logger
}

func (l badgerLogger) Errorf(f string, v ...interface{})   { l.log.Error(fmt.Sprintf(f, v...)) }
func (l badgerLogger) Warningf(f string, v ...interface{}) { l.log.Warn(fmt.Sprintf(f, v...)) }
func (badgerLogger) Infof(string, ...interface{})          {}
func (badgerLogger) Debugf(string, ...interface{})         {}
