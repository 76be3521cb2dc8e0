// Package history implements the append-only interview history over an
// injected key-value store: newest-first ordering, whole-document rewrites,
// one-shot demo seeding, and corrupted data silently treated as empty.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/prepmaster/prepmaster-backend/internal/kv"
	"github.com/prepmaster/prepmaster-backend/internal/model"
)

const (
	historyKey     = "prepmaster:history"
	initializedKey = "prepmaster:initialized"
)

// Store reads and appends interview records.
type Store struct {
	kv  kv.Store
	now func() time.Time
	log zerolog.Logger
}

// New creates a history store over the given key-value backend.
func New(store kv.Store, log zerolog.Logger) *Store {
	return &Store{
		kv:  store,
		now: time.Now,
		log: log.With().Str("component", "history").Logger(),
	}
}

// Read returns all records, newest first. Data that fails to parse is
// discarded and treated as empty, never surfaced as an error. The very
// first read of an empty namespace seeds the fixed demo history; the
// seeding is gated by a separate initialized flag so it happens at most
// once even if the history itself is later cleared.
func (s *Store) Read(ctx context.Context) []model.InterviewRecord {
	data, err := s.kv.Read(ctx, historyKey)
	switch {
	case err == nil:
		var records []model.InterviewRecord
		if jsonErr := json.Unmarshal(data, &records); jsonErr == nil && records != nil {
			return records
		}
		s.log.Error().Str("key", historyKey).Msg("corrupted history discarded")
	case !errors.Is(err, kv.ErrNotFound):
		s.log.Error().Err(err).Msg("history read failed, treating as empty")
	}

	if !s.initialized(ctx) {
		sample := sampleHistory(s.now())
		if err := s.write(ctx, sample); err != nil {
			s.log.Error().Err(err).Msg("failed to seed sample history")
			return []model.InterviewRecord{}
		}
		s.markInitialized(ctx)
		return sample
	}

	return []model.InterviewRecord{}
}

// Append prepends a record and rewrites the whole document. Returns the
// updated history, newest first.
func (s *Store) Append(ctx context.Context, record model.InterviewRecord) ([]model.InterviewRecord, error) {
	updated := append([]model.InterviewRecord{record}, s.Read(ctx)...)
	if err := s.write(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Store) write(ctx context.Context, records []model.InterviewRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.kv.Write(ctx, historyKey, data)
}

func (s *Store) initialized(ctx context.Context) bool {
	data, err := s.kv.Read(ctx, initializedKey)
	return err == nil && string(data) == "true"
}

func (s *Store) markInitialized(ctx context.Context) {
	if err := s.kv.Write(ctx, initializedKey, []byte("true")); err != nil {
		s.log.Error().Err(err).Msg("failed to set initialized flag")
	}
}
