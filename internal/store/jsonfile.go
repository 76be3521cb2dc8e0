package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/prepmaster/prepmaster-backend/internal/model"
)

// Document names under the data directory. Each is a flat JSON array,
// rewritten wholesale on update (last writer wins, no locking).
const (
	UsersFile     = "user.json"
	InterviewFile = "interview.json"
	MCQFile       = "questions.json"
	ResourcesFile = "resources.json"
)

// Store reads and writes flat JSON documents under a data directory.
// A missing or corrupted document reads as empty; it is never surfaced as
// an error to callers.
type Store struct {
	dir string
	log zerolog.Logger
}

// New creates the store and its data directory.
func New(dir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{
		dir: dir,
		log: log.With().Str("component", "store").Logger(),
	}, nil
}

// Load unmarshals the named document into the pointer v. Missing files and
// parse failures leave v untouched, so callers see their zero/empty value.
// Decoding goes through a scratch value because Unmarshal can half-fill a
// slice before hitting a wrong-typed element mid-array.
func (s *Store) Load(name string, v any) {
	path := filepath.Join(s.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Error().Err(err).Str("file", name).Msg("failed to read document")
		}
		return
	}

	scratch := reflect.New(reflect.TypeOf(v).Elem())
	if err := json.Unmarshal(data, scratch.Interface()); err != nil {
		s.log.Error().Err(err).Str("file", name).Msg("corrupted document, treating as empty")
		return
	}
	reflect.ValueOf(v).Elem().Set(scratch.Elem())
}

// Save rewrites the named document wholesale.
func (s *Store) Save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Users returns all registered users (empty slice when none).
func (s *Store) Users() []model.User {
	users := []model.User{}
	s.Load(UsersFile, &users)
	return users
}

// SaveUsers rewrites the user document. Full-file read-modify-write is the
// only update model; there is no concurrent-writer protection.
func (s *Store) SaveUsers(users []model.User) error {
	return s.Save(UsersFile, users)
}

// InterviewBank returns the static interview question bank.
func (s *Store) InterviewBank() []model.Question {
	questions := []model.Question{}
	s.Load(InterviewFile, &questions)
	return questions
}

// MCQBank returns the static multiple-choice practice bank.
func (s *Store) MCQBank() []model.MCQQuestion {
	questions := []model.MCQQuestion{}
	s.Load(MCQFile, &questions)
	return questions
}

// Resources returns the static learning-resource catalog.
func (s *Store) Resources() []model.Resource {
	resources := []model.Resource{}
	s.Load(ResourcesFile, &resources)
	return resources
}
