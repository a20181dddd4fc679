// Package store holds the authoritative question list and keeps its
// persisted copy in sync.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/idilsaglam/sheettracker/internal/model"
	"go.uber.org/zap"
)

// StorageKey names the persisted blob in every backend.
const StorageKey = "coding-sheet-tracker-v1"

// ClearPrompt is shown before ClearAll wipes the list.
const ClearPrompt = "Are you sure you want to clear all data? This cannot be undone."

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNotInitialized  = errors.New("store not initialized")
)

// Persistence loads and saves the whole list as one blob.
// Load returns nil data and a nil error when nothing was saved yet.
type Persistence interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// Confirmer answers a blocking yes/no prompt.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Celebrator plays the all-complete effect.
type Celebrator interface {
	Celebrate()
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

type CelebrateFunc func()

func (f CelebrateFunc) Celebrate() { f() }

type Option func(*Store)

func WithConfirmer(c Confirmer) Option { return func(s *Store) { s.confirmer = c } }

func WithCelebrator(c Celebrator) Option { return func(s *Store) { s.celebrator = c } }

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Store is the single holder of the question sequence. Mutations are
// serialized by mu, so concurrent import completions cannot race on dedup.
type Store struct {
	mu          sync.Mutex
	port        Persistence
	confirmer   Confirmer
	celebrator  Celebrator
	logger      *zap.Logger
	questions   []model.Question
	initialized bool
}

// New returns an uninitialized store; call Init before mutating.
// Without a Confirmer, ClearAll always declines.
func New(port Persistence, opts ...Option) *Store {
	s := &Store{
		port:       port,
		confirmer:  ConfirmFunc(func(string) bool { return false }),
		celebrator: CelebrateFunc(func() {}),
		logger:     zap.NewNop(),
		questions:  []model.Question{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Init loads the persisted list once. A missing or corrupt blob starts an
// empty list; read errors are logged, never returned.
func (s *Store) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return
	}
	s.questions = s.load()
	s.initialized = true
}

func (s *Store) load() []model.Question {
	data, err := s.port.Load()
	if err != nil {
		s.logger.Warn("load persisted questions", zap.Error(err))
		return []model.Question{}
	}
	if len(data) == 0 {
		return []model.Question{}
	}
	var qs []model.Question
	if err := json.Unmarshal(data, &qs); err != nil {
		s.logger.Warn("discarding corrupt persisted questions", zap.Error(err))
		return []model.Question{}
	}
	if qs == nil {
		qs = []model.Question{}
	}
	s.logger.Debug("loaded questions", zap.Int("count", len(qs)))
	return qs
}

func (s *Store) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Questions returns a copy of the list in stored order.
func (s *Store) Questions() []model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

// Stats counts completed and pending questions.
func (s *Store) Stats() (done, pending int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.questions {
		if q.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// Add appends the questions whose (title, link) pair is not stored yet,
// keeping their order, and reports how many were appended.
func (s *Store) Add(qs []model.Question) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return 0, ErrNotInitialized
	}

	seen := make(map[model.Key]struct{}, len(s.questions)+len(qs))
	for _, q := range s.questions {
		seen[q.Key()] = struct{}{}
	}
	added := 0
	for _, q := range qs {
		if _, dup := seen[q.Key()]; dup {
			continue
		}
		seen[q.Key()] = struct{}{}
		s.questions = append(s.questions, q)
		added++
	}
	s.logger.Debug("added questions", zap.Int("offered", len(qs)), zap.Int("added", added))
	return added, s.persist()
}

// Toggle flips Completed at i. Moving the list into the all-complete state
// plays the celebration once, after the change is saved.
func (s *Store) Toggle(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(i); err != nil {
		return err
	}

	before := s.allComplete()
	s.questions[i].Completed = !s.questions[i].Completed
	if err := s.persist(); err != nil {
		return err
	}
	if !before && s.allComplete() {
		s.logger.Info("all questions completed", zap.Int("total", len(s.questions)))
		s.celebrator.Celebrate()
	}
	return nil
}

// Delete removes the question at i.
func (s *Store) Delete(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(i); err != nil {
		return err
	}
	s.questions = append(s.questions[:i], s.questions[i+1:]...)
	return s.persist()
}

// ClearAll empties the list once the Confirmer agrees and reports whether
// it did.
func (s *Store) ClearAll() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return false, ErrNotInitialized
	}
	if !s.confirmer.Confirm(ClearPrompt) {
		return false, nil
	}
	s.questions = []model.Question{}
	return true, s.persist()
}

func (s *Store) check(i int) error {
	if !s.initialized {
		return ErrNotInitialized
	}
	if i < 0 || i >= len(s.questions) {
		return fmt.Errorf("%w: have %d, got %d", ErrIndexOutOfRange, len(s.questions), i)
	}
	return nil
}

func (s *Store) allComplete() bool {
	if len(s.questions) == 0 {
		return false
	}
	for _, q := range s.questions {
		if !q.Completed {
			return false
		}
	}
	return true
}

// persist rewrites the whole blob. Callers hold mu.
func (s *Store) persist() error {
	b, err := json.Marshal(s.questions)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := s.port.Save(b); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}
