// Package session holds the per-user state between commands: the last
// extracted résumé and the last selected job listing. Entries are never
// evicted; they live for the process lifetime.
package session

import (
	"errors"
	"sync"

	"github.com/Thinguy99/bot-discord/pkg/types"
)

// ErrBusy is returned when a user already has an operation in flight.
// One pending operation per user is the store's concurrency policy.
var ErrBusy = errors.New("une opération est déjà en cours pour cet utilisateur, réessayez dans un instant")

type Entry struct {
	Resume *types.ResumeRecord
	Job    *types.JobListing
	Search []types.JobListing
}

type state struct {
	entry Entry
	busy  bool
}

type Store struct {
	mu      sync.Mutex
	entries map[string]*state
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*state)}
}

func (s *Store) get(userID string) *state {
	st, ok := s.entries[userID]
	if !ok {
		st = &state{}
		s.entries[userID] = st
	}
	return st
}

// Begin marks the user busy and returns the release function. It fails
// with ErrBusy if another operation is pending for the same key.
func (s *Store) Begin(userID string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.get(userID)
	if st.busy {
		return nil, ErrBusy
	}
	st.busy = true
	return func() {
		s.mu.Lock()
		st.busy = false
		s.mu.Unlock()
	}, nil
}

func (s *Store) Get(userID string) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(userID).entry
}

func (s *Store) SetResume(userID string, rec *types.ResumeRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(userID).entry.Resume = rec
}

func (s *Store) SetJob(userID string, job *types.JobListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(userID).entry.Job = job
}

// SetSearch remembers the last scrape results so a select-menu choice
// can be resolved back to a listing.
func (s *Store) SetSearch(userID string, listings []types.JobListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(userID).entry.Search = listings
}

func (s *Store) SearchResult(userID string, index int) (*types.JobListing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	search := s.get(userID).entry.Search
	if index < 0 || index >= len(search) {
		return nil, false
	}
	job := search[index]
	return &job, true
}
