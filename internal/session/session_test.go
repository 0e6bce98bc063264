package session

import (
	"errors"
	"testing"

	"github.com/Thinguy99/bot-discord/pkg/types"
)

func TestBeginOnePendingOperationPerUser(t *testing.T) {
	s := NewStore()

	release, err := s.Begin("alice")
	if err != nil {
		t.Fatalf("first Begin should succeed: %v", err)
	}

	if _, err := s.Begin("alice"); !errors.Is(err, ErrBusy) {
		t.Errorf("second Begin for the same user should fail with ErrBusy, got %v", err)
	}

	// Other users are unaffected.
	releaseBob, err := s.Begin("bob")
	if err != nil {
		t.Errorf("Begin for another user should succeed: %v", err)
	}
	releaseBob()

	release()
	release2, err := s.Begin("alice")
	if err != nil {
		t.Errorf("Begin should succeed again after release: %v", err)
	}
	release2()
}

func TestStateIsPerUser(t *testing.T) {
	s := NewStore()
	rec := &types.ResumeRecord{FullName: "Jean Dupont"}
	job := &types.JobListing{Title: "Data Scientist"}

	s.SetResume("alice", rec)
	s.SetJob("alice", job)

	entry := s.Get("alice")
	if entry.Resume != rec || entry.Job != job {
		t.Errorf("entry does not hold what was stored: %+v", entry)
	}
	if other := s.Get("bob"); other.Resume != nil || other.Job != nil {
		t.Errorf("bob's entry should be empty, got %+v", other)
	}
}

func TestSearchResult(t *testing.T) {
	s := NewStore()
	s.SetSearch("alice", []types.JobListing{
		{Title: "Offre A"},
		{Title: "Offre B"},
	})

	job, ok := s.SearchResult("alice", 1)
	if !ok || job.Title != "Offre B" {
		t.Errorf("SearchResult(1) = %+v, %v", job, ok)
	}

	if _, ok := s.SearchResult("alice", -1); ok {
		t.Error("negative index should not resolve")
	}
	if _, ok := s.SearchResult("alice", 2); ok {
		t.Error("out-of-range index should not resolve")
	}
	if _, ok := s.SearchResult("bob", 0); ok {
		t.Error("user without a search should not resolve")
	}
}
