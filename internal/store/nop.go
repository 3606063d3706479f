package store

import (
	"time"

	"jobsift/internal/model"
)

// NopStore is a no-op store used in dry-run mode. Nothing is persisted, so
// every posting appears new on each run.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) HasSeen(fingerprint string) (bool, error)  { return false, nil }
func (s *NopStore) SavePosting(p model.Posting) error         { return nil }
func (s *NopStore) ListPostings() ([]model.Posting, error)    { return nil, nil }
func (s *NopStore) Cleanup(olderThan time.Duration) error     { return nil }
func (s *NopStore) IsEmpty() (bool, error)                    { return false, nil }
