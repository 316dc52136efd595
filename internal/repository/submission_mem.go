package repository

import (
	"sort"
	"sync"

	"github.com/ownitpro/omgsystems/internal/model"
)

// MemorySubmissionStore keeps submissions in a map guarded by a mutex. Used
// for development and tests; the sqlx store is the durable implementation.
type MemorySubmissionStore struct {
	mu   sync.RWMutex
	subs map[string]*model.Submission
}

func NewMemorySubmissionStore() *MemorySubmissionStore {
	return &MemorySubmissionStore{subs: make(map[string]*model.Submission)}
}

func (s *MemorySubmissionStore) Create(sub *model.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *sub
	s.subs[sub.ID] = &copied
	return nil
}

func (s *MemorySubmissionStore) ByID(id string) (*model.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[id]
	if !ok {
		return nil, ErrSubmissionNotFound
	}

	copied := *sub
	return &copied, nil
}

func (s *MemorySubmissionStore) ByPortal(portalID string) ([]*model.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var subs []*model.Submission
	for _, sub := range s.subs {
		if sub.PortalID == portalID {
			copied := *sub
			subs = append(subs, &copied)
		}
	}

	sort.Slice(subs, func(i, j int) bool {
		return subs[i].CreatedAt.After(subs[j].CreatedAt)
	})

	return subs, nil
}

func (s *MemorySubmissionStore) Size() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs), nil
}
