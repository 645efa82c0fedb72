package store

import (
	"context"
	"sync"

	"membergate/internal/claims/models"
)

// InMemoryStore stores members in memory for tests and local development.
type InMemoryStore struct {
	mu      sync.RWMutex
	members map[int]*models.Member
	socials map[int][]models.Social
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		members: make(map[int]*models.Member),
		socials: make(map[int][]models.Social),
	}
}

// Put registers a member, replacing any previous state for the same id.
func (s *InMemoryStore) Put(member *models.Member) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *member
	s.members[member.ID] = &copied
}

// PutSocials registers the social links for a member.
func (s *InMemoryStore) PutSocials(memberID int, socials []models.Social) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]models.Social, len(socials))
	copy(copied, socials)
	s.socials[memberID] = copied
}

func (s *InMemoryStore) LoadByID(_ context.Context, id int) (*models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	member, ok := s.members[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *member
	return &copied, nil
}

func (s *InMemoryStore) ListSocialsForMember(_ context.Context, id int) ([]models.Social, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	socials := s.socials[id]
	out := make([]models.Social, len(socials))
	copy(out, socials)
	return out, nil
}
