package memstore

import (
	"context"
	"strings"
	"sync"

	"github.com/BruksfildServices01/uniease-api/internal/domain/identity"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type UserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func NewUserStore() *UserStore {
	return &UserStore{users: map[string]*models.User{}}
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, identity.ErrNotFound
}

func (s *UserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, identity.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *UserStore) FindByIDs(_ context.Context, ids []string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (s *UserStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return identity.ErrDuplicateEmail
		}
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

var _ identity.Repository = (*UserStore)(nil)
