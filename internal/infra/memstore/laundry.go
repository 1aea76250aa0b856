package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/uniease-api/internal/domain/laundry"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type LaundryStore struct {
	mu       sync.Mutex
	requests map[string]*models.LaundryRequest
}

func NewLaundryStore() *LaundryStore {
	return &LaundryStore{requests: map[string]*models.LaundryRequest{}}
}

func (s *LaundryStore) Create(_ context.Context, r *models.LaundryRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *r
	s.requests[r.ID] = &cp
	return nil
}

func (s *LaundryStore) Get(_ context.Context, id string) (*models.LaundryRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok {
		return nil, laundry.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *LaundryStore) ListByUser(_ context.Context, userID string) ([]models.LaundryRequest, error) {
	return s.list(func(r *models.LaundryRequest) bool { return r.UserID == userID }), nil
}

func (s *LaundryStore) ListAll(_ context.Context) ([]models.LaundryRequest, error) {
	return s.list(func(*models.LaundryRequest) bool { return true }), nil
}

func (s *LaundryStore) UpdateStatus(
	_ context.Context,
	id string,
	status laundry.Status,
	completedAt *time.Time,
	at time.Time,
) (*models.LaundryRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok {
		return nil, laundry.ErrNotFound
	}
	r.Status = string(status)
	r.CompletedAt = completedAt
	r.UpdatedAt = at
	cp := *r
	return &cp, nil
}

func (s *LaundryStore) list(keep func(*models.LaundryRequest) bool) []models.LaundryRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.LaundryRequest
	for _, r := range s.requests {
		if keep(r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

var _ laundry.Repository = (*LaundryStore)(nil)
