package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/BruksfildServices01/uniease-api/internal/audit"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type AuditStore struct {
	mu   sync.Mutex
	logs []models.AuditLog
}

func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

func (s *AuditStore) CreateAuditLog(_ context.Context, l *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.logs = append(s.logs, *l)
	return nil
}

func (s *AuditStore) ListAuditLogs(_ context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.AuditLog
	for _, l := range s.logs {
		if f.Action != "" && l.Action != f.Action {
			continue
		}
		if f.Entity != "" && l.Entity != f.Entity {
			continue
		}
		if f.From != nil && l.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && l.CreatedAt.After(*f.To) {
			continue
		}
		matched = append(matched, l)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })

	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

var _ audit.Store = (*AuditStore)(nil)
