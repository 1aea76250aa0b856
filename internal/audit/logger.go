package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type Filter struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type Store interface {
	CreateAuditLog(ctx context.Context, l *models.AuditLog) error
	ListAuditLogs(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

type Logger struct {
	store Store
}

func New(store Store) *Logger {
	return &Logger{store: store}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		ID:        uuid.NewString(),
		ActorID:   ev.ActorID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
		CreatedAt: time.Now().UTC(),
	}

	return l.store.CreateAuditLog(ctx, &entry)
}
