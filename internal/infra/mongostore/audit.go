package mongostore

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/BruksfildServices01/uniease-api/internal/audit"
	"github.com/BruksfildServices01/uniease-api/internal/db"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type AuditStore struct {
	logs *mongo.Collection
}

func NewAuditStore(database *mongo.Database) *AuditStore {
	return &AuditStore{logs: database.Collection(db.CollAudit)}
}

func (s *AuditStore) CreateAuditLog(ctx context.Context, l *models.AuditLog) error {
	_, err := s.logs.InsertOne(ctx, l)
	return err
}

func (s *AuditStore) ListAuditLogs(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	filter := bson.M{}
	if f.Action != "" {
		filter["action"] = f.Action
	}
	if f.Entity != "" {
		filter["entity"] = f.Entity
	}
	created := bson.M{}
	if f.From != nil {
		created["$gte"] = *f.From
	}
	if f.To != nil {
		created["$lte"] = *f.To
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}

	total, err := s.logs.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := newestFirst().SetSkip(int64(f.Offset))
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}

	logs, err := findAll[models.AuditLog](ctx, s.logs, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

var _ audit.Store = (*AuditStore)(nil)
