package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/uniease-api/internal/audit"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type AuditGormRepository struct {
	db *gorm.DB
}

func NewAuditGormRepository(db *gorm.DB) *AuditGormRepository {
	return &AuditGormRepository{db: db}
}

func (r *AuditGormRepository) CreateAuditLog(ctx context.Context, l *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *AuditGormRepository) ListAuditLogs(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at <= ?", *f.To)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

var _ audit.Store = (*AuditGormRepository)(nil)
