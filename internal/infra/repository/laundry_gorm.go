package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/uniease-api/internal/domain/laundry"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type LaundryGormRepository struct {
	db *gorm.DB
}

func NewLaundryGormRepository(db *gorm.DB) *LaundryGormRepository {
	return &LaundryGormRepository{db: db}
}

func (r *LaundryGormRepository) Create(ctx context.Context, req *models.LaundryRequest) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *LaundryGormRepository) Get(ctx context.Context, id string) (*models.LaundryRequest, error) {
	var req models.LaundryRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&req).Error; err != nil {
		return nil, mapNotFound(err, laundry.ErrNotFound)
	}
	return &req, nil
}

func (r *LaundryGormRepository) ListByUser(ctx context.Context, userID string) ([]models.LaundryRequest, error) {
	var out []models.LaundryRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LaundryGormRepository) ListAll(ctx context.Context) ([]models.LaundryRequest, error) {
	var out []models.LaundryRequest
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LaundryGormRepository) UpdateStatus(
	ctx context.Context,
	id string,
	status laundry.Status,
	completedAt *time.Time,
	at time.Time,
) (*models.LaundryRequest, error) {

	res := r.db.WithContext(ctx).
		Model(&models.LaundryRequest{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":       string(status),
			"completed_at": completedAt,
			"updated_at":   at,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, laundry.ErrNotFound
	}

	return r.Get(ctx, id)
}

var _ laundry.Repository = (*LaundryGormRepository)(nil)
