package laundry

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/uniease-api/internal/models"
)

var ErrNotFound = errors.New("laundry: not found")

type Repository interface {
	Create(ctx context.Context, r *models.LaundryRequest) error
	Get(ctx context.Context, id string) (*models.LaundryRequest, error)
	ListByUser(ctx context.Context, userID string) ([]models.LaundryRequest, error)
	ListAll(ctx context.Context) ([]models.LaundryRequest, error)
	UpdateStatus(
		ctx context.Context,
		id string,
		status Status,
		completedAt *time.Time,
		at time.Time,
	) (*models.LaundryRequest, error)
}
