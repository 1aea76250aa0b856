package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/uniease-api/internal/domain/identity"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&u).Error; err != nil {
		return nil, mapNotFound(err, identity.ErrNotFound)
	}
	return &u, nil
}

func (r *UserGormRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, mapNotFound(err, identity.ErrNotFound)
	}
	return &u, nil
}

func (r *UserGormRepository) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	var out []models.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return identity.ErrDuplicateEmail
	}
	return err
}

var _ identity.Repository = (*UserGormRepository)(nil)
