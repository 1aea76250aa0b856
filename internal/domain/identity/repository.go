package identity

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/uniease-api/internal/models"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var (
	ErrNotFound       = errors.New("identity: user not found")
	ErrDuplicateEmail = errors.New("identity: email already registered")
)

// Principal is what an authenticated request resolves to.
type Principal struct {
	UserID string
	Role   string
	Email  string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.User, error)
	// Create returns ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, u *models.User) error
}
