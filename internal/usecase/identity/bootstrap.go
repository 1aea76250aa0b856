package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/uniease-api/internal/config"
	domain "github.com/BruksfildServices01/uniease-api/internal/domain/identity"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

// BootstrapAdmins makes sure every configured admin account exists. Existing
// accounts are left untouched, passwords included.
type BootstrapAdmins struct {
	users domain.Repository
}

func NewBootstrapAdmins(users domain.Repository) *BootstrapAdmins {
	return &BootstrapAdmins{users: users}
}

// Execute returns the admin users keyed by email.
func (uc *BootstrapAdmins) Execute(ctx context.Context, admins []config.AdminAccount) (map[string]*models.User, error) {
	out := make(map[string]*models.User, len(admins))

	for _, a := range admins {
		email := normalizeEmail(a.Email)

		existing, err := uc.users.FindByEmail(ctx, email)
		if err == nil {
			out[email] = existing
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}

		user, err := uc.create(ctx, a.Name, email, a.Password)
		if errors.Is(err, domain.ErrDuplicateEmail) {
			// another replica created it first
			if user, err = uc.users.FindByEmail(ctx, email); err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		} else {
			logrus.WithField("email", email).Info("admin account created")
		}
		out[email] = user
	}

	return out, nil
}

func (uc *BootstrapAdmins) create(ctx context.Context, name, email, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
