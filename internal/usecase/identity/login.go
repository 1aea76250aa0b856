package identity

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/uniease-api/internal/auth"
	domain "github.com/BruksfildServices01/uniease-api/internal/domain/identity"
	"github.com/BruksfildServices01/uniease-api/internal/dto"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
)

type Login struct {
	users  domain.Repository
	tokens *auth.Tokens
}

func NewLogin(users domain.Repository, tokens *auth.Tokens) *Login {
	return &Login{users: users, tokens: tokens}
}

// Execute does not reveal whether the email exists.
func (uc *Login) Execute(ctx context.Context, email, password string) (*dto.AuthDTO, error) {
	user, err := uc.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.Unauthenticated("invalid_credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, httperr.Unauthenticated("invalid_credentials")
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthDTO{User: dto.NewUserDTO(user), Token: token}, nil
}
