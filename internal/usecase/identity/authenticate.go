package identity

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/uniease-api/internal/auth"
	domain "github.com/BruksfildServices01/uniease-api/internal/domain/identity"
	"github.com/BruksfildServices01/uniease-api/internal/dto"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
)

// Authenticate resolves a bearer token to a principal. The user must still exist;
// the role comes from the stored record, not from the token.
type Authenticate struct {
	users  domain.Repository
	tokens *auth.Tokens
}

func NewAuthenticate(users domain.Repository, tokens *auth.Tokens) *Authenticate {
	return &Authenticate{users: users, tokens: tokens}
}

func (uc *Authenticate) Execute(ctx context.Context, token string) (domain.Principal, error) {
	claims, err := uc.tokens.Parse(token)
	if err != nil {
		return domain.Principal{}, httperr.Unauthenticated("invalid_token")
	}

	user, err := uc.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Principal{}, httperr.Unauthenticated("invalid_token")
		}
		return domain.Principal{}, err
	}

	return domain.Principal{UserID: user.ID, Role: user.Role, Email: user.Email}, nil
}

// ======================================================
// PROFILE
// ======================================================

type Me struct {
	users domain.Repository
}

func NewMe(users domain.Repository) *Me {
	return &Me{users: users}
}

func (uc *Me) Execute(ctx context.Context, userID string) (*dto.UserDTO, error) {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFoundErr("user_not_found")
		}
		return nil, err
	}

	out := dto.NewUserDTO(user)
	return &out, nil
}
