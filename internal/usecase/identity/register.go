package identity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/uniease-api/internal/auth"
	domain "github.com/BruksfildServices01/uniease-api/internal/domain/identity"
	"github.com/BruksfildServices01/uniease-api/internal/dto"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/models"
	"github.com/BruksfildServices01/uniease-api/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// ======================================================
// USE CASE
// ======================================================

type Register struct {
	users        domain.Repository
	tokens       *auth.Tokens
	checkDomain  bool
	domainExists func(string) bool
}

func NewRegister(users domain.Repository, tokens *auth.Tokens, checkDomain bool) *Register {
	return &Register{
		users:        users,
		tokens:       tokens,
		checkDomain:  checkDomain,
		domainExists: validators.IsEmailDomainValid,
	}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*dto.AuthDTO, error) {
	email := normalizeEmail(in.Email)

	if !validators.IsEmailFormatValid(email) {
		return nil, httperr.Validation("invalid_email")
	}
	if uc.checkDomain && !uc.domainExists(email) {
		return nil, httperr.Validation("invalid_email_domain")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, httperr.Conflict("user_already_exists")
		}
		return nil, err
	}

	token, err := uc.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthDTO{User: dto.NewUserDTO(user), Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
