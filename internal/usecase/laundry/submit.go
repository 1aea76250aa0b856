package laundry

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/uniease-api/internal/audit"
	"github.com/BruksfildServices01/uniease-api/internal/domain/identity"
	domain "github.com/BruksfildServices01/uniease-api/internal/domain/laundry"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type SubmitInput struct {
	UserID string
	Type   string
	Items  []models.LaundryItem
}

type Submit struct {
	repo  domain.Repository
	users identity.Repository
	audit audit.Sink
}

func NewSubmit(repo domain.Repository, users identity.Repository, sink audit.Sink) *Submit {
	return &Submit{repo: repo, users: users, audit: sink}
}

// Execute records a request. Contact details are copied from the user record, never
// taken from the client.
func (uc *Submit) Execute(ctx context.Context, in SubmitInput) (*models.LaundryRequest, error) {
	typ, err := domain.ParseType(in.Type)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateItems(in.Items); err != nil {
		return nil, err
	}

	user, err := uc.users.FindByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return nil, httperr.NotFoundErr("user_not_found")
		}
		return nil, err
	}

	now := time.Now().UTC()
	req := &models.LaundryRequest{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		Email:         user.Email,
		Phone:         user.Phone,
		Type:          string(typ),
		Items:         in.Items,
		Status:        string(domain.StatusPending),
		PaymentStatus: domain.PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  user.ID,
		Action:   "laundry_submitted",
		Entity:   "laundry_request",
		EntityID: req.ID,
		Metadata: map[string]any{"type": req.Type, "items": len(req.Items)},
	})

	return req, nil
}

// ======================================================
// QUERIES
// ======================================================

type List struct {
	repo domain.Repository
}

func NewList(repo domain.Repository) *List {
	return &List{repo: repo}
}

func (uc *List) Mine(ctx context.Context, userID string) ([]models.LaundryRequest, error) {
	return uc.repo.ListByUser(ctx, userID)
}

func (uc *List) All(ctx context.Context) ([]models.LaundryRequest, error) {
	return uc.repo.ListAll(ctx)
}
