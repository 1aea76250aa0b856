package food

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/uniease-api/internal/audit"
	domain "github.com/BruksfildServices01/uniease-api/internal/domain/food"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/metrics"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type ConfirmPickup struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewConfirmPickup(repo domain.Repository, sink audit.Sink) *ConfirmPickup {
	return &ConfirmPickup{repo: repo, audit: sink}
}

// Execute moves the caller's order from ready to picked_up. Every failure to match,
// whatever the cause, is reported as the same conflict.
func (uc *ConfirmPickup) Execute(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := uc.repo.TransitionOrder(ctx, domain.OrderTransition{
		OrderID: orderID,
		UserID:  userID,
		From:    []domain.Status{domain.StatusReady},
		To:      domain.StatusPickedUp,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrStateChanged) {
			return nil, httperr.Conflict("order_not_ready_or_collected")
		}
		return nil, err
	}

	metrics.RecordOrderEvent("picked_up")

	uc.audit.Dispatch(audit.Event{
		ActorID:  userID,
		Action:   "order_picked_up",
		Entity:   "order",
		EntityID: order.ID,
	})

	return order, nil
}
