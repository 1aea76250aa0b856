package food

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/uniease-api/internal/audit"
	domain "github.com/BruksfildServices01/uniease-api/internal/domain/food"
	"github.com/BruksfildServices01/uniease-api/internal/dto"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/metrics"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

// Checkout promotes the cart in place: same id, same lines, status pending.
type Checkout struct {
	repo      domain.Repository
	audit     audit.Sink
	retention Retention
}

func NewCheckout(repo domain.Repository, sink audit.Sink, retention Retention) *Checkout {
	return &Checkout{repo: repo, audit: sink, retention: retention}
}

func (uc *Checkout) Execute(ctx context.Context, userID, outletID string) (*dto.OrderDTO, error) {
	cart, err := uc.repo.FindCart(ctx, userID, outletID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.Validation("cart_empty")
		}
		return nil, err
	}

	if err := domain.CanCheckout(domain.OrderView{Status: cart.Status, Lines: len(cart.Items)}); err != nil {
		return nil, err
	}

	order, err := uc.repo.TransitionOrder(ctx, domain.OrderTransition{
		OrderID: cart.ID,
		UserID:  userID,
		From:    []domain.Status{domain.StatusCart},
		To:      domain.StatusPending,
	})
	if err != nil {
		if errors.Is(err, domain.ErrStateChanged) || errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.Conflict("order_not_cart")
		}
		return nil, err
	}

	metrics.RecordOrderEvent("checked_out")
	uc.retention.Trigger()

	uc.audit.Dispatch(audit.Event{
		ActorID:  userID,
		Action:   "order_checked_out",
		Entity:   "order",
		EntityID: order.ID,
		Metadata: map[string]any{"outlet_id": outletID, "total": order.Total},
	})

	out, err := resolveOrders(ctx, uc.repo, []models.Order{*order})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}
