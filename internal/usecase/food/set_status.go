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

// SetOrderStatus lets an outlet's vendor set any admin status on one of its orders,
// whatever the current status is.
type SetOrderStatus struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewSetOrderStatus(repo domain.Repository, sink audit.Sink) *SetOrderStatus {
	return &SetOrderStatus{repo: repo, audit: sink}
}

func (uc *SetOrderStatus) Execute(
	ctx context.Context,
	vendorID string,
	outletID string,
	orderID string,
	status string,
) (*models.Order, error) {

	next, err := domain.ParseAdminStatus(status)
	if err != nil {
		return nil, err
	}

	if _, err := authorizeOutlet(ctx, uc.repo, vendorID, outletID); err != nil {
		return nil, err
	}

	order, err := uc.repo.TransitionOrder(ctx, domain.OrderTransition{
		OrderID:  orderID,
		OutletID: outletID,
		To:       next,
	})
	if err != nil {
		// an order of another outlet is invisible here
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrStateChanged) {
			return nil, httperr.NotFoundErr("order_not_found")
		}
		return nil, err
	}

	metrics.RecordOrderEvent(string(next))

	uc.audit.Dispatch(audit.Event{
		ActorID:  vendorID,
		Action:   "order_status_changed",
		Entity:   "order",
		EntityID: order.ID,
		Metadata: map[string]string{"outlet_id": outletID, "status": order.Status},
	})

	return order, nil
}
