package salon

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/uniease-api/internal/audit"
	domain "github.com/BruksfildServices01/uniease-api/internal/domain/salon"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type CancelBooking struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewCancelBooking(repo domain.Repository, sink audit.Sink) *CancelBooking {
	return &CancelBooking{repo: repo, audit: sink}
}

func (uc *CancelBooking) Execute(ctx context.Context, userID, bookingID string) (*models.SalonBooking, error) {
	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFoundErr("booking_not_found")
		}
		return nil, err
	}

	if b.UserID != userID {
		return nil, httperr.Forbidden("booking_not_owner")
	}

	if err := domain.CanCancel(domain.Status(b.Status)); err != nil {
		return nil, err
	}

	updated, err := uc.repo.TransitionBooking(ctx, domain.Transition{
		BookingID: b.ID,
		From:      domain.CancellableStatuses,
		To:        domain.StatusCancelled,
		At:        time.Now().UTC(),
	})
	if err != nil {
		// moved on between the read and the write
		if errors.Is(err, domain.ErrStateChanged) {
			return nil, httperr.Conflict("booking_not_cancellable")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  userID,
		Action:   "booking_cancelled",
		Entity:   "salon_booking",
		EntityID: b.ID,
	})

	return updated, nil
}
