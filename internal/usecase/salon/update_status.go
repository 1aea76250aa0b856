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

// UpdateBookingStatus is the admin override: any of the four statuses may be set
// from any current status. Slot availability follows the change.
type UpdateBookingStatus struct {
	repo  domain.Repository
	audit audit.Sink
}

func NewUpdateBookingStatus(repo domain.Repository, sink audit.Sink) *UpdateBookingStatus {
	return &UpdateBookingStatus{repo: repo, audit: sink}
}

func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	adminID string,
	bookingID string,
	status string,
) (*models.SalonBooking, error) {

	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.TransitionBooking(ctx, domain.Transition{
		BookingID: bookingID,
		To:        next,
		At:        time.Now().UTC(),
	})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil, httperr.NotFoundErr("booking_not_found")
	case errors.Is(err, domain.ErrSlotUnavailable):
		return nil, httperr.Conflict("slot_unavailable")
	case errors.Is(err, domain.ErrStateChanged):
		return nil, httperr.Conflict("booking_state_changed")
	case err != nil:
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  adminID,
		Action:   "booking_status_changed",
		Entity:   "salon_booking",
		EntityID: b.ID,
		Metadata: map[string]string{"status": b.Status},
	})

	return b, nil
}
