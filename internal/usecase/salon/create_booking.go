package salon

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/uniease-api/internal/audit"
	domain "github.com/BruksfildServices01/uniease-api/internal/domain/salon"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/metrics"
	"github.com/BruksfildServices01/uniease-api/internal/models"
	"github.com/BruksfildServices01/uniease-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID  string
	Date    string
	Time    string
	Service string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit audit.Sink
	now   func() time.Time
}

func NewCreateBooking(repo domain.Repository, sink audit.Sink) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: sink,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (uc *CreateBooking) Execute(ctx context.Context, in CreateBookingInput) (*models.SalonBooking, error) {
	day, err := timezone.ParseDay(in.Date)
	if err != nil {
		return nil, httperr.Validation("invalid_date")
	}

	clock, err := timezone.ParseClock(in.Time)
	if err != nil {
		return nil, httperr.Validation("invalid_time")
	}

	b := domain.NewBooking(in.UserID, strings.TrimSpace(in.Service), day, clock, uc.now())

	// one conditional write claims the slot; losing a race surfaces here
	if err := uc.repo.ClaimSlotAndCreateBooking(ctx, b); err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			metrics.RecordBooking("conflict")
			return nil, httperr.Conflict("slot_unavailable")
		}
		metrics.RecordBooking("error")
		return nil, err
	}
	metrics.RecordBooking("created")

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.UserID,
		Action:   "booking_created",
		Entity:   "salon_booking",
		EntityID: b.ID,
		Metadata: map[string]string{"date": in.Date, "time": clock},
	})

	return b, nil
}
