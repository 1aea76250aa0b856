package salon

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/uniease-api/internal/models"
)

var (
	ErrNotFound        = errors.New("salon: not found")
	ErrSlotUnavailable = errors.New("salon: slot unavailable")
	ErrStateChanged    = errors.New("salon: booking state changed")
)

type BookingFilter struct {
	UserID string
	Status Status
	Date   *time.Time
}

// Transition is a conditional status change. An empty From matches any status.
type Transition struct {
	BookingID string
	From      []Status
	To        Status
	At        time.Time
}

type Repository interface {
	// -------- Slots --------
	InsertSlotsIfAbsent(
		ctx context.Context,
		day time.Time,
		slots []models.SalonSlot,
	) (int, error)

	ListSlots(
		ctx context.Context,
		day time.Time,
		onlyAvailable bool,
	) ([]models.SalonSlot, error)

	ReleaseAllSlots(
		ctx context.Context,
		day time.Time,
	) (int64, error)

	// -------- Booking (create / claim) --------

	// ClaimSlotAndCreateBooking flips the (b.Date, b.Time) slot from available to
	// unavailable and stores b as one atomic step. ErrSlotUnavailable when no
	// available slot matched.
	ClaimSlotAndCreateBooking(
		ctx context.Context,
		b *models.SalonBooking,
	) error

	// -------- Booking (state change) --------
	GetBooking(
		ctx context.Context,
		id string,
	) (*models.SalonBooking, error)

	// TransitionBooking applies t only if the booking's current status is in t.From,
	// and adjusts the slot per EffectOf. ErrStateChanged when the status did not
	// match, ErrSlotUnavailable when a re-claim lost the slot.
	TransitionBooking(
		ctx context.Context,
		t Transition,
	) (*models.SalonBooking, error)

	// -------- Queries --------
	ListBookings(
		ctx context.Context,
		f BookingFilter,
	) ([]models.SalonBooking, error)

	CountByStatus(ctx context.Context) (map[Status]int64, error)

	CountOnDay(ctx context.Context, day time.Time) (int64, error)
}

// StatusAllowed reports whether s is in from; an empty from allows everything.
func StatusAllowed(s Status, from []Status) bool {
	if len(from) == 0 {
		return true
	}
	for _, f := range from {
		if f == s {
			return true
		}
	}
	return false
}

func StatusStrings(in []Status) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}
