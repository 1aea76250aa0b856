package salon

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/uniease-api/internal/models"
	"github.com/BruksfildServices01/uniease-api/internal/timezone"
)

// DefaultTimes are the bookable times of day when none are configured.
var DefaultTimes = []string{"09:00", "10:00", "11:00", "14:00", "15:00", "16:00"}

// BuildDaySlots returns one available slot per time for the canonical form of day.
func BuildDaySlots(day time.Time, times []string, now time.Time) []models.SalonSlot {
	d := timezone.DayUTC(day)
	slots := make([]models.SalonSlot, 0, len(times))
	for _, t := range times {
		slots = append(slots, models.SalonSlot{
			ID:          uuid.NewString(),
			Date:        d,
			Time:        t,
			IsAvailable: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return slots
}

func NewBooking(userID, service string, day time.Time, clock string, now time.Time) *models.SalonBooking {
	return &models.SalonBooking{
		ID:        uuid.NewString(),
		UserID:    userID,
		Service:   service,
		Date:      timezone.DayUTC(day),
		Time:      clock,
		Status:    string(InitialStatus()),
		BookedAt:  now,
		UpdatedAt: now,
	}
}

// ApplyTransition mutates b in memory the same way the stores do on a transition.
func ApplyTransition(b *models.SalonBooking, next Status, at time.Time) {
	prev := Status(b.Status)
	b.Status = string(next)
	b.UpdatedAt = at

	switch EffectOf(prev, next) {
	case SlotRelease:
		b.CancelledAt = &at
	case SlotClaim:
		b.CancelledAt = nil
	}
}
