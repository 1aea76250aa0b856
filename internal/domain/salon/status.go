package salon

import (
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

var AllStatuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

func ParseStatus(s string) (Status, error) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, nil
		}
	}
	return "", httperr.Validation("invalid_status")
}

// ===============================
// Validations
// ===============================

// CancellableStatuses are the states a user may cancel from.
var CancellableStatuses = []Status{StatusPending, StatusConfirmed}

func CanCancel(current Status) error {
	for _, st := range CancellableStatuses {
		if current == st {
			return nil
		}
	}
	return httperr.Conflict("booking_not_cancellable")
}

func InitialStatus() Status {
	return StatusPending
}

// HoldsSlot reports whether a booking in this status keeps its slot unavailable.
func HoldsSlot(s Status) bool {
	return s != StatusCancelled
}

// ===============================
// Slot side effects
// ===============================

type SlotEffect int

const (
	SlotUnchanged SlotEffect = iota
	SlotRelease
	SlotClaim
)

// EffectOf says what must happen to the booking's slot when it moves from prev to next.
func EffectOf(prev, next Status) SlotEffect {
	switch {
	case HoldsSlot(prev) && !HoldsSlot(next):
		return SlotRelease
	case !HoldsSlot(prev) && HoldsSlot(next):
		return SlotClaim
	default:
		return SlotUnchanged
	}
}
