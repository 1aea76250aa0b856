package laundry

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type Type string

const (
	TypeWashing  Type = "washing"
	TypeDryClean Type = "dry-clean"
	TypeIroning  Type = "ironing"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeWashing, TypeDryClean, TypeIroning:
		return t, nil
	}
	return "", httperr.Validation("invalid_laundry_type")
}

// ParseAdminStatus accepts only what an admin may set. Completion is not terminal:
// moving back to pending reopens the request.
func ParseAdminStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusCompleted:
		return st, nil
	}
	return "", httperr.Validation("invalid_status")
}

func ValidateItems(items []models.LaundryItem) error {
	if len(items) == 0 {
		return httperr.Validation("invalid_items")
	}
	for _, it := range items {
		if strings.TrimSpace(it.Name) == "" || it.Quantity < 1 {
			return httperr.Validation("invalid_items")
		}
	}
	return nil
}

// CompletedAtFor returns the completedAt value a request should carry after moving
// to next: stamped on completion, kept if already completed, cleared otherwise.
func CompletedAtFor(current *models.LaundryRequest, next Status, now time.Time) *time.Time {
	if next != StatusCompleted {
		return nil
	}
	if Status(current.Status) == StatusCompleted && current.CompletedAt != nil {
		return current.CompletedAt
	}
	return &now
}
