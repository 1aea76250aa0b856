package food

import "github.com/BruksfildServices01/uniease-api/internal/httperr"

// ===============================
// Order Status
// ===============================

type Status string

const (
	StatusCart      Status = "cart"
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusPickedUp  Status = "picked_up"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// AdminSettable are the only values an outlet admin may write. No transition table
// is applied on top: any of these is reachable from any current status.
var AdminSettable = []Status{StatusPreparing, StatusReady, StatusCompleted, StatusCancelled}

func ParseAdminStatus(s string) (Status, error) {
	for _, st := range AdminSettable {
		if string(st) == s {
			return st, nil
		}
	}
	return "", httperr.Validation("invalid_status")
}

// ===============================
// Validations
// ===============================

func CanCheckout(o OrderView) error {
	if Status(o.Status) != StatusCart {
		return httperr.Conflict("order_not_cart")
	}
	if o.Lines == 0 {
		return httperr.Validation("cart_empty")
	}
	return nil
}

// OrderView is the minimal projection the guards need.
type OrderView struct {
	Status string
	Lines  int
}
