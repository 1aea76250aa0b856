package food

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/uniease-api/internal/models"
)

var (
	ErrNotFound     = errors.New("food: not found")
	ErrStaleCart    = errors.New("food: cart modified concurrently")
	ErrStateChanged = errors.New("food: order state changed")
)

type OrderFilter struct {
	UserID      string
	OutletID    string
	ExcludeCart bool
}

// OrderTransition is a conditional status change. Empty constraint fields match
// anything; an empty From matches any current status.
type OrderTransition struct {
	OrderID  string
	UserID   string
	OutletID string
	From     []Status
	To       Status
}

type Repository interface {
	// -------- Outlets / menu --------
	ListOutlets(ctx context.Context) ([]models.FoodOutlet, error)
	GetOutlet(ctx context.Context, id string) (*models.FoodOutlet, error)
	FindOutletByVendor(ctx context.Context, vendorID string) (*models.FoodOutlet, error)
	UpsertOutletByName(ctx context.Context, o *models.FoodOutlet) error

	ListMenu(ctx context.Context, outletID string) ([]models.MenuItem, error)
	GetMenuItems(ctx context.Context, ids []string) ([]models.MenuItem, error)

	// ReplaceMenu makes items the outlet's menu. Items matched by name keep their id
	// so carts that reference them stay valid; unlisted items are removed.
	ReplaceMenu(ctx context.Context, outletID string, items []models.MenuItem) error

	// -------- Cart --------

	// FindOrCreateCart is an atomic upsert keyed on (user, outlet, status=cart).
	FindOrCreateCart(ctx context.Context, userID, outletID string) (*models.Order, error)
	FindCart(ctx context.Context, userID, outletID string) (*models.Order, error)

	// SaveCart writes items and total only if the stored version equals o.Version,
	// then bumps o.Version. ErrStaleCart otherwise.
	SaveCart(ctx context.Context, o *models.Order) error

	// -------- Orders --------
	GetOrder(ctx context.Context, id string) (*models.Order, error)

	// TransitionOrder is a single conditional update. ErrNotFound when the id does
	// not exist, ErrStateChanged when it exists but a constraint did not match.
	TransitionOrder(ctx context.Context, t OrderTransition) (*models.Order, error)
	ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error)

	// PruneOrders keeps the newest keep orders by creation time and deletes every
	// order created before the keep-th newest one.
	PruneOrders(ctx context.Context, keep int) (int64, error)
}

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
