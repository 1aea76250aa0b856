package food

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/uniease-api/internal/domain/food"
	"github.com/BruksfildServices01/uniease-api/internal/dto"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

// Retention is kicked after order writes. Implementations must not block.
type Retention interface {
	Trigger()
}

type NoRetention struct{}

func (NoRetention) Trigger() {}

// ======================================================
// DTO RESOLUTION
// ======================================================

// toOrderDTO resolves lines against menu for display. The total is the stored one,
// computed when the order was last written.
func toOrderDTO(o *models.Order, menu map[string]models.MenuItem) dto.OrderDTO {
	out := dto.OrderDTO{
		ID:        o.ID,
		UserID:    o.UserID,
		OutletID:  o.OutletID,
		Status:    o.Status,
		Items:     make([]dto.OrderLineDTO, 0, len(o.Items)),
		Total:     o.Total,
		CreatedAt: &o.CreatedAt,
	}

	for _, l := range o.Items {
		it := menu[l.MenuItemID]
		out.Items = append(out.Items, dto.OrderLineDTO{
			ItemID:   l.MenuItemID,
			Item:     it.Name,
			Price:    it.Price,
			Quantity: l.Quantity,
			Subtotal: it.Price * float64(l.Quantity),
		})
	}
	return out
}

func menuIndex(items []models.MenuItem) map[string]models.MenuItem {
	idx := make(map[string]models.MenuItem, len(items))
	for _, it := range items {
		idx[it.ID] = it
	}
	return idx
}

func resolveOrders(ctx context.Context, repo domain.Repository, orders []models.Order) ([]dto.OrderDTO, error) {
	var lines []models.OrderLine
	for _, o := range orders {
		lines = append(lines, o.Items...)
	}

	menu, err := repo.GetMenuItems(ctx, domain.LineItemIDs(lines))
	if err != nil {
		return nil, err
	}
	idx := menuIndex(menu)

	out := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderDTO(&orders[i], idx))
	}
	return out, nil
}

// authorizeOutlet loads the outlet and checks the caller vends it.
func authorizeOutlet(ctx context.Context, repo domain.Repository, vendorID, outletID string) (*models.FoodOutlet, error) {
	outlet, err := repo.GetOutlet(ctx, outletID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFoundErr("outlet_not_found")
		}
		return nil, err
	}
	if outlet.VendorID != vendorID {
		return nil, httperr.Forbidden("outlet_not_authorized")
	}
	return outlet, nil
}

// ======================================================
// CART VIEW
// ======================================================

type ViewCart struct {
	repo domain.Repository
}

func NewViewCart(repo domain.Repository) *ViewCart {
	return &ViewCart{repo: repo}
}

// Execute never fails for a missing cart; it returns the empty cart shape.
func (uc *ViewCart) Execute(ctx context.Context, userID, outletID string) (*dto.OrderDTO, error) {
	cart, err := uc.repo.FindCart(ctx, userID, outletID)
	if errors.Is(err, domain.ErrNotFound) {
		return &dto.OrderDTO{OutletID: outletID, Items: []dto.OrderLineDTO{}}, nil
	}
	if err != nil {
		return nil, err
	}

	out, err := resolveOrders(ctx, uc.repo, []models.Order{*cart})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}
