package food

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	domain "github.com/BruksfildServices01/uniease-api/internal/domain/food"
	"github.com/BruksfildServices01/uniease-api/internal/dto"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/metrics"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

const maxCartRetries = 5

// ======================================================
// INPUT
// ======================================================

type AddToCartInput struct {
	UserID     string
	OutletID   string
	MenuItemID string
	Quantity   int
}

// ======================================================
// USE CASE
// ======================================================

type AddToCart struct {
	repo      domain.Repository
	retention Retention
}

func NewAddToCart(repo domain.Repository, retention Retention) *AddToCart {
	return &AddToCart{repo: repo, retention: retention}
}

func (uc *AddToCart) Execute(ctx context.Context, in AddToCartInput) (*dto.OrderDTO, error) {
	if in.Quantity < 1 {
		return nil, httperr.Validation("invalid_quantity")
	}

	outlet, err := uc.repo.GetOutlet(ctx, in.OutletID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFoundErr("outlet_not_found")
		}
		return nil, err
	}

	found, err := uc.repo.GetMenuItems(ctx, []string{in.MenuItemID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, httperr.NotFoundErr("menu_item_not_found")
	}
	if found[0].OutletID != outlet.ID {
		return nil, httperr.Validation("menu_item_wrong_outlet")
	}

	line := models.OrderLine{MenuItemID: in.MenuItemID, Quantity: in.Quantity}

	for attempt := 1; attempt <= maxCartRetries; attempt++ {
		out, err := uc.tryAdd(ctx, in, line)
		if errors.Is(err, domain.ErrStaleCart) {
			logrus.WithFields(logrus.Fields{
				"user_id":   in.UserID,
				"outlet_id": in.OutletID,
				"attempt":   attempt,
			}).Debug("cart write lost a race, retrying")
			continue
		}
		if err != nil {
			return nil, err
		}

		metrics.RecordOrderEvent("item_added")
		uc.retention.Trigger()
		return out, nil
	}

	metrics.RecordOrderEvent("cart_busy")
	return nil, httperr.Conflict("cart_busy")
}

// tryAdd is one optimistic read-modify-write of the cart.
func (uc *AddToCart) tryAdd(ctx context.Context, in AddToCartInput, line models.OrderLine) (*dto.OrderDTO, error) {
	cart, err := uc.repo.FindOrCreateCart(ctx, in.UserID, in.OutletID)
	if err != nil {
		return nil, err
	}

	// repeated adds of the same item produce separate lines
	cart.Items = append(cart.Items, line)

	menu, err := uc.repo.GetMenuItems(ctx, domain.LineItemIDs(cart.Items))
	if err != nil {
		return nil, err
	}

	prices := domain.PriceIndex(menu)
	if _, ok := prices[line.MenuItemID]; !ok {
		return nil, httperr.NotFoundErr("menu_item_not_found")
	}

	var dropped int
	cart.Items, dropped = domain.DropUnavailable(cart.Items, prices)
	if dropped > 0 {
		logrus.WithFields(logrus.Fields{
			"cart_id": cart.ID,
			"dropped": dropped,
		}).Info("removed cart lines for items no longer on the menu")
	}

	total, err := domain.ComputeTotal(cart.Items, prices)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownMenuItem) {
			return nil, httperr.NotFoundErr("menu_item_not_found")
		}
		return nil, err
	}
	cart.Total = total

	if err := uc.repo.SaveCart(ctx, cart); err != nil {
		return nil, err
	}

	out := toOrderDTO(cart, menuIndex(menu))
	return &out, nil
}
