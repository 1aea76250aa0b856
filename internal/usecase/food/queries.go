package food

import (
	"context"
	"errors"

	domain "github.com/BruksfildServices01/uniease-api/internal/domain/food"
	"github.com/BruksfildServices01/uniease-api/internal/dto"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

// Catalog serves outlet and menu reads.
type Catalog struct {
	repo domain.Repository
}

func NewCatalog(repo domain.Repository) *Catalog {
	return &Catalog{repo: repo}
}

func (uc *Catalog) Outlets(ctx context.Context) ([]models.FoodOutlet, error) {
	return uc.repo.ListOutlets(ctx)
}

func (uc *Catalog) Menu(ctx context.Context, outletID string) ([]models.MenuItem, error) {
	if _, err := uc.repo.GetOutlet(ctx, outletID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFoundErr("outlet_not_found")
		}
		return nil, err
	}
	return uc.repo.ListMenu(ctx, outletID)
}

// ======================================================
// ORDERS
// ======================================================

type Orders struct {
	repo domain.Repository
}

func NewOrders(repo domain.Repository) *Orders {
	return &Orders{repo: repo}
}

// Mine lists the caller's placed orders, newest first. Carts are excluded.
func (uc *Orders) Mine(ctx context.Context, userID string) ([]dto.OrderDTO, error) {
	orders, err := uc.repo.ListOrders(ctx, domain.OrderFilter{UserID: userID, ExcludeCart: true})
	if err != nil {
		return nil, err
	}
	return resolveOrders(ctx, uc.repo, orders)
}

func (uc *Orders) MyOutlet(ctx context.Context, vendorID string) (*models.FoodOutlet, error) {
	outlet, err := uc.repo.FindOutletByVendor(ctx, vendorID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFoundErr("outlet_not_found")
		}
		return nil, err
	}
	return outlet, nil
}

func (uc *Orders) ForOutlet(ctx context.Context, vendorID, outletID string) ([]dto.OrderDTO, error) {
	if _, err := authorizeOutlet(ctx, uc.repo, vendorID, outletID); err != nil {
		return nil, err
	}

	orders, err := uc.repo.ListOrders(ctx, domain.OrderFilter{OutletID: outletID, ExcludeCart: true})
	if err != nil {
		return nil, err
	}
	return resolveOrders(ctx, uc.repo, orders)
}

func (uc *Orders) OneForOutlet(ctx context.Context, vendorID, outletID, orderID string) (*dto.OrderDTO, error) {
	if _, err := authorizeOutlet(ctx, uc.repo, vendorID, outletID); err != nil {
		return nil, err
	}

	order, err := uc.repo.GetOrder(ctx, orderID)
	if errors.Is(err, domain.ErrNotFound) || (err == nil && order.OutletID != outletID) {
		return nil, httperr.NotFoundErr("order_not_found")
	}
	if err != nil {
		return nil, err
	}

	out, err := resolveOrders(ctx, uc.repo, []models.Order{*order})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}
