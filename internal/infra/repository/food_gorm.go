package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/uniease-api/internal/domain/food"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type FoodGormRepository struct {
	db *gorm.DB
}

func NewFoodGormRepository(db *gorm.DB) *FoodGormRepository {
	return &FoodGormRepository{db: db}
}

// --------------------------------------------------
// Outlets
// --------------------------------------------------

func (r *FoodGormRepository) ListOutlets(ctx context.Context) ([]models.FoodOutlet, error) {
	var out []models.FoodOutlet
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FoodGormRepository) GetOutlet(ctx context.Context, id string) (*models.FoodOutlet, error) {
	var o models.FoodOutlet
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, mapNotFound(err, food.ErrNotFound)
	}
	return &o, nil
}

func (r *FoodGormRepository) FindOutletByVendor(ctx context.Context, vendorID string) (*models.FoodOutlet, error) {
	var o models.FoodOutlet
	if err := r.db.WithContext(ctx).Where("vendor_id = ?", vendorID).First(&o).Error; err != nil {
		return nil, mapNotFound(err, food.ErrNotFound)
	}
	return &o, nil
}

func (r *FoodGormRepository) UpsertOutletByName(ctx context.Context, o *models.FoodOutlet) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"vendor_id", "operating_hours", "updated_at"}),
		}).
		Create(o).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).Where("name = ?", o.Name).First(o).Error
}

// --------------------------------------------------
// Menu
// --------------------------------------------------

func (r *FoodGormRepository) ListMenu(ctx context.Context, outletID string) ([]models.MenuItem, error) {
	var out []models.MenuItem
	if err := r.db.WithContext(ctx).
		Where("outlet_id = ?", outletID).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FoodGormRepository) GetMenuItems(ctx context.Context, ids []string) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return []models.MenuItem{}, nil
	}

	var out []models.MenuItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FoodGormRepository) ReplaceMenu(ctx context.Context, outletID string, items []models.MenuItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.MenuItem
		if err := tx.Where("outlet_id = ?", outletID).Find(&existing).Error; err != nil {
			return err
		}

		byName := make(map[string]models.MenuItem, len(existing))
		for _, it := range existing {
			byName[it.Name] = it
		}

		keep := make([]string, 0, len(items))
		for i := range items {
			items[i].OutletID = outletID
			if prev, ok := byName[items[i].Name]; ok {
				items[i].ID = prev.ID
				items[i].CreatedAt = prev.CreatedAt
			} else if items[i].ID == "" {
				items[i].ID = uuid.NewString()
			}
			if err := tx.Save(&items[i]).Error; err != nil {
				return err
			}
			keep = append(keep, items[i].ID)
		}

		q := tx.Where("outlet_id = ?", outletID)
		if len(keep) > 0 {
			q = q.Where("id NOT IN ?", keep)
		}
		return q.Delete(&models.MenuItem{}).Error
	})
}

// --------------------------------------------------
// Cart
// --------------------------------------------------

// FindOrCreateCart relies on the partial unique index over (user_id, outlet_id)
// where status = 'cart': a losing concurrent insert does nothing and both callers
// read back the same row.
func (r *FoodGormRepository) FindOrCreateCart(ctx context.Context, userID, outletID string) (*models.Order, error) {
	now := time.Now().UTC()
	cart := models.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		OutletID:  outletID,
		Items:     []models.OrderLine{},
		Status:    string(food.StatusCart),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "outlet_id"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{
				clause.Expr{SQL: "status = 'cart'"},
			}},
			DoNothing: true,
		}).
		Create(&cart).Error; err != nil {
		return nil, err
	}

	return r.FindCart(ctx, userID, outletID)
}

func (r *FoodGormRepository) FindCart(ctx context.Context, userID, outletID string) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND outlet_id = ? AND status = ?", userID, outletID, string(food.StatusCart)).
		First(&o).Error; err != nil {
		return nil, mapNotFound(err, food.ErrNotFound)
	}
	return &o, nil
}

func (r *FoodGormRepository) SaveCart(ctx context.Context, o *models.Order) error {
	now := time.Now().UTC()

	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ? AND version = ?", o.ID, string(food.StatusCart), o.Version).
		Select("items", "total", "version", "updated_at").
		Updates(&models.Order{
			Items:     o.Items,
			Total:     o.Total,
			Version:   o.Version + 1,
			UpdatedAt: now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return food.ErrStaleCart
	}

	o.Version++
	o.UpdatedAt = now
	return nil
}

// --------------------------------------------------
// Orders
// --------------------------------------------------

func (r *FoodGormRepository) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return nil, mapNotFound(err, food.ErrNotFound)
	}
	return &o, nil
}

func (r *FoodGormRepository) TransitionOrder(ctx context.Context, t food.OrderTransition) (*models.Order, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", t.OrderID)
	if t.UserID != "" {
		q = q.Where("user_id = ?", t.UserID)
	}
	if t.OutletID != "" {
		q = q.Where("outlet_id = ?", t.OutletID)
	}
	if len(t.From) > 0 {
		q = q.Where("status IN ?", food.StatusStrings(t.From))
	}

	res := q.Updates(map[string]any{
		"status":     string(t.To),
		"updated_at": time.Now().UTC(),
	})
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", t.OrderID).Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, food.ErrNotFound
		}
		return nil, food.ErrStateChanged
	}

	return r.GetOrder(ctx, t.OrderID)
}

func (r *FoodGormRepository) ListOrders(ctx context.Context, f food.OrderFilter) ([]models.Order, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.OutletID != "" {
		q = q.Where("outlet_id = ?", f.OutletID)
	}
	if f.ExcludeCart {
		q = q.Where("status <> ?", string(food.StatusCart))
	}

	var out []models.Order
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FoodGormRepository) PruneOrders(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	var pivot models.Order
	err := r.db.WithContext(ctx).
		Select("created_at").
		Order("created_at DESC").
		Offset(keep - 1).
		Take(&pivot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}

	res := r.db.WithContext(ctx).
		Where("created_at < ?", pivot.CreatedAt).
		Delete(&models.Order{})
	return res.RowsAffected, res.Error
}

var _ food.Repository = (*FoodGormRepository)(nil)
