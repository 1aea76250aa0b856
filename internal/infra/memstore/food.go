package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/uniease-api/internal/domain/food"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

type FoodStore struct {
	mu      sync.Mutex
	outlets map[string]*models.FoodOutlet
	menu    map[string]*models.MenuItem
	orders  map[string]*models.Order
}

func NewFoodStore() *FoodStore {
	return &FoodStore{
		outlets: map[string]*models.FoodOutlet{},
		menu:    map[string]*models.MenuItem{},
		orders:  map[string]*models.Order{},
	}
}

// --------------------------------------------------
// Outlets / menu
// --------------------------------------------------

func (s *FoodStore) ListOutlets(_ context.Context) ([]models.FoodOutlet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.FoodOutlet, 0, len(s.outlets))
	for _, o := range s.outlets {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *FoodStore) GetOutlet(_ context.Context, id string) (*models.FoodOutlet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.outlets[id]
	if !ok {
		return nil, food.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *FoodStore) FindOutletByVendor(_ context.Context, vendorID string) (*models.FoodOutlet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range s.outlets {
		if o.VendorID == vendorID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, food.ErrNotFound
}

func (s *FoodStore) UpsertOutletByName(_ context.Context, o *models.FoodOutlet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.outlets {
		if existing.Name == o.Name {
			existing.VendorID = o.VendorID
			existing.OperatingHours = o.OperatingHours
			existing.UpdatedAt = o.UpdatedAt
			*o = *existing
			return nil
		}
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	cp := *o
	s.outlets[o.ID] = &cp
	return nil
}

func (s *FoodStore) ListMenu(_ context.Context, outletID string) ([]models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.MenuItem
	for _, it := range s.menu {
		if it.OutletID == outletID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *FoodStore) GetMenuItems(_ context.Context, ids []string) ([]models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.MenuItem, 0, len(ids))
	for _, id := range ids {
		if it, ok := s.menu[id]; ok {
			out = append(out, *it)
		}
	}
	return out, nil
}

func (s *FoodStore) ReplaceMenu(_ context.Context, outletID string, items []models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byName := map[string]*models.MenuItem{}
	for _, it := range s.menu {
		if it.OutletID == outletID {
			byName[it.Name] = it
		}
	}

	keep := map[string]bool{}
	for i := range items {
		items[i].OutletID = outletID
		if existing, ok := byName[items[i].Name]; ok {
			items[i].ID = existing.ID
			items[i].CreatedAt = existing.CreatedAt
		} else if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		cp := items[i]
		s.menu[cp.ID] = &cp
		keep[cp.ID] = true
	}

	for _, it := range byName {
		if !keep[it.ID] {
			delete(s.menu, it.ID)
		}
	}
	return nil
}

// --------------------------------------------------
// Cart
// --------------------------------------------------

func (s *FoodStore) findCartLocked(userID, outletID string) *models.Order {
	for _, o := range s.orders {
		if o.UserID == userID && o.OutletID == outletID && o.Status == string(food.StatusCart) {
			return o
		}
	}
	return nil
}

func (s *FoodStore) FindOrCreateCart(_ context.Context, userID, outletID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o := s.findCartLocked(userID, outletID); o != nil {
		return cloneOrder(o), nil
	}

	now := time.Now().UTC()
	o := &models.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		OutletID:  outletID,
		Items:     []models.OrderLine{},
		Status:    string(food.StatusCart),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.orders[o.ID] = o
	return cloneOrder(o), nil
}

func (s *FoodStore) FindCart(_ context.Context, userID, outletID string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if o := s.findCartLocked(userID, outletID); o != nil {
		return cloneOrder(o), nil
	}
	return nil, food.ErrNotFound
}

func (s *FoodStore) SaveCart(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.orders[o.ID]
	if !ok || stored.Status != string(food.StatusCart) || stored.Version != o.Version {
		return food.ErrStaleCart
	}

	stored.Items = append([]models.OrderLine(nil), o.Items...)
	stored.Total = o.Total
	stored.UpdatedAt = time.Now().UTC()
	stored.Version++
	o.Version = stored.Version
	o.UpdatedAt = stored.UpdatedAt
	return nil
}

// --------------------------------------------------
// Orders
// --------------------------------------------------

func (s *FoodStore) GetOrder(_ context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, food.ErrNotFound
	}
	return cloneOrder(o), nil
}

func (s *FoodStore) TransitionOrder(_ context.Context, t food.OrderTransition) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[t.OrderID]
	if !ok {
		return nil, food.ErrNotFound
	}
	if (t.UserID != "" && o.UserID != t.UserID) ||
		(t.OutletID != "" && o.OutletID != t.OutletID) ||
		!food.StatusAllowed(food.Status(o.Status), t.From) {
		return nil, food.ErrStateChanged
	}

	o.Status = string(t.To)
	o.UpdatedAt = time.Now().UTC()
	return cloneOrder(o), nil
}

func (s *FoodStore) ListOrders(_ context.Context, f food.OrderFilter) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Order
	for _, o := range s.orders {
		if f.UserID != "" && o.UserID != f.UserID {
			continue
		}
		if f.OutletID != "" && o.OutletID != f.OutletID {
			continue
		}
		if f.ExcludeCart && o.Status == string(food.StatusCart) {
			continue
		}
		out = append(out, *cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *FoodStore) PruneOrders(_ context.Context, keep int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep <= 0 || len(s.orders) <= keep {
		return 0, nil
	}

	created := make([]time.Time, 0, len(s.orders))
	for _, o := range s.orders {
		created = append(created, o.CreatedAt)
	}
	sort.Slice(created, func(i, j int) bool { return created[i].After(created[j]) })
	cutoff := created[keep-1]

	var n int64
	for id, o := range s.orders {
		if o.CreatedAt.Before(cutoff) {
			delete(s.orders, id)
			n++
		}
	}
	return n, nil
}

func cloneOrder(o *models.Order) *models.Order {
	cp := *o
	cp.Items = append([]models.OrderLine(nil), o.Items...)
	return &cp
}

var _ food.Repository = (*FoodStore)(nil)
