package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/uniease-api/internal/domain/food"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

func TestFindOrCreateCartIsSingleUnderRace(t *testing.T) {
	s := NewFoodStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]string, 20)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			o, err := s.FindOrCreateCart(ctx, "u1", "o1")
			require.NoError(t, err)
			ids[i] = o.ID
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
}

func TestSaveCartRejectsStaleVersion(t *testing.T) {
	s := NewFoodStore()
	ctx := context.Background()

	a, _ := s.FindOrCreateCart(ctx, "u1", "o1")
	b, _ := s.FindOrCreateCart(ctx, "u1", "o1")

	a.Items = append(a.Items, models.OrderLine{MenuItemID: "m1", Quantity: 1})
	require.NoError(t, s.SaveCart(ctx, a))
	assert.Equal(t, 1, a.Version)

	b.Items = append(b.Items, models.OrderLine{MenuItemID: "m2", Quantity: 1})
	assert.ErrorIs(t, s.SaveCart(ctx, b), food.ErrStaleCart)
}

func TestPruneOrdersKeepsNewest(t *testing.T) {
	s := NewFoodStore()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		s.orders[id] = &models.Order{ID: id, Status: "pending", CreatedAt: base.Add(time.Duration(i) * time.Minute)}
	}

	n, err := s.PruneOrders(context.Background(), 3)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Len(t, s.orders, 3)
	assert.Contains(t, s.orders, "e")
	assert.Contains(t, s.orders, "c")
	assert.NotContains(t, s.orders, "a")

	n, err = s.PruneOrders(context.Background(), 3)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReplaceMenuKeepsIDsByName(t *testing.T) {
	s := NewFoodStore()
	ctx := context.Background()

	items := []models.MenuItem{{ID: "x1", Name: "Dosa", Price: 100}, {ID: "x2", Name: "Idli", Price: 50}}
	require.NoError(t, s.ReplaceMenu(ctx, "o1", items))

	again := []models.MenuItem{{ID: "y1", Name: "Dosa", Price: 120}}
	require.NoError(t, s.ReplaceMenu(ctx, "o1", again))

	menu, err := s.ListMenu(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, "x1", menu[0].ID)
	assert.Equal(t, 120.0, menu[0].Price)
}
