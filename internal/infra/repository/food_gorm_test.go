package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/uniease-api/internal/domain/food"
	"github.com/BruksfildServices01/uniease-api/internal/models"
)

func TestFindOrCreateCartUsesPartialIndexUpsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFoodGormRepository(db)
	now := time.Now().UTC()

	mock.ExpectExec(`INSERT INTO "orders" .*ON CONFLICT .*WHERE status = 'cart' DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE user_id = .* AND outlet_id = .* AND status = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "outlet_id", "items", "status", "total", "version", "created_at", "updated_at"}).
			AddRow("c1", "u1", "o1", `[{"item_id":"m1","quantity":2}]`, "cart", 200.0, 3, now, now))

	cart, err := repo.FindOrCreateCart(context.Background(), "u1", "o1")
	require.NoError(t, err)
	assert.Equal(t, "c1", cart.ID)
	assert.Equal(t, 3, cart.Version)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, models.OrderLine{MenuItemID: "m1", Quantity: 2}, cart.Items[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCartStaleVersion(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFoodGormRepository(db)

	mock.ExpectExec(`UPDATE "orders" SET .*WHERE id = .* AND status = .* AND version = `).
		WillReturnResult(sqlmock.NewResult(0, 0))

	o := &models.Order{ID: "c1", Version: 2, Items: []models.OrderLine{{MenuItemID: "m1", Quantity: 1}}}
	err := repo.SaveCart(context.Background(), o)
	assert.ErrorIs(t, err, food.ErrStaleCart)
	assert.Equal(t, 2, o.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveCartBumpsVersion(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFoodGormRepository(db)

	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	o := &models.Order{ID: "c1", Version: 2}
	require.NoError(t, repo.SaveCart(context.Background(), o))
	assert.Equal(t, 3, o.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransitionOrderDistinguishesMissingFromMismatch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFoodGormRepository(db)

	mock.ExpectExec(`UPDATE "orders" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := repo.TransitionOrder(context.Background(), food.OrderTransition{
		OrderID: "o1", UserID: "u1", From: []food.Status{food.StatusReady}, To: food.StatusPickedUp,
	})
	assert.ErrorIs(t, err, food.ErrStateChanged)

	mock.ExpectExec(`UPDATE "orders" SET`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err = repo.TransitionOrder(context.Background(), food.OrderTransition{OrderID: "missing", To: food.StatusReady})
	assert.ErrorIs(t, err, food.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPruneOrdersDeletesOlderThanPivot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFoodGormRepository(db)
	pivot := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .*created_at.* FROM "orders" ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(pivot))
	mock.ExpectExec(`DELETE FROM "orders" WHERE created_at < `).
		WithArgs(pivot).
		WillReturnResult(sqlmock.NewResult(0, 7))

	n, err := repo.PruneOrders(context.Background(), 100)
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPruneOrdersUnderLimitIsNoop(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFoodGormRepository(db)

	mock.ExpectQuery(`SELECT .* FROM "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}))

	n, err := repo.PruneOrders(context.Background(), 100)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
