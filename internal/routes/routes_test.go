package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/uniease-api/internal/app"
	"github.com/BruksfildServices01/uniease-api/internal/audit"
	"github.com/BruksfildServices01/uniease-api/internal/config"
	"github.com/BruksfildServices01/uniease-api/internal/models"
	"github.com/BruksfildServices01/uniease-api/internal/notify"
	ucFood "github.com/BruksfildServices01/uniease-api/internal/usecase/food"
	ucIdentity "github.com/BruksfildServices01/uniease-api/internal/usecase/identity"
	ucSalon "github.com/BruksfildServices01/uniease-api/internal/usecase/salon"
)

type server struct {
	t      *testing.T
	engine *gin.Engine
	stores *app.Stores
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		StoreDriver:    config.DriverMemory,
		JWTSecret:      "test",
		JWTExpiryHours: 1,
		CampusTimezone: "UTC",
		SlotTimes:      []string{"09:00", "10:00"},
		CORSOrigins:    []string{"*"},
	}
	stores, err := app.OpenStores(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	admins, err := ucIdentity.NewBootstrapAdmins(stores.Users).Execute(ctx, []config.AdminAccount{
		{Name: "Salon Admin", Email: "salon@uni.edu", Password: "admin-pw"},
		{Name: "Vendor", Email: "vendor@uni.edu", Password: "vendor-pw"},
	})
	require.NoError(t, err)

	_, err = ucSalon.NewGenerateDailySlots(stores.Salon, cfg.SlotTimes).
		Execute(ctx, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	outlet := &models.FoodOutlet{Name: "Snap Eats", VendorID: admins["vendor@uni.edu"].ID, OperatingHours: "8:00 AM - 10:00 PM"}
	require.NoError(t, stores.Food.UpsertOutletByName(ctx, outlet))
	require.NoError(t, stores.Food.ReplaceMenu(ctx, outlet.ID, []models.MenuItem{{Name: "Wrap", Price: 129}}))

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config:    cfg,
		Stores:    stores,
		Audit:     audit.Discard{},
		Retention: ucFood.NoRetention{},
		Notifier:  notify.Multi{},
	})
	return &server{t: t, engine: r, stores: stores}
}

func (s *server) call(method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func (s *server) login(email, password string) string {
	w, out := s.call(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return out["token"].(string)
}

func (s *server) register(email string) string {
	w, out := s.call(http.MethodPost, "/api/auth/register", "", gin.H{"name": "Student", "email": email, "password": "secret-pw"})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return out["token"].(string)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newServer(t)

	w, out := s.call(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", out["status"])

	w, _ = s.call(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "uniease_")
}

func TestSalonBookingFlow(t *testing.T) {
	s := newServer(t)
	a := s.register("a@uni.edu")
	b := s.register("b@uni.edu")

	w, out := s.call(http.MethodGet, "/api/salon/available-slots?date=2024-06-01", a, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []any{"09:00", "10:00"}, out["slots"])

	w, booking := s.call(http.MethodPost, "/api/salon/bookings", a, gin.H{"date": "2024-06-01", "time": "09:00"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, out = s.call(http.MethodPost, "/api/salon/bookings", b, gin.H{"date": "2024-06-01", "time": "09:00"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_unavailable", out["error_code"])

	w, _ = s.call(http.MethodDelete, "/api/salon/bookings/"+booking["id"].(string), b, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.call(http.MethodDelete, "/api/salon/bookings/"+booking["id"].(string), a, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.call(http.MethodPost, "/api/salon/bookings", b, gin.H{"date": "2024-06-01", "time": "09:00"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	s := newServer(t)
	user := s.register("c@uni.edu")
	admin := s.login("salon@uni.edu", "admin-pw")

	w, _ := s.call(http.MethodGet, "/api/admin/salon/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.call(http.MethodGet, "/api/admin/salon/stats", user, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, out := s.call(http.MethodGet, "/api/admin/salon/stats", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, out, "byStatus")

	w, out = s.call(http.MethodGet, "/api/admin/audit-logs?page=1&limit=10", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 10, out["limit"])
}

func TestFoodFlow(t *testing.T) {
	s := newServer(t)
	user := s.register("d@uni.edu")
	vendor := s.login("vendor@uni.edu", "vendor-pw")

	w, out := s.call(http.MethodGet, "/api/food/outlets", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	outlet := out["data"].([]any)[0].(map[string]any)["id"].(string)

	w, out = s.call(http.MethodGet, "/api/food/outlets/"+outlet+"/menu", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	item := out["data"].([]any)[0].(map[string]any)["id"].(string)

	w, out = s.call(http.MethodPost, "/api/food/outlets/"+outlet+"/checkout", user, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "cart_empty", out["error_code"])

	w, out = s.call(http.MethodPost, "/api/food/outlets/"+outlet+"/cart", user, gin.H{"item_id": item, "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 258, out["total"])

	w, order := s.call(http.MethodPost, "/api/food/outlets/"+outlet+"/checkout", user, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := order["order_id"].(string)

	w, _ = s.call(http.MethodPost, "/api/food/orders/"+orderID+"/confirm", user, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = s.call(http.MethodPatch, "/api/admin/food/"+outlet+"/orders/"+orderID, vendor, gin.H{"status": "ready"})
	require.Equal(t, http.StatusOK, w.Code)

	w, out = s.call(http.MethodPost, "/api/food/orders/"+orderID+"/confirm", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "picked_up", out["status"])

	w, out = s.call(http.MethodGet, "/api/admin/food/my-outlet", vendor, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, outlet, out["id"])
}

func TestLaundryFlow(t *testing.T) {
	s := newServer(t)
	user := s.register("e@uni.edu")
	admin := s.login("salon@uni.edu", "admin-pw")

	w, req := s.call(http.MethodPost, "/api/laundry", user, gin.H{
		"type":  "washing",
		"items": []gin.H{{"name": "Shirt", "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "e@uni.edu", req["email"])

	w, out := s.call(http.MethodPatch, "/api/admin/laundry/laundries/"+req["id"].(string), admin, gin.H{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)
	notification := out["notification"].(map[string]any)
	assert.Equal(t, false, notification["sent"])
	assert.Equal(t, "completed", out["laundry"].(map[string]any)["status"])
}
