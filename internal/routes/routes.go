package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/uniease-api/internal/app"
	"github.com/BruksfildServices01/uniease-api/internal/audit"
	"github.com/BruksfildServices01/uniease-api/internal/auth"
	"github.com/BruksfildServices01/uniease-api/internal/config"
	"github.com/BruksfildServices01/uniease-api/internal/handlers"
	"github.com/BruksfildServices01/uniease-api/internal/logging"
	"github.com/BruksfildServices01/uniease-api/internal/metrics"
	"github.com/BruksfildServices01/uniease-api/internal/middleware"
	"github.com/BruksfildServices01/uniease-api/internal/notify"
	ucFood "github.com/BruksfildServices01/uniease-api/internal/usecase/food"
	ucIdentity "github.com/BruksfildServices01/uniease-api/internal/usecase/identity"
	ucLaundry "github.com/BruksfildServices01/uniease-api/internal/usecase/laundry"
	ucSalon "github.com/BruksfildServices01/uniease-api/internal/usecase/salon"
)

type Deps struct {
	Config    *config.Config
	Stores    *app.Stores
	Audit     audit.Sink
	Retention ucFood.Retention
	Notifier  notify.Notifier
	Limiter   *middleware.RateLimiter
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	s := d.Stores

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(gin.Recovery())
	r.Use(logging.RequestLogger())
	r.Use(metrics.Middleware())
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// USE CASES
	// ======================================================
	tokens := auth.NewTokens(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)
	authenticate := ucIdentity.NewAuthenticate(s.Users, tokens)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		ucIdentity.NewRegister(s.Users, tokens, cfg.VerifyEmailDomain),
		ucIdentity.NewLogin(s.Users, tokens),
		ucIdentity.NewMe(s.Users),
	)

	salonHandler := handlers.NewSalonHandler(
		ucSalon.NewListAvailableSlots(s.Salon),
		ucSalon.NewCreateBooking(s.Salon, d.Audit),
		ucSalon.NewCancelBooking(s.Salon, d.Audit),
		ucSalon.NewUpdateBookingStatus(s.Salon, d.Audit),
		ucSalon.NewListBookings(s.Salon),
		ucSalon.NewBookingStats(s.Salon, cfg.CampusTimezone),
	)

	foodHandler := handlers.NewFoodHandler(
		ucFood.NewCatalog(s.Food),
		ucFood.NewOrders(s.Food),
		ucFood.NewAddToCart(s.Food, d.Retention),
		ucFood.NewViewCart(s.Food),
		ucFood.NewCheckout(s.Food, d.Audit, d.Retention),
		ucFood.NewConfirmPickup(s.Food, d.Audit),
		ucFood.NewSetOrderStatus(s.Food, d.Audit),
	)

	laundryHandler := handlers.NewLaundryHandler(
		ucLaundry.NewSubmit(s.Laundry, s.Users, d.Audit),
		ucLaundry.NewList(s.Laundry),
		ucLaundry.NewSetStatus(s.Laundry, d.Notifier, d.Audit),
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(s.Audit)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		limited := api.Group("/auth")
		if d.Limiter != nil {
			limited.Use(d.Limiter.Middleware())
		}
		limited.POST("/register", authHandler.Register)
		limited.POST("/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(authenticate))
		{
			secured.GET("/auth/me", authHandler.Me)

			// ------------------------------
			// SALON
			// ------------------------------
			secured.GET("/salon/available-slots", salonHandler.AvailableSlots)
			secured.POST("/salon/bookings", salonHandler.Create)
			secured.GET("/salon/my-bookings", salonHandler.Mine)
			secured.DELETE("/salon/bookings/:id", salonHandler.Cancel)

			// ------------------------------
			// LAUNDRY
			// ------------------------------
			secured.POST("/laundry", laundryHandler.Submit)
			secured.GET("/laundry/my", laundryHandler.Mine)

			// ------------------------------
			// FOOD
			// ------------------------------
			secured.GET("/food/outlets", foodHandler.Outlets)
			secured.GET("/food/outlets/:outlet_id/menu", foodHandler.Menu)
			secured.GET("/food/outlets/:outlet_id/cart", foodHandler.ViewCart)
			secured.POST("/food/outlets/:outlet_id/cart", foodHandler.AddToCart)
			secured.POST("/food/outlets/:outlet_id/checkout", foodHandler.Checkout)
			secured.GET("/food/orders", foodHandler.MyOrders)
			secured.POST("/food/orders/:order_id/confirm", foodHandler.ConfirmPickup)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/salon/bookings", salonHandler.List)
				admin.GET("/salon/stats", salonHandler.Stats)
				admin.PATCH("/salon/:id/status", salonHandler.UpdateStatus)

				admin.GET("/laundry/laundries", laundryHandler.All)
				admin.PATCH("/laundry/laundries/:id", laundryHandler.SetStatus)

				admin.GET("/food/my-outlet", foodHandler.MyOutlet)
				admin.GET("/food/:outlet_id/orders", foodHandler.OutletOrders)
				admin.GET("/food/:outlet_id/orders/:order_id", foodHandler.OutletOrder)
				admin.PATCH("/food/:outlet_id/orders/:order_id", foodHandler.SetOrderStatus)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
