package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/uniease-api/internal/app"
	"github.com/BruksfildServices01/uniease-api/internal/audit"
	"github.com/BruksfildServices01/uniease-api/internal/config"
	"github.com/BruksfildServices01/uniease-api/internal/lock"
	"github.com/BruksfildServices01/uniease-api/internal/logging"
	"github.com/BruksfildServices01/uniease-api/internal/maintenance"
	"github.com/BruksfildServices01/uniease-api/internal/middleware"
	"github.com/BruksfildServices01/uniease-api/internal/notify"
	"github.com/BruksfildServices01/uniease-api/internal/routes"
	"github.com/BruksfildServices01/uniease-api/internal/scheduler"
	"github.com/BruksfildServices01/uniease-api/internal/timezone"
	ucIdentity "github.com/BruksfildServices01/uniease-api/internal/usecase/identity"
	ucSalon "github.com/BruksfildServices01/uniease-api/internal/usecase/salon"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := app.OpenStores(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open stores")
	}
	defer stores.Close()

	// ======================================================
	// STARTUP
	// ======================================================
	if _, err := ucIdentity.NewBootstrapAdmins(stores.Users).Execute(ctx, cfg.Admins()); err != nil {
		logrus.WithError(err).Fatal("failed to bootstrap admins")
	}

	loc := timezone.Location(cfg.CampusTimezone)
	generate := ucSalon.NewGenerateDailySlots(stores.Salon, cfg.SlotTimes)
	if err := ucSalon.NewEnsureWindow(generate, cfg.SlotWindowDays).Execute(ctx, timezone.TodayIn(cfg.CampusTimezone)); err != nil {
		logrus.WithError(err).Error("initial slot window incomplete")
	}

	// ======================================================
	// BACKGROUND WORK
	// ======================================================
	dispatcher := audit.NewDispatcher(audit.New(stores.Audit))
	defer dispatcher.Close()

	pruner := maintenance.NewPruner(stores.Food, cfg.OrderRetention)
	defer pruner.Close()

	locker, closeLocker := lock.Open(cfg.RedisURL)
	defer func() {
		if err := closeLocker(); err != nil {
			logrus.WithError(err).Warn("failed to close lock client")
		}
	}()

	sched := scheduler.New(locker, loc)
	calendar := ucSalon.NewMaintainCalendar(stores.Salon, generate, cfg.SlotWindowDays)
	mustAdd(sched, scheduler.Job{
		Name: "salon_calendar",
		Spec: cfg.CalendarCron,
		Run: func(ctx context.Context) error {
			return calendar.Execute(ctx, timezone.TodayIn(cfg.CampusTimezone))
		},
	})
	mustAdd(sched, scheduler.Job{
		Name:    "order_retention",
		Spec:    cfg.RetentionCron,
		Timeout: time.Minute,
		Run:     pruner.Run,
	})

	limiter := middleware.NewRateLimiter(cfg.LoginRatePerMin)
	mustAdd(sched, scheduler.Job{
		Name:  "rate_limiter_cleanup",
		Spec:  "@every 5m",
		Local: true,
		Run: func(context.Context) error {
			limiter.Cleanup()
			return nil
		},
	})

	sched.Start()
	defer sched.Stop()

	// ======================================================
	// HTTP
	// ======================================================
	r := gin.New()
	routes.RegisterRoutes(r, routes.Deps{
		Config:    cfg,
		Stores:    stores,
		Audit:     dispatcher,
		Retention: pruner,
		Notifier:  newNotifier(cfg),
		Limiter:   limiter,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithFields(logrus.Fields{"addr": cfg.Addr(), "store": cfg.StoreDriver}).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}

func mustAdd(s *scheduler.Scheduler, job scheduler.Job) {
	if err := s.Add(job); err != nil {
		logrus.WithError(err).WithField("job", job.Name).Fatal("invalid cron spec")
	}
}

func newNotifier(cfg *config.Config) notify.Notifier {
	var channels notify.Multi

	if cfg.EmailUser != "" && cfg.EmailPass != "" {
		channels = append(channels, notify.NewEmail(notify.EmailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.EmailUser,
			Password: cfg.EmailPass,
		}))
	}

	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioPhoneNumber != "" {
		channels = append(channels, notify.NewSMS(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber))
	}

	if len(channels) == 0 {
		logrus.Warn("no notification channel configured")
	}
	return channels
}
