package salon

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	domain "github.com/BruksfildServices01/uniease-api/internal/domain/salon"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/timezone"
)

// ======================================================
// GENERATE
// ======================================================

type GenerateDailySlots struct {
	repo  domain.Repository
	times []string
}

func NewGenerateDailySlots(repo domain.Repository, times []string) *GenerateDailySlots {
	if len(times) == 0 {
		times = domain.DefaultTimes
	}
	return &GenerateDailySlots{repo: repo, times: times}
}

// Execute is idempotent: existing (date, time) slots are left untouched.
func (uc *GenerateDailySlots) Execute(ctx context.Context, day time.Time) (int, error) {
	d := timezone.DayUTC(day)
	slots := domain.BuildDaySlots(d, uc.times, time.Now().UTC())

	n, err := uc.repo.InsertSlotsIfAbsent(ctx, d, slots)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		logrus.WithFields(logrus.Fields{
			"date":  d.Format(timezone.DateLayout),
			"slots": n,
		}).Info("generated salon slots")
	}
	return n, nil
}

// ======================================================
// WINDOW
// ======================================================

type EnsureWindow struct {
	generate *GenerateDailySlots
	days     int
}

func NewEnsureWindow(generate *GenerateDailySlots, days int) *EnsureWindow {
	return &EnsureWindow{generate: generate, days: days}
}

// Execute makes sure today and the next `days` days all have slots.
func (uc *EnsureWindow) Execute(ctx context.Context, today time.Time) error {
	for i := 0; i <= uc.days; i++ {
		if _, err := uc.generate.Execute(ctx, today.AddDate(0, 0, i)); err != nil {
			return err
		}
	}
	return nil
}

// ======================================================
// DAILY MAINTENANCE
// ======================================================

type MaintainCalendar struct {
	repo     domain.Repository
	generate *GenerateDailySlots
	days     int
}

func NewMaintainCalendar(repo domain.Repository, generate *GenerateDailySlots, days int) *MaintainCalendar {
	return &MaintainCalendar{repo: repo, generate: generate, days: days}
}

// Execute reopens yesterday's slots and extends the window by one day. A failing
// step is logged and does not stop the other; the first error is returned.
func (uc *MaintainCalendar) Execute(ctx context.Context, today time.Time) error {
	var firstErr error

	yesterday := timezone.DayUTC(today).AddDate(0, 0, -1)
	released, err := uc.repo.ReleaseAllSlots(ctx, yesterday)
	if err != nil {
		logrus.WithError(err).Error("failed to release yesterday's slots")
		firstErr = err
	} else {
		logrus.WithField("released", released).Info("released yesterday's slots")
	}

	ahead := timezone.DayUTC(today).AddDate(0, 0, uc.days)
	if _, err := uc.generate.Execute(ctx, ahead); err != nil {
		logrus.WithError(err).Error("failed to generate slots for new window day")
		if firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// ======================================================
// AVAILABILITY
// ======================================================

type ListAvailableSlots struct {
	repo domain.Repository
}

func NewListAvailableSlots(repo domain.Repository) *ListAvailableSlots {
	return &ListAvailableSlots{repo: repo}
}

// Execute returns the free times on date in order. A date with no slots yields an
// empty list, not an error.
func (uc *ListAvailableSlots) Execute(ctx context.Context, date string) ([]string, error) {
	day, err := timezone.ParseDay(date)
	if err != nil {
		return nil, httperr.Validation("invalid_date")
	}

	slots, err := uc.repo.ListSlots(ctx, day, true)
	if err != nil {
		return nil, err
	}

	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Time)
	}
	return times, nil
}
