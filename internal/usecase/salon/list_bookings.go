package salon

import (
	"context"

	domain "github.com/BruksfildServices01/uniease-api/internal/domain/salon"
	"github.com/BruksfildServices01/uniease-api/internal/dto"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/models"
	"github.com/BruksfildServices01/uniease-api/internal/timezone"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) Mine(ctx context.Context, userID string) ([]models.SalonBooking, error) {
	return uc.repo.ListBookings(ctx, domain.BookingFilter{UserID: userID})
}

// All filters by optional status and YYYY-MM-DD date.
func (uc *ListBookings) All(ctx context.Context, status, date string) ([]models.SalonBooking, error) {
	var f domain.BookingFilter

	if status != "" {
		st, err := domain.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		f.Status = st
	}

	if date != "" {
		day, err := timezone.ParseDay(date)
		if err != nil {
			return nil, httperr.Validation("invalid_date")
		}
		f.Date = &day
	}

	return uc.repo.ListBookings(ctx, f)
}

type BookingStats struct {
	repo domain.Repository
	tz   string
}

func NewBookingStats(repo domain.Repository, tz string) *BookingStats {
	return &BookingStats{repo: repo, tz: tz}
}

func (uc *BookingStats) Execute(ctx context.Context) (*dto.BookingStatsDTO, error) {
	counts, err := uc.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	today, err := uc.repo.CountOnDay(ctx, timezone.TodayIn(uc.tz))
	if err != nil {
		return nil, err
	}

	out := &dto.BookingStatsDTO{ByStatus: map[string]int64{}, Today: today}
	for _, st := range domain.AllStatuses {
		out.ByStatus[string(st)] = counts[st]
	}
	return out, nil
}
