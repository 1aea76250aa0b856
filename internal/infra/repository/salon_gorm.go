package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/uniease-api/internal/domain/salon"
	"github.com/BruksfildServices01/uniease-api/internal/models"
	"github.com/BruksfildServices01/uniease-api/internal/timezone"
)

type SalonGormRepository struct {
	db *gorm.DB
}

func NewSalonGormRepository(db *gorm.DB) *SalonGormRepository {
	return &SalonGormRepository{db: db}
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (r *SalonGormRepository) InsertSlotsIfAbsent(
	ctx context.Context,
	_ time.Time,
	slots []models.SalonSlot,
) (int, error) {
	if len(slots) == 0 {
		return 0, nil
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "time"}},
			DoNothing: true,
		}).
		Create(&slots)

	return int(res.RowsAffected), res.Error
}

func (r *SalonGormRepository) ListSlots(
	ctx context.Context,
	day time.Time,
	onlyAvailable bool,
) ([]models.SalonSlot, error) {

	q := r.db.WithContext(ctx).Where("date = ?", timezone.DayUTC(day))
	if onlyAvailable {
		q = q.Where("is_available = ?", true)
	}

	var slots []models.SalonSlot
	if err := q.Order("time ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SalonGormRepository) ReleaseAllSlots(ctx context.Context, day time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.SalonSlot{}).
		Where("date = ? AND is_available = ?", timezone.DayUTC(day), false).
		Updates(map[string]any{
			"is_available": true,
			"updated_at":   time.Now().UTC(),
		})

	return res.RowsAffected, res.Error
}

// --------------------------------------------------
// Booking (create / claim)
// --------------------------------------------------

func (r *SalonGormRepository) ClaimSlotAndCreateBooking(
	ctx context.Context,
	b *models.SalonBooking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.SalonSlot{}).
			Where("date = ? AND time = ? AND is_available = ?", b.Date, b.Time, true).
			Updates(map[string]any{
				"is_available": false,
				"updated_at":   b.BookedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return salon.ErrSlotUnavailable
		}

		return tx.Create(b).Error
	})
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *SalonGormRepository) GetBooking(ctx context.Context, id string) (*models.SalonBooking, error) {
	var b models.SalonBooking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, mapNotFound(err, salon.ErrNotFound)
	}
	return &b, nil
}

func (r *SalonGormRepository) TransitionBooking(
	ctx context.Context,
	t salon.Transition,
) (*models.SalonBooking, error) {

	var b models.SalonBooking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", t.BookingID).
			First(&b).Error; err != nil {
			return mapNotFound(err, salon.ErrNotFound)
		}

		prev := salon.Status(b.Status)
		if !salon.StatusAllowed(prev, t.From) {
			return salon.ErrStateChanged
		}

		switch salon.EffectOf(prev, t.To) {
		case salon.SlotClaim:
			res := tx.Model(&models.SalonSlot{}).
				Where("date = ? AND time = ? AND is_available = ?", b.Date, b.Time, true).
				Updates(map[string]any{"is_available": false, "updated_at": t.At})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return salon.ErrSlotUnavailable
			}
		case salon.SlotRelease:
			if err := tx.Model(&models.SalonSlot{}).
				Where("date = ? AND time = ?", b.Date, b.Time).
				Updates(map[string]any{"is_available": true, "updated_at": t.At}).Error; err != nil {
				return err
			}
		}

		salon.ApplyTransition(&b, t.To, t.At)

		return tx.Model(&models.SalonBooking{}).
			Where("id = ?", b.ID).
			Updates(map[string]any{
				"status":       b.Status,
				"cancelled_at": b.CancelledAt,
				"updated_at":   b.UpdatedAt,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

func (r *SalonGormRepository) ListBookings(
	ctx context.Context,
	f salon.BookingFilter,
) ([]models.SalonBooking, error) {

	q := r.db.WithContext(ctx).Model(&models.SalonBooking{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.Date != nil {
		q = q.Where("date = ?", timezone.DayUTC(*f.Date))
	}

	var out []models.SalonBooking
	if err := q.Order("date ASC").Order("time ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SalonGormRepository) CountByStatus(ctx context.Context) (map[salon.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}

	if err := r.db.WithContext(ctx).
		Model(&models.SalonBooking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[salon.Status]int64, len(rows))
	for _, row := range rows {
		out[salon.Status(row.Status)] = row.Count
	}
	return out, nil
}

func (r *SalonGormRepository) CountOnDay(ctx context.Context, day time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.SalonBooking{}).
		Where("date = ?", timezone.DayUTC(day)).
		Count(&n).Error
	return n, err
}

var _ salon.Repository = (*SalonGormRepository)(nil)
