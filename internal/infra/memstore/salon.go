// Package memstore holds mutex-guarded in-memory implementations of every
// repository. Each method runs under one lock, which gives the same atomicity the
// database backends get from conditional updates.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/uniease-api/internal/domain/salon"
	"github.com/BruksfildServices01/uniease-api/internal/models"
	"github.com/BruksfildServices01/uniease-api/internal/timezone"
)

type slotKey struct {
	day   int64
	clock string
}

func keyOf(day time.Time, clock string) slotKey {
	return slotKey{day: timezone.DayUTC(day).Unix(), clock: clock}
}

type SalonStore struct {
	mu       sync.Mutex
	slots    map[slotKey]*models.SalonSlot
	bookings map[string]*models.SalonBooking
}

func NewSalonStore() *SalonStore {
	return &SalonStore{
		slots:    map[slotKey]*models.SalonSlot{},
		bookings: map[string]*models.SalonBooking{},
	}
}

// --------------------------------------------------
// Slots
// --------------------------------------------------

func (s *SalonStore) InsertSlotsIfAbsent(
	_ context.Context,
	_ time.Time,
	slots []models.SalonSlot,
) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inserted := 0
	for i := range slots {
		k := keyOf(slots[i].Date, slots[i].Time)
		if _, ok := s.slots[k]; ok {
			continue
		}
		cp := slots[i]
		s.slots[k] = &cp
		inserted++
	}
	return inserted, nil
}

func (s *SalonStore) ListSlots(
	_ context.Context,
	day time.Time,
	onlyAvailable bool,
) ([]models.SalonSlot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := timezone.DayUTC(day).Unix()
	var out []models.SalonSlot
	for k, sl := range s.slots {
		if k.day != d || (onlyAvailable && !sl.IsAvailable) {
			continue
		}
		out = append(out, *sl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

func (s *SalonStore) ReleaseAllSlots(_ context.Context, day time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := timezone.DayUTC(day).Unix()
	var n int64
	for k, sl := range s.slots {
		if k.day == d && !sl.IsAvailable {
			sl.IsAvailable = true
			sl.UpdatedAt = time.Now().UTC()
			n++
		}
	}
	return n, nil
}

// --------------------------------------------------
// Bookings
// --------------------------------------------------

func (s *SalonStore) ClaimSlotAndCreateBooking(_ context.Context, b *models.SalonBooking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sl, ok := s.slots[keyOf(b.Date, b.Time)]
	if !ok || !sl.IsAvailable {
		return salon.ErrSlotUnavailable
	}

	sl.IsAvailable = false
	sl.UpdatedAt = b.BookedAt
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *SalonStore) GetBooking(_ context.Context, id string) (*models.SalonBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, salon.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *SalonStore) TransitionBooking(_ context.Context, t salon.Transition) (*models.SalonBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[t.BookingID]
	if !ok {
		return nil, salon.ErrNotFound
	}
	prev := salon.Status(b.Status)
	if !salon.StatusAllowed(prev, t.From) {
		return nil, salon.ErrStateChanged
	}

	sl := s.slots[keyOf(b.Date, b.Time)]
	switch salon.EffectOf(prev, t.To) {
	case salon.SlotClaim:
		if sl == nil || !sl.IsAvailable {
			return nil, salon.ErrSlotUnavailable
		}
		sl.IsAvailable = false
		sl.UpdatedAt = t.At
	case salon.SlotRelease:
		if sl != nil {
			sl.IsAvailable = true
			sl.UpdatedAt = t.At
		}
	}

	salon.ApplyTransition(b, t.To, t.At)
	cp := *b
	return &cp, nil
}

func (s *SalonStore) ListBookings(_ context.Context, f salon.BookingFilter) ([]models.SalonBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.SalonBooking
	for _, b := range s.bookings {
		if f.UserID != "" && b.UserID != f.UserID {
			continue
		}
		if f.Status != "" && b.Status != string(f.Status) {
			continue
		}
		if f.Date != nil && !b.Date.Equal(timezone.DayUTC(*f.Date)) {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (s *SalonStore) CountByStatus(_ context.Context) (map[salon.Status]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[salon.Status]int64, len(salon.AllStatuses))
	for _, b := range s.bookings {
		out[salon.Status(b.Status)]++
	}
	return out, nil
}

func (s *SalonStore) CountOnDay(_ context.Context, day time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := timezone.DayUTC(day)
	var n int64
	for _, b := range s.bookings {
		if b.Date.Equal(d) {
			n++
		}
	}
	return n, nil
}

var _ salon.Repository = (*SalonStore)(nil)
