package salon

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/uniease-api/internal/audit"
	domain "github.com/BruksfildServices01/uniease-api/internal/domain/salon"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/infra/memstore"
)

var june1 = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

type fixture struct {
	repo     *memstore.SalonStore
	generate *GenerateDailySlots
	list     *ListAvailableSlots
	create   *CreateBooking
	cancel   *CancelBooking
	update   *UpdateBookingStatus
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := memstore.NewSalonStore()
	f := &fixture{
		repo:     repo,
		generate: NewGenerateDailySlots(repo, domain.DefaultTimes),
		list:     NewListAvailableSlots(repo),
		create:   NewCreateBooking(repo, audit.Discard{}),
		cancel:   NewCancelBooking(repo, audit.Discard{}),
		update:   NewUpdateBookingStatus(repo, audit.Discard{}),
	}
	_, err := f.generate.Execute(context.Background(), june1)
	require.NoError(t, err)
	return f
}

func (f *fixture) book(userID, clock string) error {
	_, err := f.create.Execute(context.Background(), CreateBookingInput{UserID: userID, Date: "2024-06-01", Time: clock})
	return err
}

func TestGenerateDailySlotsIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	n, err := f.generate.Execute(ctx, june1.Add(13*time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)

	slots, err := f.repo.ListSlots(ctx, june1, false)
	require.NoError(t, err)
	assert.Len(t, slots, len(domain.DefaultTimes))
}

func TestListAvailableSlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	times, err := f.list.Execute(ctx, "2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTimes, times)

	times, err = f.list.Execute(ctx, "2030-01-01")
	require.NoError(t, err)
	assert.Empty(t, times)

	_, err = f.list.Execute(ctx, "June 1st")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))
}

func TestBookCancelRebookScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.create.Execute(ctx, CreateBookingInput{UserID: "A", Date: "2024-06-01", Time: "09:00"})
	require.NoError(t, err)
	assert.Equal(t, "Pending", a.Status)

	times, _ := f.list.Execute(ctx, "2024-06-01")
	assert.NotContains(t, times, "09:00")

	err = f.book("B", "09:00")
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))

	_, err = f.cancel.Execute(ctx, "A", a.ID)
	require.NoError(t, err)

	times, _ = f.list.Execute(ctx, "2024-06-01")
	assert.Contains(t, times, "09:00")

	assert.NoError(t, f.book("B", "09:00"))
}

func TestConcurrentBookingsOnlyOneWins(t *testing.T) {
	f := newFixture(t)

	const racers = 32
	var wg sync.WaitGroup
	errs := make([]error, racers)
	start := make(chan struct{})

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			errs[i] = f.book(string(rune('a'+i)), "10:00")
		}(i)
	}
	close(start)
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
	}
	assert.Equal(t, 1, wins)

	bookings, err := f.repo.ListBookings(context.Background(), domain.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestBookingUnknownSlotIsConflict(t *testing.T) {
	f := newFixture(t)
	err := f.book("A", "12:30")
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))

	err = f.book("A", "9am")
	assert.True(t, httperr.IsBusiness(err, "invalid_time"))
}

func TestCancelRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, CreateBookingInput{UserID: "A", Date: "2024-06-01", Time: "11:00"})
	require.NoError(t, err)

	_, err = f.cancel.Execute(ctx, "B", b.ID)
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))

	_, err = f.cancel.Execute(ctx, "A", "missing")
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	_, err = f.update.Execute(ctx, "admin", b.ID, "Completed")
	require.NoError(t, err)

	_, err = f.cancel.Execute(ctx, "A", b.ID)
	assert.True(t, httperr.IsBusiness(err, "booking_not_cancellable"))

	// the completed booking still holds its slot
	times, _ := f.list.Execute(ctx, "2024-06-01")
	assert.NotContains(t, times, "11:00")
}

func TestCancelConfirmedReleasesSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, CreateBookingInput{UserID: "A", Date: "2024-06-01", Time: "14:00"})
	require.NoError(t, err)
	_, err = f.update.Execute(ctx, "admin", b.ID, "Confirmed")
	require.NoError(t, err)

	cancelled, err := f.cancel.Execute(ctx, "A", b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	times, _ := f.list.Execute(ctx, "2024-06-01")
	assert.Contains(t, times, "14:00")

	_, err = f.cancel.Execute(ctx, "A", b.ID)
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
}

func TestAdminStatusIsPermissive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.create.Execute(ctx, CreateBookingInput{UserID: "A", Date: "2024-06-01", Time: "15:00"})
	require.NoError(t, err)

	for _, st := range []string{"Completed", "Pending", "Cancelled", "Confirmed"} {
		got, err := f.update.Execute(ctx, "admin", b.ID, st)
		require.NoError(t, err, st)
		assert.Equal(t, st, got.Status)
	}

	_, err = f.update.Execute(ctx, "admin", b.ID, "Archived")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	_, err = f.update.Execute(ctx, "admin", "missing", "Pending")
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestAdminReopenLosesSlotToNewBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.create.Execute(ctx, CreateBookingInput{UserID: "A", Date: "2024-06-01", Time: "16:00"})
	require.NoError(t, err)
	_, err = f.update.Execute(ctx, "admin", a.ID, "Cancelled")
	require.NoError(t, err)

	require.NoError(t, f.book("B", "16:00"))

	_, err = f.update.Execute(ctx, "admin", a.ID, "Confirmed")
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))

	got, err := f.repo.GetBooking(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", got.Status)
}

func TestMaintainCalendar(t *testing.T) {
	repo := memstore.NewSalonStore()
	ctx := context.Background()
	generate := NewGenerateDailySlots(repo, []string{"09:00", "10:00"})
	create := NewCreateBooking(repo, audit.Discard{})

	_, err := generate.Execute(ctx, june1)
	require.NoError(t, err)
	_, err = create.Execute(ctx, CreateBookingInput{UserID: "A", Date: "2024-06-01", Time: "09:00"})
	require.NoError(t, err)

	today := june1.AddDate(0, 0, 1)
	require.NoError(t, NewMaintainCalendar(repo, generate, 7).Execute(ctx, today))

	yesterday, err := repo.ListSlots(ctx, june1, true)
	require.NoError(t, err)
	assert.Len(t, yesterday, 2)

	ahead, err := repo.ListSlots(ctx, today.AddDate(0, 0, 7), false)
	require.NoError(t, err)
	assert.Len(t, ahead, 2)
}

type releaseFailingRepo struct {
	*memstore.SalonStore
	err error
}

func (r releaseFailingRepo) ReleaseAllSlots(context.Context, time.Time) (int64, error) {
	return 0, r.err
}

func TestMaintainCalendarKeepsGeneratingWhenReleaseFails(t *testing.T) {
	ctx := context.Background()
	releaseErr := errors.New("db down")
	repo := releaseFailingRepo{SalonStore: memstore.NewSalonStore(), err: releaseErr}
	generate := NewGenerateDailySlots(repo, []string{"09:00", "10:00"})

	today := june1.AddDate(0, 0, 1)
	err := NewMaintainCalendar(repo, generate, 7).Execute(ctx, today)
	assert.ErrorIs(t, err, releaseErr)

	ahead, err := repo.ListSlots(ctx, today.AddDate(0, 0, 7), false)
	require.NoError(t, err)
	assert.Len(t, ahead, 2)
}

func TestEnsureWindow(t *testing.T) {
	repo := memstore.NewSalonStore()
	ctx := context.Background()
	ensure := NewEnsureWindow(NewGenerateDailySlots(repo, []string{"09:00"}), 7)

	require.NoError(t, ensure.Execute(ctx, june1))
	require.NoError(t, ensure.Execute(ctx, june1))

	for i := 0; i <= 7; i++ {
		slots, err := repo.ListSlots(ctx, june1.AddDate(0, 0, i), false)
		require.NoError(t, err)
		assert.Len(t, slots, 1, i)
	}
}

func TestListAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.book("A", "10:00"))
	require.NoError(t, f.book("A", "09:00"))
	require.NoError(t, f.book("B", "11:00"))

	lb := NewListBookings(f.repo)
	mine, err := lb.Mine(ctx, "A")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "09:00", mine[0].Time)

	all, err := lb.All(ctx, "Pending", "2024-06-01")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = lb.All(ctx, "", "bad")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	stats, err := NewBookingStats(f.repo, "UTC").Execute(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, stats.ByStatus["Pending"])
	assert.EqualValues(t, 0, stats.ByStatus["Cancelled"])
	assert.Len(t, stats.ByStatus, 4)
}
