package laundry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/uniease-api/internal/audit"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/infra/memstore"
	"github.com/BruksfildServices01/uniease-api/internal/models"
	"github.com/BruksfildServices01/uniease-api/internal/notify"
)

type fakeNotifier struct {
	err  error
	sent []string
}

func (f *fakeNotifier) NotifyCompletion(_ context.Context, req *models.LaundryRequest) error {
	f.sent = append(f.sent, req.Email)
	return f.err
}

func seedUser(t *testing.T, users *memstore.UserStore) *models.User {
	t.Helper()
	u := &models.User{ID: "u1", Name: "Asha", Email: "asha@uni.edu", Phone: "+910000000000", Role: "user"}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

var shirts = []models.LaundryItem{{Name: "Shirt", Quantity: 3, Stains: []string{"ink"}}}

func TestSubmitSnapshotsContact(t *testing.T) {
	repo, users := memstore.NewLaundryStore(), memstore.NewUserStore()
	u := seedUser(t, users)
	ctx := context.Background()

	req, err := NewSubmit(repo, users, audit.Discard{}).Execute(ctx, SubmitInput{
		UserID: u.ID, Type: "dry-clean", Items: shirts,
	})
	require.NoError(t, err)
	assert.Equal(t, "asha@uni.edu", req.Email)
	assert.Equal(t, u.Phone, req.Phone)
	assert.Equal(t, "pending", req.Status)
	assert.Equal(t, "pending", req.PaymentStatus)
	assert.Nil(t, req.CompletedAt)

	mine, err := NewList(repo).Mine(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestSubmitValidation(t *testing.T) {
	repo, users := memstore.NewLaundryStore(), memstore.NewUserStore()
	u := seedUser(t, users)
	uc := NewSubmit(repo, users, audit.Discard{})
	ctx := context.Background()

	_, err := uc.Execute(ctx, SubmitInput{UserID: u.ID, Type: "steam", Items: shirts})
	assert.True(t, httperr.IsBusiness(err, "invalid_laundry_type"))

	_, err = uc.Execute(ctx, SubmitInput{UserID: u.ID, Type: "washing"})
	assert.True(t, httperr.IsBusiness(err, "invalid_items"))

	_, err = uc.Execute(ctx, SubmitInput{UserID: "ghost", Type: "washing", Items: shirts})
	assert.True(t, httperr.IsBusiness(err, "user_not_found"))
}

func TestSetStatusCompleteAndReopen(t *testing.T) {
	repo, users := memstore.NewLaundryStore(), memstore.NewUserStore()
	u := seedUser(t, users)
	ctx := context.Background()

	req, err := NewSubmit(repo, users, audit.Discard{}).Execute(ctx, SubmitInput{UserID: u.ID, Type: "ironing", Items: shirts})
	require.NoError(t, err)

	n := &fakeNotifier{}
	uc := NewSetStatus(repo, n, audit.Discard{})
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return at }

	out, err := uc.Execute(ctx, "admin", req.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", out.Laundry.Status)
	require.NotNil(t, out.Laundry.CompletedAt)
	assert.Equal(t, at, *out.Laundry.CompletedAt)
	assert.True(t, out.Notification.Sent)
	assert.Equal(t, []string{"asha@uni.edu"}, n.sent)

	out, err = uc.Execute(ctx, "admin", req.ID, "pending")
	require.NoError(t, err)
	assert.Nil(t, out.Laundry.CompletedAt)
	assert.False(t, out.Notification.Sent)
	assert.Len(t, n.sent, 1)
}

func TestSetStatusNotificationFailureIsSoft(t *testing.T) {
	repo, users := memstore.NewLaundryStore(), memstore.NewUserStore()
	u := seedUser(t, users)
	ctx := context.Background()

	req, err := NewSubmit(repo, users, audit.Discard{}).Execute(ctx, SubmitInput{UserID: u.ID, Type: "washing", Items: shirts})
	require.NoError(t, err)

	out, err := NewSetStatus(repo, &fakeNotifier{err: errors.New("smtp down")}, audit.Discard{}).
		Execute(ctx, "admin", req.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", out.Laundry.Status)
	assert.False(t, out.Notification.Sent)
	assert.Contains(t, out.Notification.Message, "smtp down")

	other, err := NewSubmit(repo, users, audit.Discard{}).Execute(ctx, SubmitInput{UserID: u.ID, Type: "washing", Items: shirts})
	require.NoError(t, err)

	out, err = NewSetStatus(repo, notify.Multi{}, audit.Discard{}).Execute(ctx, "admin", other.ID, "completed")
	require.NoError(t, err)
	assert.False(t, out.Notification.Sent)
	assert.Equal(t, "Notifications not configured - notification skipped", out.Notification.Message)
}

func TestSetStatusNotifiesOnlyOnTransitionToCompleted(t *testing.T) {
	repo, users := memstore.NewLaundryStore(), memstore.NewUserStore()
	u := seedUser(t, users)
	ctx := context.Background()

	req, err := NewSubmit(repo, users, audit.Discard{}).Execute(ctx, SubmitInput{UserID: u.ID, Type: "washing", Items: shirts})
	require.NoError(t, err)

	n := &fakeNotifier{}
	uc := NewSetStatus(repo, n, audit.Discard{})

	_, err = uc.Execute(ctx, "admin", req.ID, "completed")
	require.NoError(t, err)

	out, err := uc.Execute(ctx, "admin", req.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", out.Laundry.Status)
	assert.False(t, out.Notification.Sent)
	assert.Contains(t, out.Notification.Message, "already completed")
	assert.Len(t, n.sent, 1)
}

func TestSetStatusRejects(t *testing.T) {
	repo := memstore.NewLaundryStore()
	uc := NewSetStatus(repo, &fakeNotifier{}, audit.Discard{})

	_, err := uc.Execute(context.Background(), "admin", "x", "in-progress")
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	_, err = uc.Execute(context.Background(), "admin", "missing", "completed")
	assert.True(t, httperr.IsBusiness(err, "laundry_request_not_found"))
}
