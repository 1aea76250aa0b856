package laundry

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/uniease-api/internal/audit"
	domain "github.com/BruksfildServices01/uniease-api/internal/domain/laundry"
	"github.com/BruksfildServices01/uniease-api/internal/dto"
	"github.com/BruksfildServices01/uniease-api/internal/httperr"
	"github.com/BruksfildServices01/uniease-api/internal/metrics"
	"github.com/BruksfildServices01/uniease-api/internal/models"
	"github.com/BruksfildServices01/uniease-api/internal/notify"
)

const notifyTimeout = 10 * time.Second

type SetStatus struct {
	repo     domain.Repository
	notifier notify.Notifier
	audit    audit.Sink
	now      func() time.Time
}

func NewSetStatus(repo domain.Repository, notifier notify.Notifier, sink audit.Sink) *SetStatus {
	return &SetStatus{
		repo:     repo,
		notifier: notifier,
		audit:    sink,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Execute never fails because of the notification; its outcome is reported next
// to the updated request.
func (uc *SetStatus) Execute(ctx context.Context, adminID, requestID, status string) (*dto.LaundryStatusDTO, error) {
	next, err := domain.ParseAdminStatus(status)
	if err != nil {
		return nil, err
	}

	current, err := uc.repo.Get(ctx, requestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFoundErr("laundry_request_not_found")
		}
		return nil, err
	}

	now := uc.now()
	updated, err := uc.repo.UpdateStatus(ctx, requestID, next, domain.CompletedAtFor(current, next, now), now)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.NotFoundErr("laundry_request_not_found")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  adminID,
		Action:   "laundry_status_changed",
		Entity:   "laundry_request",
		EntityID: updated.ID,
		Metadata: map[string]string{"from": current.Status, "status": updated.Status},
	})

	out := &dto.LaundryStatusDTO{
		Laundry:      updated,
		Notification: dto.NotificationDTO{Message: "Status updated without notification"},
	}
	if next != domain.StatusCompleted {
		return out, nil
	}
	if domain.Status(current.Status) == domain.StatusCompleted {
		out.Notification.Message = "Request already completed - notification skipped"
		return out, nil
	}

	out.Notification = uc.notify(ctx, updated)
	return out, nil
}

func (uc *SetStatus) notify(ctx context.Context, req *models.LaundryRequest) dto.NotificationDTO {
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()

	err := uc.notifier.NotifyCompletion(nctx, req)
	metrics.RecordNotification(err == nil)

	switch {
	case err == nil:
		return dto.NotificationDTO{Sent: true, Message: "Notification sent successfully"}
	case errors.Is(err, notify.ErrDisabled):
		logrus.WithField("request_id", req.ID).Warn("no notification channel configured")
		return dto.NotificationDTO{Message: "Notifications not configured - notification skipped"}
	default:
		logrus.WithError(err).WithField("request_id", req.ID).Warn("completion notification failed")
		return dto.NotificationDTO{Message: "Notification failed: " + err.Error()}
	}
}
