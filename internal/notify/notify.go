// Package notify tells users their laundry is ready. Channels are independent and
// a failing channel never fails the status change that triggered it.
package notify

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/uniease-api/internal/models"
)

var ErrDisabled = errors.New("notify: no channel configured")

type Notifier interface {
	NotifyCompletion(ctx context.Context, req *models.LaundryRequest) error
}

// Multi fans out to every channel and joins their errors.
type Multi []Notifier

func (m Multi) NotifyCompletion(ctx context.Context, req *models.LaundryRequest) error {
	if len(m) == 0 {
		return ErrDisabled
	}

	var errs []error
	for _, n := range m {
		if err := n.NotifyCompletion(ctx, req); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
