package maintenance

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/uniease-api/internal/metrics"
)

type OrderPruner interface {
	PruneOrders(ctx context.Context, keep int) (int64, error)
}

// Pruner enforces order retention off the request path. Triggers that arrive
// while a run is pending collapse into that run.
type Pruner struct {
	repo OrderPruner
	keep int

	mu     sync.RWMutex
	closed bool
	kick   chan struct{}
	done   chan struct{}
	once   sync.Once
}

func NewPruner(repo OrderPruner, keep int) *Pruner {
	p := &Pruner{
		repo: repo,
		keep: keep,
		kick: make(chan struct{}, 1),
		done: make(chan struct{}),
	}

	go p.worker()
	return p
}

func (p *Pruner) worker() {
	defer close(p.done)
	for range p.kick {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := p.Run(ctx); err != nil {
			logrus.WithError(err).Warn("order retention failed")
		}
		cancel()
	}
}

// Trigger never blocks. Triggers after Close are ignored.
func (p *Pruner) Trigger() {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}

	select {
	case p.kick <- struct{}{}:
	default:
	}
}

func (p *Pruner) Run(ctx context.Context) error {
	n, err := p.repo.PruneOrders(ctx, p.keep)
	if err != nil {
		return err
	}

	metrics.RecordPruned(n)
	if n > 0 {
		logrus.WithFields(logrus.Fields{"deleted": n, "keep": p.keep}).Info("pruned old orders")
	}
	return nil
}

// Close drains a pending run and stops the worker.
func (p *Pruner) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.kick)
		p.mu.Unlock()
	})
	<-p.done
}
