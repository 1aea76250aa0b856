package audit

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Event struct {
	ActorID  string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

// Sink accepts audit events without blocking the caller.
type Sink interface {
	Dispatch(ev Event)
}

type Dispatcher struct {
	logger *Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Event
	done   chan struct{}
	once   sync.Once
}

func NewDispatcher(logger *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := d.logger.Log(ctx, ev); err != nil {
			logrus.WithError(err).WithField("action", ev.Action).Warn("audit write failed")
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		logrus.WithField("action", ev.Action).Warn("audit dispatcher closed, dropping event")
		return
	}

	select {
	case d.queue <- ev:
	default:
		// a full queue must never fail the request that produced the event
		logrus.WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	d.once.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
	<-d.done
}

// Discard is a Sink that drops everything.
type Discard struct{}

func (Discard) Dispatch(Event) {}
