package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/uniease-api/internal/lock"
	"github.com/BruksfildServices01/uniease-api/internal/metrics"
)

type Job struct {
	Name    string
	Spec    string
	Timeout time.Duration
	Run     func(ctx context.Context) error

	// Local jobs run in every process and take no lock.
	Local bool
}

type Scheduler struct {
	cron   *cron.Cron
	locker lock.Locker
}

func New(locker lock.Locker, loc *time.Location) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(loc)),
		locker: locker,
	}
}

func (s *Scheduler) Add(job Job) error {
	_, err := s.cron.AddFunc(job.Spec, func() { s.RunOnce(job) })
	return err
}

// RunOnce runs job, under its lock unless it is Local. A run already in progress
// elsewhere is skipped; failures are logged and never propagate to other jobs.
func (s *Scheduler) RunOnce(job Job) {
	timeout := job.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	entry := logrus.WithField("job", job.Name)

	if !job.Local {
		release, err := s.locker.Acquire(ctx, "uniease:job:"+job.Name, timeout)
		if errors.Is(err, lock.ErrHeld) {
			entry.Debug("job already running elsewhere, skipping")
			return
		}
		if err != nil {
			entry.WithError(err).Warn("could not acquire job lock, skipping")
			return
		}
		defer release()
	}

	start := time.Now()
	err := job.Run(ctx)
	metrics.RecordJob(job.Name, time.Since(start), err == nil)

	if err != nil {
		entry.WithError(err).Error("maintenance job failed")
		return
	}
	entry.WithField("took", time.Since(start).String()).Info("maintenance job finished")
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
