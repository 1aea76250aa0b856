package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/uniease-api/internal/lock"
)

func TestRunOnceSkipsWhenLockHeld(t *testing.T) {
	locker := lock.NewLocal()
	s := New(locker, time.UTC)

	release, err := locker.Acquire(context.Background(), "uniease:job:calendar", time.Minute)
	assert.NoError(t, err)
	defer release()

	ran := false
	s.RunOnce(Job{Name: "calendar", Run: func(context.Context) error { ran = true; return nil }})
	assert.False(t, ran)
}

func TestRunOnceSwallowsFailures(t *testing.T) {
	s := New(lock.NewLocal(), time.UTC)

	calls := 0
	job := Job{Name: "retention", Run: func(context.Context) error { calls++; return errors.New("db down") }}
	s.RunOnce(job)
	s.RunOnce(job)

	assert.Equal(t, 2, calls)
}

func TestAddRejectsBadSpec(t *testing.T) {
	s := New(lock.NewLocal(), time.UTC)
	assert.Error(t, s.Add(Job{Name: "x", Spec: "not a spec", Run: func(context.Context) error { return nil }}))
	assert.NoError(t, s.Add(Job{Name: "calendar", Spec: "5 0 * * *", Run: func(context.Context) error { return nil }}))
}

func TestRunOnceLocalIgnoresLock(t *testing.T) {
	locker := lock.NewLocal()
	s := New(locker, time.UTC)

	release, err := locker.Acquire(context.Background(), "uniease:job:cleanup", time.Minute)
	assert.NoError(t, err)
	defer release()

	ran := false
	s.RunOnce(Job{Name: "cleanup", Local: true, Run: func(context.Context) error { ran = true; return nil }})
	assert.True(t, ran)
}
