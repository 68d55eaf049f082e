package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeDeleter struct {
	calls atomic.Int32
	err   error
}

func (f *fakeDeleter) DeleteExpired(context.Context, time.Time) (int64, error) {
	f.calls.Add(1)
	return 2, f.err
}

type fakePruner struct {
	cutoff time.Time
}

func (f *fakePruner) PruneNotifications(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return 1, nil
}

func TestScheduler_RunsAndStops(t *testing.T) {
	del := &fakeDeleter{}
	s := NewScheduler(zap.NewNop(), RecoveryCleanupJob(del, zap.NewNop(), 10*time.Millisecond))
	s.Start()

	deadline := time.Now().Add(2 * time.Second)
	for del.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	s.Stop()
	s.Stop()

	got := del.calls.Load()
	if got < 2 {
		t.Fatalf("job ran %d times, want at least 2", got)
	}
	time.Sleep(30 * time.Millisecond)
	if after := del.calls.Load(); after != got {
		t.Errorf("job kept running after Stop: %d -> %d", got, after)
	}
}

func TestScheduler_SkipsDisabledJobs(t *testing.T) {
	s := NewScheduler(zap.NewNop(),
		Job{Name: "no-interval", Run: func(context.Context) error { return nil }},
		Job{Name: "no-func", Interval: time.Second},
	)
	if len(s.jobs) != 0 {
		t.Errorf("expected disabled jobs to be skipped, got %d", len(s.jobs))
	}
	s.Start()
	s.Stop()
}

func TestScheduler_LogsFailures(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	s := NewScheduler(zap.New(core))
	s.runOnce(RecoveryCleanupJob(&fakeDeleter{err: errors.New("boom")}, zap.NewNop(), time.Minute))

	if logs.FilterMessage("background job failed").Len() != 1 {
		t.Errorf("expected one failure log, got %v", logs.All())
	}
}

func TestNotificationPruneJob_Cutoff(t *testing.T) {
	p := &fakePruner{}
	job := NotificationPruneJob(p, zap.NewNop(), time.Hour, 24*time.Hour)

	before := time.Now().UTC().Add(-24 * time.Hour)
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	after := time.Now().UTC().Add(-24 * time.Hour)

	if p.cutoff.Before(before) || p.cutoff.After(after) {
		t.Errorf("cutoff %v not within [%v, %v]", p.cutoff, before, after)
	}
}
