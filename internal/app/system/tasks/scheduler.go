// internal/app/system/tasks/scheduler.go
package tasks

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is periodic background work.
type Job struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration // per run; 0 means 30s
	Run      func(ctx context.Context) error
}

// Scheduler runs each Job on its own ticker until Stop.
type Scheduler struct {
	jobs   []Job
	log    *zap.Logger
	stopCh chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// NewScheduler creates a scheduler for jobs. Jobs with a non-positive
// interval are skipped.
func NewScheduler(logger *zap.Logger, jobs ...Job) *Scheduler {
	s := &Scheduler{log: logger, stopCh: make(chan struct{})}
	for _, j := range jobs {
		if j.Interval <= 0 || j.Run == nil {
			logger.Warn("background job disabled", zap.String("job", j.Name))
			continue
		}
		s.jobs = append(s.jobs, j)
	}
	return s
}

// Start launches one goroutine per job.
func (s *Scheduler) Start() {
	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
		s.log.Info("background job started",
			zap.String("job", j.Name),
			zap.Duration("interval", j.Interval))
	}
}

// Stop signals every job to stop and waits for in-flight runs. Safe to
// call more than once.
func (s *Scheduler) Stop() {
	s.once.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		s.log.Info("background jobs stopped")
	})
}

func (s *Scheduler) loop(j Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.runOnce(j)
		}
	}
}

func (s *Scheduler) runOnce(j Job) {
	timeout := j.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := j.Run(ctx); err != nil {
		s.log.Error("background job failed", zap.String("job", j.Name), zap.Error(err))
	}
}
