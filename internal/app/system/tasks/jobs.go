// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ExpiredRecoveryDeleter is implemented by the recovery store.
type ExpiredRecoveryDeleter interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// NotificationPruner is implemented by the user store.
type NotificationPruner interface {
	PruneNotifications(ctx context.Context, cutoff time.Time) (int64, error)
}

// RecoveryCleanupJob removes expired password recovery codes.
// This is a backup for when MongoDB's TTL index cleanup is delayed.
func RecoveryCleanupJob(store ExpiredRecoveryDeleter, logger *zap.Logger, interval time.Duration) Job {
	return Job{
		Name:     "recovery-cleanup",
		Interval: interval,
		Run: func(ctx context.Context) error {
			count, err := store.DeleteExpired(ctx, time.Now().UTC())
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Info("deleted expired recovery codes", zap.Int64("count", count))
			}
			return nil
		},
	}
}

// NotificationPruneJob drops notifications that users marked deleted
// more than retention ago, so user documents do not grow without bound.
func NotificationPruneJob(store NotificationPruner, logger *zap.Logger, interval, retention time.Duration) Job {
	return Job{
		Name:     "notification-prune",
		Interval: interval,
		Run: func(ctx context.Context) error {
			count, err := store.PruneNotifications(ctx, time.Now().UTC().Add(-retention))
			if err != nil {
				return err
			}
			if count > 0 {
				logger.Info("pruned deleted notifications",
					zap.Int64("users", count),
					zap.Duration("retention", retention))
			}
			return nil
		},
	}
}
