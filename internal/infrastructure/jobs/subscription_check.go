package jobs

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/pkg/logger"
)

// SubscriptionChecker runs one locked subscription batch
type SubscriptionChecker interface {
	RunCheck(ctx context.Context) (*entities.SubscriptionCheckReport, error)
}

// SubscriptionCheckJob runs the subscription batch on a fixed interval.
// It is only started when SUBSCRIPTION_CHECK_INTERVAL is positive.
type SubscriptionCheckJob struct {
	checker  SubscriptionChecker
	interval time.Duration
	stop     chan struct{}
}

func NewSubscriptionCheckJob(checker SubscriptionChecker, interval time.Duration) *SubscriptionCheckJob {
	return &SubscriptionCheckJob{
		checker:  checker,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *SubscriptionCheckJob) Start(ctx context.Context) {
	logger.Info(ctx, "Starting subscription check job", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Subscription check job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "Subscription check job stopped")
			return
		case <-ticker.C:
			j.runOnce(ctx)
		}
	}
}

func (j *SubscriptionCheckJob) Stop() {
	close(j.stop)
}

func (j *SubscriptionCheckJob) runOnce(ctx context.Context) {
	report, err := j.checker.RunCheck(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrLocked) {
			logger.Debug(ctx, "Subscription check skipped, another run holds the lock")
			return
		}
		logger.Error(ctx, "Subscription check failed", zap.Error(err))
		return
	}

	logger.Info(ctx, "Subscription check finished",
		zap.Int("checked", report.Checked),
		zap.Int("reminders_7d", report.Reminders7d),
		zap.Int("reminders_3d", report.Reminders3d),
		zap.Int("downgraded", report.Downgraded),
		zap.Int("errors", report.Errors),
	)
}
