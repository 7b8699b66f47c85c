package services

import (
	"context"
	"time"

	"tradelink-backend/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CronService posts a daily review-backlog digest to the chat webhook
// (08:30 every morning). Best-effort, like every other notification.
type CronService struct {
	repo     repositories.ApplicationRepository
	notifier WebhookNotifier
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewCronService creates a new cron service
func NewCronService(repo repositories.ApplicationRepository, notifier WebhookNotifier, logger *zap.Logger) *CronService {
	return &CronService{
		repo:     repo,
		notifier: notifier,
		cron:     cron.New(),
		logger:   logger,
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() {
	_, err := s.cron.AddFunc("30 8 * * *", s.sendDailyDigest)
	if err != nil {
		s.logger.Error("failed to schedule daily digest", zap.Error(err))
		return
	}
	s.cron.Start()
	s.logger.Info("cron service started")
}

// Stop stops the scheduler, waiting for a running job to finish
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *CronService) sendDailyDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	counts, err := s.repo.Stats(ctx)
	if err != nil {
		s.logger.Error("daily digest: stats query failed", zap.Error(err))
		return
	}
	if counts.Pending == 0 && counts.Reviewing == 0 {
		return
	}

	outcome := s.notifier.SendDigest(ctx, counts)
	s.logger.Info("daily digest sent",
		zap.Int64("pending", counts.Pending),
		zap.Int64("reviewing", counts.Reviewing),
		zap.String("outcome", string(outcome)))
}
