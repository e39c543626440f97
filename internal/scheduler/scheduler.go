package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/shawon922/utube-channel-scrapper/internal/domain"
)

// Ingestor runs one ingestion pass for a channel.
type Ingestor interface {
	Run(ctx context.Context, channelUID string) (*domain.IngestStats, error)
}

// Scheduler triggers ingestion runs for the configured channels at a
// fixed interval. Runs for a tick happen sequentially, so the same
// channel is never ingested by two overlapping runs.
type Scheduler struct {
	ingestor   Ingestor
	channelIDs []string
	interval   time.Duration
	runTimeout time.Duration
	logger     *slog.Logger
}

func NewScheduler(ingestor Ingestor, channelIDs []string, interval, runTimeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		ingestor:   ingestor,
		channelIDs: channelIDs,
		interval:   interval,
		runTimeout: runTimeout,
		logger:     logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started",
		"interval", s.interval,
		"channels", len(s.channelIDs),
	)

	s.runAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runAll(ctx)
		}
	}
}

func (s *Scheduler) runAll(ctx context.Context) {
	for _, channelUID := range s.channelIDs {
		if ctx.Err() != nil {
			return
		}
		s.runOne(ctx, channelUID)
	}
}

func (s *Scheduler) runOne(ctx context.Context, channelUID string) {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	if _, err := s.ingestor.Run(runCtx, channelUID); err != nil {
		s.logger.Error("ingestion run failed", "channel_uid", channelUID, "error", err)
	}
}
