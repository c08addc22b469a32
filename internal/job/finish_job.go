// Package job holds the background jobs run on a cron schedule.
package job

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
	"github.com/GabrielHenriqueHE/sinapse/internal/metrics"
	"github.com/GabrielHenriqueHE/sinapse/internal/repository"
	"github.com/GabrielHenriqueHE/sinapse/internal/service"
)

// FinishSweepJob finishes ended events in the background, so certificates
// become available even when nobody opens the event pages that trigger the
// on-read transition.
type FinishSweepJob struct {
	eventRepo    repository.EventRepository
	autoFinisher service.AutoFinisher
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewFinishSweepJob creates a new FinishSweepJob instance
func NewFinishSweepJob(
	eventRepo repository.EventRepository,
	autoFinisher service.AutoFinisher,
	m *metrics.Metrics,
	logger *zap.Logger,
) *FinishSweepJob {
	return &FinishSweepJob{
		eventRepo:    eventRepo,
		autoFinisher: autoFinisher,
		metrics:      m,
		logger:       logger,
	}
}

// Run executes one sweep. Events whose end date passed are finished when
// their attendance was taken; the rest stay untouched until the organizer
// records attendance.
func (j *FinishSweepJob) Run() {
	ctx := context.Background()

	events, err := j.eventRepo.FindEndedUnfinished(ctx, time.Now())
	if err != nil {
		j.logger.Error("Failed to find ended events", zap.Error(err))
		return
	}

	finished := 0
	for _, event := range events {
		changed, err := j.autoFinisher.AutoFinish(ctx, event)
		if err != nil {
			j.logger.Error("Failed to finish event",
				zap.String("event_id", event.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if changed {
			finished++
		}
	}

	if len(events) > 0 {
		j.logger.Info("Finish sweep completed",
			zap.Int("ended", len(events)),
			zap.Int("finished", finished),
		)
	}

	if j.metrics != nil {
		if open, err := j.eventRepo.CountByStatus(ctx, domain.EventStatusOpen); err == nil {
			j.metrics.SetEventsOpenTotal(open)
		}
	}
}
