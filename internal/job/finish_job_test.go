package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/GabrielHenriqueHE/sinapse/internal/domain"
	"github.com/GabrielHenriqueHE/sinapse/internal/metrics"
	"github.com/GabrielHenriqueHE/sinapse/internal/repository"
)

// stubEventRepo overrides only the methods the sweep touches. The embedded
// interface is nil, so an unexpected call panics and fails the test.
type stubEventRepo struct {
	repository.EventRepository
	ended     []*domain.Event
	endedErr  error
	openCount int64
	counted   bool
}

func (s *stubEventRepo) FindEndedUnfinished(ctx context.Context, now time.Time) ([]*domain.Event, error) {
	return s.ended, s.endedErr
}

func (s *stubEventRepo) CountByStatus(ctx context.Context, status domain.EventStatus) (int64, error) {
	s.counted = true
	return s.openCount, nil
}

type stubAutoFinisher struct {
	finish func(ctx context.Context, event *domain.Event) (bool, error)
}

func (s *stubAutoFinisher) AutoFinish(ctx context.Context, event *domain.Event) (bool, error) {
	return s.finish(ctx, event)
}

func endedEvent(status domain.EventStatus) *domain.Event {
	return &domain.Event{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Name:      "Evento encerrado",
		Status:    status,
		StartDate: time.Now().Add(-48 * time.Hour),
		EndDate:   time.Now().Add(-24 * time.Hour),
	}
}

func TestFinishSweep_FinishesEndedEvents(t *testing.T) {
	events := []*domain.Event{endedEvent(domain.EventStatusOpen), endedEvent(domain.EventStatusClosed)}
	repo := &stubEventRepo{ended: events, openCount: 7}

	var finished []uuid.UUID
	finisher := &stubAutoFinisher{finish: func(ctx context.Context, event *domain.Event) (bool, error) {
		finished = append(finished, event.ID)
		event.Status = domain.EventStatusFinished
		return true, nil
	}}

	m := metrics.NewWithRegistry(prometheus.NewRegistry(), nil)
	job := NewFinishSweepJob(repo, finisher, m, zap.NewNop())
	job.Run()

	assert.Len(t, finished, 2)
	for _, event := range events {
		assert.Equal(t, domain.EventStatusFinished, event.Status)
	}
	assert.True(t, repo.counted, "sweep should refresh the open-events gauge")
}

func TestFinishSweep_ContinuesAfterFailure(t *testing.T) {
	events := []*domain.Event{endedEvent(domain.EventStatusOpen), endedEvent(domain.EventStatusOpen)}
	repo := &stubEventRepo{ended: events}

	calls := 0
	finisher := &stubAutoFinisher{finish: func(ctx context.Context, event *domain.Event) (bool, error) {
		calls++
		if calls == 1 {
			return false, errors.New("deadlock detected")
		}
		return true, nil
	}}

	job := NewFinishSweepJob(repo, finisher, nil, zap.NewNop())
	job.Run()

	assert.Equal(t, 2, calls, "a failing event must not stop the sweep")
}

func TestFinishSweep_ListErrorAborts(t *testing.T) {
	repo := &stubEventRepo{endedErr: errors.New("connection refused")}

	finisher := &stubAutoFinisher{finish: func(ctx context.Context, event *domain.Event) (bool, error) {
		t.Fatal("AutoFinish should not be called when listing fails")
		return false, nil
	}}

	m := metrics.NewWithRegistry(prometheus.NewRegistry(), nil)
	job := NewFinishSweepJob(repo, finisher, m, zap.NewNop())
	job.Run()

	assert.False(t, repo.counted, "gauge refresh should be skipped on early return")
}
