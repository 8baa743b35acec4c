package scheduler

import (
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/baula-dev/baula-sync/internal/handler"
	"github.com/baula-dev/baula-sync/internal/models"
	"github.com/baula-dev/baula-sync/pkg/jobs"
)

type enqueuer interface {
	Enqueue(job jobs.Job) error
}

// Scheduler enqueues a synchronisation run for the current semester on a
// cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	queue  enqueuer
	logger *zap.Logger
}

// New builds a scheduler from a cron expression in standard five-field
// syntax.
func New(spec string, queue enqueuer, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scheduler{
		cron:   cron.New(),
		queue:  queue,
		logger: logger,
	}
	if _, err := s.cron.AddFunc(spec, s.enqueueCurrent); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the cron loop and waits for a running trigger to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) enqueueCurrent() {
	semester := models.CurrentSemester(time.Now())
	job := jobs.Job{
		ID:      uuid.NewString(),
		Type:    handler.JobTypeSync,
		Payload: semester,
	}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Sugar().Errorw("failed to enqueue scheduled sync", "semester", semester, "error", err)
		return
	}
	s.logger.Sugar().Infow("scheduled sync enqueued", "semester", semester, "job_id", job.ID)
}
