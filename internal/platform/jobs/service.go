package jobs

import (
	"context"
	"log/slog"
	"time"
)

const (
	JobAuditRecord = "audit_record"
	queueSize      = 128
	runTimeout     = 10 * time.Second
)

// Service runs fire-and-forget work on a single background worker.
type Service struct {
	queue chan job
}

type job struct {
	Type string
	Run  func(context.Context) error
}

func New() *Service {
	return &Service{queue: make(chan job, queueSize)}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
}

// Enqueue drops the job when the queue is full.
func (s *Service) Enqueue(jobType string, run func(context.Context) error) bool {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		slog.Warn("job queue full", "jobType", jobType)
		return false
	}
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.drain()
			return
		case j := <-s.queue:
			if err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

// drain gives queued jobs a short detached window after shutdown starts.
func (s *Service) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()
	for {
		select {
		case j := <-s.queue:
			if err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		default:
			return
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) error {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()
	start := time.Now()
	err := j.Run(ctx)
	slog.Debug("job run finished", "jobType", j.Type, "durationMs", time.Since(start).Milliseconds(), "failed", err != nil)
	return err
}
