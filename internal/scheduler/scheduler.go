package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/hoopsbot/internal/models"
	"github.com/omarshaarawi/hoopsbot/internal/projection"
)

const jobTimeout = 2 * time.Minute

// ReportService is what the jobs need from the matchup service. Jobs only
// refresh the matchup on display; choosing a matchup is left to users.
type ReportService interface {
	Refresh(ctx context.Context) (models.MatchupProjection, error)
	GetScheduledReport(ctx context.Context) (string, error)
	GetPlayersToMonitor() (string, error)
}

type ErrorRecorder interface {
	ObserveJobError(job string)
}

type Options struct {
	ReportHour      uint
	RefreshInterval time.Duration
	Metrics         ErrorRecorder
}

type Scheduler struct {
	s           gocron.Scheduler
	service     ReportService
	sendMessage func(string) error
	opts        Options
	ctx         context.Context
}

func NewScheduler(service ReportService, sendMessage func(string) error, opts Options) (*Scheduler, error) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(projection.Eastern()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		service:     service,
		sendMessage: sendMessage,
		opts:        opts,
		ctx:         context.Background(),
	}, nil
}

// Start registers the jobs and starts the scheduler. Jobs stop receiving a
// live context once ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.ctx = ctx
	var err error

	// Projection report - daily at ReportHour ET
	_, err = s.s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(s.opts.ReportHour, 0, 0))),
		gocron.NewTask(s.sendProjectionReport),
	)
	if err != nil {
		return fmt.Errorf("failed to create projection report job: %w", err)
	}

	// Players to Monitor - daily 17:00 ET, after most injury reports
	_, err = s.s.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(17, 0, 0))),
		gocron.NewTask(s.sendPlayersToMonitor),
	)
	if err != nil {
		return fmt.Errorf("failed to create players to monitor job: %w", err)
	}

	if s.opts.RefreshInterval > 0 {
		_, err = s.s.NewJob(
			gocron.DurationJob(s.opts.RefreshInterval),
			gocron.NewTask(s.refresh),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to create refresh job: %w", err)
		}
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendProjectionReport() {
	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	report, err := s.service.GetScheduledReport(ctx)
	if err != nil {
		s.jobFailed("projection_report", err)
		return
	}
	s.sendMessage(report)
}

func (s *Scheduler) sendPlayersToMonitor() {
	report, err := s.service.GetPlayersToMonitor()
	if err != nil {
		s.jobFailed("players_to_monitor", err)
		return
	}
	s.sendMessage(report)
}

func (s *Scheduler) refresh() {
	ctx, cancel := context.WithTimeout(s.ctx, jobTimeout)
	defer cancel()

	p, err := s.service.Refresh(ctx)
	if err != nil {
		s.jobFailed("refresh", err)
		return
	}
	slog.Debug("Matchup refreshed", "week", p.Week)
}

func (s *Scheduler) jobFailed(job string, err error) {
	slog.Error("Scheduled job failed", "job", job, "error", err)
	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveJobError(job)
	}
}
