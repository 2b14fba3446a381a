// Package scheduler periodically refreshes briefings for upcoming meetings.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/briefd/internal/config"
	"github.com/fyrsmithlabs/briefd/internal/gather"
)

// MeetingLister returns the meetings starting within the lookahead window.
type MeetingLister interface {
	UpcomingMeetings(ctx context.Context, from time.Time, lookahead time.Duration) ([]gather.Meeting, error)
}

// RunFunc performs one briefing refresh for one meeting.
type RunFunc func(ctx context.Context, meeting gather.Meeting) error

// Scheduler drives periodic briefing refreshes on a cron spec.
type Scheduler struct {
	cfg    config.SchedulerConfig
	lister MeetingLister
	run    RunFunc
	logger *zap.Logger
	cron   *cron.Cron
}

// New creates a Scheduler. It does not start until Start is called.
func New(cfg config.SchedulerConfig, lister MeetingLister, run RunFunc, logger *zap.Logger) (*Scheduler, error) {
	if lister == nil {
		return nil, fmt.Errorf("meeting lister cannot be nil")
	}
	if run == nil {
		return nil, fmt.Errorf("run func cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cfg:    cfg,
		lister: lister,
		run:    run,
		logger: logger.Named("scheduler"),
		cron:   cron.New(),
	}, nil
}

// Start registers the refresh job and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.Spec, func() {
		s.RunOnce(context.Background())
	}); err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", s.cfg.Spec, err)
	}

	s.cron.Start()
	s.logger.Info("scheduler started",
		zap.String("spec", s.cfg.Spec),
		zap.Duration("lookahead", s.cfg.Lookahead),
	)
	return nil
}

// RunOnce refreshes briefings for every meeting in the lookahead window.
// Failures on one meeting do not stop the others.
func (s *Scheduler) RunOnce(ctx context.Context) {
	meetings, err := s.lister.UpcomingMeetings(ctx, time.Now().UTC(), s.cfg.Lookahead)
	if err != nil {
		s.logger.Error("failed to list upcoming meetings", zap.Error(err))
		return
	}

	for _, m := range meetings {
		runCtx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
		err := s.run(runCtx, m)
		cancel()

		if err != nil {
			s.logger.Error("briefing refresh failed",
				zap.String("meeting_id", m.ID),
				zap.String("title", m.Title),
				zap.Error(err),
			)
			continue
		}
		s.logger.Debug("briefing refreshed",
			zap.String("meeting_id", m.ID),
			zap.String("title", m.Title),
		)
	}
}

// Stop stops the cron loop and waits for in-flight jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
