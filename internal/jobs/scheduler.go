// Package jobs runs scheduled background work for the engine.
package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	momentum "github.com/momentumhq/momentum"
)

// activityWindow is how far back a user must have completed a session to
// count as active for the daily bonus.
const activityWindow = 24 * time.Hour

// Scheduler runs recurring engine jobs on cron schedules.
type Scheduler struct {
	engine *momentum.Engine
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a scheduler. Jobs are registered with the Add* methods and
// start running after Start.
func New(e *momentum.Engine, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		engine: e,
		cron:   cron.New(),
		logger: logger,
	}
}

// AddDailyBonus schedules a bonus credit for every user active in the last
// 24 hours. spec is a standard 5-field cron expression.
func (s *Scheduler) AddDailyBonus(spec string, points int64) error {
	if points <= 0 {
		return momentum.ErrInvalidAmount
	}

	_, err := s.cron.AddFunc(spec, func() {
		s.runDailyBonus(points)
	})
	return err
}

func (s *Scheduler) runDailyBonus(points int64) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	since := time.Now().UTC().Add(-activityWindow)
	users, err := s.engine.Store().ListActiveUsers(ctx, since)
	if err != nil {
		s.logger.Error("daily bonus: list active users", "error", err)
		return
	}

	credited := 0
	for _, userID := range users {
		if _, err := s.engine.Credit(ctx, userID, points, momentum.ReasonDailyBonus); err != nil {
			s.logger.Error("daily bonus: credit", "user_id", userID, "error", err)
			continue
		}
		credited++
	}

	s.logger.Info("daily bonus run",
		"active_users", len(users),
		"credited", credited,
		"points", points,
	)
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
