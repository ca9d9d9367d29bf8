package syncerimpl

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/insta-profile-sync/internal/domain"
)

func (s *SyncerImpl) Schedule(ctx context.Context) error {
	loc, err := time.LoadLocation(s.Config.Schedule.Timezone)
	if err != nil {
		loc = time.Local
		s.Logger.Warn("Failed to load schedule timezone, using local timezone",
			"timezone", s.Config.Schedule.Timezone, "error", err)
	}

	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(loc),
		gocron.WithClock(s.Clock),
	)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationRandomJob(s.Config.Schedule.MinInterval, s.Config.Schedule.MaxInterval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				s.Logger.Info("Context cancelled, skipping scheduled sync")
				return
			}

			s.Logger.Info("Starting scheduled sync")
			if _, err := s.Sync(ctx, domain.VisibilityAll); err != nil {
				s.Logger.Error("Scheduled sync failed", "error", err)
			}
		}),
		gocron.WithName("sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule sync: %w", err)
	}

	if days := s.Config.Schedule.CleanDays; days > 0 {
		_, err = scheduler.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(3, 0, 0))),
			gocron.NewTask(func() {
				if ctx.Err() != nil {
					return
				}
				if _, err := s.Clean(ctx, days); err != nil {
					s.Logger.Error("Scheduled cleanup failed", "error", err)
				}
			}),
			gocron.WithName("cleanup"),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return fmt.Errorf("failed to schedule cleanup: %w", err)
		}
	}

	scheduler.Start()
	s.Logger.Info("Scheduler started",
		"min_interval", s.Config.Schedule.MinInterval,
		"max_interval", s.Config.Schedule.MaxInterval,
		"clean_days", s.Config.Schedule.CleanDays,
	)

	go func() {
		<-ctx.Done()
		s.Logger.Info("Stopping scheduler")
		if err := scheduler.Shutdown(); err != nil {
			s.Logger.Error("Failed to shut down scheduler", "error", err)
		}
	}()

	return nil
}
