// Package scheduler runs the automatic cash-closure jobs: a fixed open job,
// a fixed close job and a safety-net checker every five minutes. All jobs run
// in the configured business timezone.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	portssvc "github.com/workexpress/wx_backend/internal/core/ports/services"
	"github.com/workexpress/wx_backend/internal/middleware"
)

const (
	TagOpen    = "cash-closure-open"
	TagClose   = "cash-closure-close"
	TagChecker = "cash-closure-checker"

	checkerCronExpr = "*/5 * * * *"
)

// Scheduler wraps gocron with the cash-closure job set.
type Scheduler struct {
	scheduler *gocron.Scheduler
	closures  portssvc.CashClosureSvcFacade
	logger    *slog.Logger
}

// New builds the scheduler with all jobs registered but not started.
func New(closures portssvc.CashClosureSvcFacade, location *time.Location, openHour, openMinute, closeHour, closeMinute int, logger *slog.Logger) (*Scheduler, error) {
	s := &Scheduler{
		scheduler: gocron.NewScheduler(location),
		closures:  closures,
		logger:    logger,
	}

	openExpr := fmt.Sprintf("%d %d * * *", openMinute, openHour)
	closeExpr := fmt.Sprintf("%d %d * * *", closeMinute, closeHour)

	if _, err := s.scheduler.Cron(openExpr).Tag(TagOpen).Do(s.runOpen); err != nil {
		return nil, fmt.Errorf("failed to register open job: %w", err)
	}
	if _, err := s.scheduler.Cron(closeExpr).Tag(TagClose).Do(s.runClose); err != nil {
		return nil, fmt.Errorf("failed to register close job: %w", err)
	}
	if _, err := s.scheduler.Cron(checkerCronExpr).Tag(TagChecker).Do(s.runChecker); err != nil {
		return nil, fmt.Errorf("failed to register checker job: %w", err)
	}

	return s, nil
}

// StartAsync starts the job runner in the background.
func (s *Scheduler) StartAsync() {
	s.scheduler.StartAsync()
	s.logger.Info("Scheduler started", slog.Int("jobs", len(s.scheduler.Jobs())))
}

// Stop stops the job runner and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("Scheduler stopped")
}

// NextRuns reports the next run time per job tag, for the health endpoint.
func (s *Scheduler) NextRuns() map[string]time.Time {
	out := make(map[string]time.Time)
	for _, job := range s.scheduler.Jobs() {
		for _, tag := range job.Tags() {
			out[tag] = job.NextRun()
		}
	}
	return out
}

// Job callbacks never return errors: a failed tick must not unregister the
// job. Failures are logged and the next tick retries.

func (s *Scheduler) runOpen() {
	ctx := s.jobContext(TagOpen)
	view, err := s.closures.AutomaticOpenCashClosure(ctx)
	if err != nil {
		s.logger.Error("Automatic cash closure open failed", slog.String("error", err.Error()))
		return
	}
	if view != nil {
		s.logger.Info("Cash closure opened on schedule", slog.String("cash_closure_id", view.CashClosureID))
	}
}

func (s *Scheduler) runClose() {
	ctx := s.jobContext(TagClose)
	view, err := s.closures.AutomaticCloseCashClosure(ctx)
	if err != nil {
		s.logger.Error("Automatic cash closure close failed", slog.String("error", err.Error()))
		return
	}
	if view != nil {
		s.logger.Info("Cash closure closed on schedule", slog.String("cash_closure_id", view.CashClosureID))
	}
}

func (s *Scheduler) runChecker() {
	ctx := s.jobContext(TagChecker)
	result := s.closures.CheckAndProcessAutomaticCashClosure(ctx)
	if result.Error != "" {
		s.logger.Error("Cash closure checker reported failure",
			slog.String("action", result.Action),
			slog.String("error", result.Error))
		return
	}
	if result.Action != "none" {
		s.logger.Info("Cash closure checker acted",
			slog.String("action", result.Action),
			slog.Time("time", result.Time))
	}
}

func (s *Scheduler) jobContext(tag string) context.Context {
	jobLogger := s.logger.With(slog.String("job", tag))
	return middleware.ContextWithLogger(context.Background(), jobLogger)
}
