package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/staybook/reservation-engine/booking/features/command/expirestalereservations"
	"github.com/staybook/reservation-engine/booking/shared/core"
	"github.com/staybook/reservation-engine/booking/shared/shell"
)

const (
	// DefaultSweepSchedule is the suggested schedule once the sweep is turned on.
	DefaultSweepSchedule = "@every 15m"
	defaultSweepTimeout  = 2 * time.Minute

	logMsgSweepStarted  = "stale pending sweep started"
	logMsgSweepFinished = "stale pending sweep finished"
	logMsgSweepFailed   = "stale pending sweep failed"
	logMsgCron          = "cron"
	logAttrRejected     = "rejected"
	logAttrAttempts     = "attempts"
	logAttrDurationMS   = "duration_ms"
	logAttrError        = "error"
)

var ErrInvalidSchedule = errors.New("invalid cron schedule")

// Sweeper is the handler of the stale pending sweep, plain or wrapped for observability.
type Sweeper = shell.CommandHandler[expirestalereservations.Command]

// Scheduler triggers the stale pending sweep. Runs never overlap, a run still in progress
// makes the next tick skip.
type Scheduler struct {
	cron    *cron.Cron
	sweeper Sweeper
	clock   core.Clock
	timeout time.Duration
	logger  shell.ContextualLogger
}

// Option defines a functional option for configuring Scheduler.
type Option func(*Scheduler)

// WithClock sets the clock that decides which reservations are stale.
func WithClock(clock core.Clock) Option {
	return func(s *Scheduler) {
		s.clock = clock
	}
}

// WithTimeout bounds a single sweep run.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Scheduler) {
		s.timeout = timeout
	}
}

// WithContextualLogger sets the logger for sweep runs and cron events.
func WithContextualLogger(logger shell.ContextualLogger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// NewScheduler creates a Scheduler running sweeper on schedule.
// The schedule uses the standard five field cron syntax or descriptors like "@every 15m" (UTC).
func NewScheduler(sweeper Sweeper, schedule string, options ...Option) (*Scheduler, error) {
	s := &Scheduler{
		sweeper: sweeper,
		clock:   core.SystemClock,
		timeout: defaultSweepTimeout,
	}

	for _, option := range options {
		option(s)
	}

	cronLog := cronLogger{scheduler: s}
	s.cron = cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	if _, err := s.cron.AddFunc(schedule, s.tick); err != nil {
		return nil, errors.Join(ErrInvalidSchedule, err)
	}

	return s, nil
}

// Start begins scheduling in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running sweep until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce performs one sweep immediately.
func (s *Scheduler) RunOnce(ctx context.Context) (shell.HandlerResult, error) {
	start := time.Now()
	s.info(ctx, logMsgSweepStarted)

	result, err := s.sweeper.Handle(ctx, expirestalereservations.BuildCommand(s.clock()))
	duration := shell.ToMilliseconds(time.Since(start))

	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, logMsgSweepFailed,
				logAttrRejected, result.Affected,
				logAttrDurationMS, duration,
				logAttrError, err.Error(),
			)
		}

		return result, err
	}

	s.info(ctx, logMsgSweepFinished,
		logAttrRejected, result.Affected,
		logAttrAttempts, result.RetryAttempts,
		logAttrDurationMS, duration,
	)

	return result, nil
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	_, _ = s.RunOnce(ctx) // failures are logged, the next tick tries again
}

func (s *Scheduler) info(ctx context.Context, msg string, args ...any) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, msg, args...)
	}
}

// cronLogger routes the cron library's own events to the scheduler's logger.
type cronLogger struct {
	scheduler *Scheduler
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	if l.scheduler.logger != nil {
		l.scheduler.logger.DebugContext(context.Background(), logMsgCron+": "+msg, keysAndValues...)
	}
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	if l.scheduler.logger != nil {
		args := append([]any{logAttrError, err.Error()}, keysAndValues...)
		l.scheduler.logger.ErrorContext(context.Background(), logMsgCron+": "+msg, args...)
	}
}
