package in

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	digestin "readrise/internal/modules/digest/port/in"
	"readrise/internal/platform/logging"
)

// Scheduler runs SendWeekly on a cron schedule.
type Scheduler struct {
	usecase digestin.Usecase
	logger  *zap.Logger
	cron    *cron.Cron
	timeout time.Duration
}

func NewScheduler(usecase digestin.Usecase, logger *zap.Logger) *Scheduler {
	logger = logging.OrNop(logger)
	return &Scheduler{
		usecase: usecase,
		logger:  logger,
		cron:    cron.New(cron.WithLocation(time.UTC), cron.WithLogger(cronLogger{logger.Sugar()})),
		timeout: 5 * time.Minute,
	}
}

// Schedule registers the weekly job using a standard five-field cron spec.
func (s *Scheduler) Schedule(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.Run); err != nil {
		return fmt.Errorf("schedule weekly digest %q: %w", spec, err)
	}
	return nil
}

func (s *Scheduler) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	out, err := s.usecase.SendWeekly(ctx)
	if err != nil {
		s.logger.Error("weekly digest run failed", zap.Error(err))
		return
	}
	s.logger.Info("weekly digest run", zap.Int("sent", out.Sent), zap.Int("failed", out.Failed))
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
