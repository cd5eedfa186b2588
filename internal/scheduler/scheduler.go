package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const jobTimeout = 30 * time.Second

// StaleNotifier - повторное оповещение о вызовах, которые слишком долго ждут принятия
type StaleNotifier interface {
	NotifyStalePending(ctx context.Context) (int, error)
}

// Refresher - перечитывание справочника учреждений
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler запускает фоновые задачи по cron-расписанию
type Scheduler struct {
	notifier        StaleNotifier
	refresher       Refresher
	logger          *logrus.Logger
	sweepSchedule   string
	refreshSchedule string
}

func New(notifier StaleNotifier, refresher Refresher, logger *logrus.Logger, sweepSchedule, refreshSchedule string) *Scheduler {
	return &Scheduler{
		notifier:        notifier,
		refresher:       refresher,
		logger:          logger,
		sweepSchedule:   sweepSchedule,
		refreshSchedule: refreshSchedule,
	}
}

// Run блокируется до отмены ctx, затем дожидается завершения запущенных задач
func (s *Scheduler) Run(ctx context.Context) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "Scheduler",
		"method":  "Run",
	})

	c := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(s.logger)),
		cron.SkipIfStillRunning(cron.PrintfLogger(s.logger)),
	))

	if _, err := c.AddFunc(s.sweepSchedule, func() { s.sweep(ctx) }); err != nil {
		return fmt.Errorf("scheduler: invalid sweep schedule %q: %w", s.sweepSchedule, err)
	}
	if _, err := c.AddFunc(s.refreshSchedule, func() { s.refresh(ctx) }); err != nil {
		return fmt.Errorf("scheduler: invalid facility refresh schedule %q: %w", s.refreshSchedule, err)
	}

	c.Start()
	log.WithFields(logrus.Fields{
		"sweep":   s.sweepSchedule,
		"refresh": s.refreshSchedule,
	}).Info("Scheduler started")

	<-ctx.Done()
	<-c.Stop().Done()
	log.Info("Scheduler stopped")
	return nil
}

func (s *Scheduler) sweep(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	n, err := s.notifier.NotifyStalePending(ctx)
	if err != nil {
		s.logger.WithField("job", "sweep").WithError(err).Error("Stale incident sweep failed")
		return
	}
	if n > 0 {
		s.logger.WithField("job", "sweep").Infof("Re-announced %d stale incidents", n)
	}
}

func (s *Scheduler) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	if err := s.refresher.Refresh(ctx); err != nil {
		s.logger.WithField("job", "refresh").WithError(err).Error("Facility refresh failed")
	}
}
