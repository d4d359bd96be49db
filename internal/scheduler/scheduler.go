package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/shenikar/tourist_safety/internal/service"
	"github.com/sirupsen/logrus"
)

// AnomalySweeper периодически запускает поиск аномалий по всем недавно активным субъектам
type AnomalySweeper struct {
	cron      *cron.Cron
	locations service.LocationService
	logger    *logrus.Logger
	timeout   time.Duration
	ctx       context.Context
}

// NewAnomalySweeper создает планировщик по cron-выражению cfg.AnomalySweepSchedule.
// Пересекающиеся запуски пропускаются.
func NewAnomalySweeper(locations service.LocationService, logger *logrus.Logger, cfg *config.Config) (*AnomalySweeper, error) {
	cronLog := cronLogger{entry: logger.WithField("component", "scheduler")}
	s := &AnomalySweeper{
		cron: cron.New(
			cron.WithLocation(cfg.Location()),
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		locations: locations,
		logger:    logger,
		timeout:   sweepTimeout(cfg),
		ctx:       context.Background(),
	}

	if _, err := s.cron.AddFunc(cfg.AnomalySweepSchedule, func() { s.RunOnce(s.ctx) }); err != nil {
		return nil, fmt.Errorf("invalid anomaly sweep schedule %q: %w", cfg.AnomalySweepSchedule, err)
	}
	return s, nil
}

// Start запускает планировщик; ctx передается в каждый запуск
func (s *AnomalySweeper) Start(ctx context.Context) {
	s.ctx = ctx
	s.cron.Start()
	s.logger.WithField("entries", len(s.cron.Entries())).Info("Anomaly sweeper started")
}

// Stop останавливает планировщик и ждет завершения текущего запуска
func (s *AnomalySweeper) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Anomaly sweeper stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce выполняет один проход поиска аномалий
func (s *AnomalySweeper) RunOnce(ctx context.Context) {
	log := s.logger.WithFields(logrus.Fields{
		"component": "scheduler",
		"job":       "anomaly_sweep",
	})

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raised, err := s.locations.SweepAnomalies(runCtx)
	if err != nil {
		log.WithError(err).Error("Anomaly sweep failed")
		return
	}
	log.WithFields(logrus.Fields{
		"alerts_raised": raised,
		"duration":      time.Since(start).String(),
	}).Info("Anomaly sweep finished")
}

// sweepTimeout ограничивает проход половиной интервала анализа, но не меньше минуты
func sweepTimeout(cfg *config.Config) time.Duration {
	timeout := cfg.AnomalyInterval / 2
	if timeout < time.Minute {
		timeout = time.Minute
	}
	return timeout
}

// cronLogger адаптирует logrus к интерфейсу cron.Logger
type cronLogger struct {
	entry *logrus.Entry
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fieldsOf(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.entry.WithError(err).WithFields(fieldsOf(keysAndValues)).Error(msg)
}

func fieldsOf(keysAndValues []interface{}) logrus.Fields {
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
