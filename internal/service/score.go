package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/score"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ScoreService определяет контракт расчета оценки безопасности
type ScoreService interface {
	ComputeSafetyScore(ctx context.Context, subjectID string) (*models.SafetyScore, error)
}

type scoreService struct {
	repos  Repositories
	logger *logrus.Logger
	cfg    *config.Config
	now    func() time.Time
}

func NewScoreService(repos Repositories, logger *logrus.Logger, cfg *config.Config) ScoreService {
	return &scoreService{
		repos:  repos,
		logger: logger,
		cfg:    cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ComputeSafetyScore пересчитывает оценку по алертам окна и дописывает точку в историю.
// Кэш сбрасывается при каждом новом алерте субъекта.
func (s *scoreService) ComputeSafetyScore(ctx context.Context, subjectID string) (*models.SafetyScore, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "score",
		"method":     "ComputeSafetyScore",
		"subject_id": subjectID,
	})
	if subjectID == "" {
		return nil, fmt.Errorf("service: %w: subject id is required", models.ErrInvalidArgument)
	}

	if s.repos.ScoreCache != nil {
		cached, err := s.repos.ScoreCache.Get(ctx, subjectID)
		if err != nil {
			log.WithError(err).Warn("Failed to read score cache")
		}
		if cached != nil {
			log.Debug("Safety score served from cache")
			return cached, nil
		}
	}

	now := s.now()
	window := s.cfg.ScoreWindow
	if window <= 0 {
		window = score.DefaultWindow
	}

	var (
		alerts  []models.Alert
		history []models.ScorePoint
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		alerts, err = s.repos.Alerts.ListForSubject(gctx, subjectID, models.AlertFilter{Since: now.Add(-window)})
		if err != nil {
			return storeError("list alerts for score", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		history, err = s.repos.Scores.History(gctx, subjectID, score.MaxHistory-1)
		if err != nil {
			return storeError("score history", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Failed to load score inputs")
		return nil, err
	}

	result := score.Compute(subjectID, alerts, history, now)
	if err := s.repos.Scores.AppendHistory(ctx, subjectID, models.ScorePoint{Score: result.CurrentScore, Timestamp: now}); err != nil {
		log.WithError(err).Error("Failed to append score history")
		return nil, storeError("append score history", err)
	}

	if s.repos.ScoreCache != nil {
		if err := s.repos.ScoreCache.Set(ctx, &result); err != nil {
			log.WithError(err).Warn("Failed to cache safety score")
		}
	}

	log.WithFields(logrus.Fields{
		"score":  result.CurrentScore,
		"alerts": result.AlertsCount,
	}).Info("Safety score computed")
	return &result, nil
}
