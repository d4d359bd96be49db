package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/service"
)

type ScoreRepository struct {
	db *pgxpool.Pool
}

func NewScoreRepository(db *pgxpool.Pool) service.ScoreStore {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) AppendHistory(ctx context.Context, subjectID string, point models.ScorePoint) error {
	query := `INSERT INTO score_history (subject_id, score, recorded_at) VALUES ($1, $2, $3);`
	if _, err := conn(ctx, r.db).Exec(ctx, query, subjectID, point.Score, point.Timestamp); err != nil {
		return fmt.Errorf("failed to append score history: %w", err)
	}
	return nil
}

// History возвращает последние limit точек в хронологическом порядке
func (r *ScoreRepository) History(ctx context.Context, subjectID string, limit int) ([]models.ScorePoint, error) {
	query := `
		SELECT score, recorded_at
		FROM score_history
		WHERE subject_id = $1
		ORDER BY recorded_at DESC, id DESC
		LIMIT $2;
	`
	rows, err := conn(ctx, r.db).Query(ctx, query, subjectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query score history: %w", err)
	}
	defer rows.Close()

	history := make([]models.ScorePoint, 0, limit)
	for rows.Next() {
		var p models.ScorePoint
		if err := rows.Scan(&p.Score, &p.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan score row: %w", err)
		}
		history = append(history, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error score iteration: %w", err)
	}
	slices.Reverse(history)
	return history, nil
}

// ScoreCache кэширует рассчитанные оценки в Redis
type ScoreCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewScoreCache(redisClient *redis.Client, ttl time.Duration) service.ScoreCache {
	return &ScoreCache{redisClient: redisClient, ttl: ttl}
}

func scoreKey(subjectID string) string {
	return fmt.Sprintf("safety_score:%s", subjectID)
}

// Get пытается получить оценку из Redis, промах - nil, nil
func (c *ScoreCache) Get(ctx context.Context, subjectID string) (*models.SafetyScore, error) {
	val, err := c.redisClient.Get(ctx, scoreKey(subjectID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get score from cache: %w", err)
	}

	score := &models.SafetyScore{}
	if err := json.Unmarshal(val, score); err != nil {
		return nil, fmt.Errorf("failed to unmarshal score from cache: %w", err)
	}
	return score, nil
}

// Set сохраняет оценку в Redis
func (c *ScoreCache) Set(ctx context.Context, score *models.SafetyScore) error {
	val, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("failed to marshal score for cache: %w", err)
	}
	if err := c.redisClient.Set(ctx, scoreKey(score.SubjectID), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set score in cache: %w", err)
	}
	return nil
}

// Invalidate удаляет оценку субъекта из кэша
func (c *ScoreCache) Invalidate(ctx context.Context, subjectID string) error {
	if err := c.redisClient.Del(ctx, scoreKey(subjectID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate score cache: %w", err)
	}
	return nil
}
