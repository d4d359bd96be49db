package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	webhookQueueKey = "safety_events"
)

type EventType string

const (
	EventAlertRaised      EventType = "alert.raised"
	EventAlertUpdated     EventType = "alert.status_changed"
	EventEmergencyCreated EventType = "emergency.created"
	EventEmergencyUpdated EventType = "emergency.status_changed"
)

// Event - событие для внешнего диспетчера уведомлений
type Event struct {
	ID        uuid.UUID         `json:"id"`
	Type      EventType         `json:"type"`
	SubjectID string            `json:"subject_id"`
	Timestamp time.Time         `json:"timestamp"`
	Alert     *models.Alert     `json:"alert,omitempty"`
	Emergency *models.Emergency `json:"emergency,omitempty"`
}

// NewAlertEvent создает событие по алерту
func NewAlertEvent(t EventType, alert models.Alert, at time.Time) Event {
	return Event{ID: uuid.New(), Type: t, SubjectID: alert.SubjectID, Timestamp: at, Alert: &alert}
}

// NewEmergencyEvent создает событие по ЧС
func NewEmergencyEvent(t EventType, emergency models.Emergency, at time.Time) Event {
	return Event{ID: uuid.New(), Type: t, SubjectID: emergency.SubjectID, Timestamp: at, Emergency: &emergency}
}

// EventPublisher - интерфейс для публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisEventPublisher - реализация EventPublisher, использующая очередь Redis
type RedisEventPublisher struct {
	redisClient *redis.Client
}

// NewRedisEventPublisher создает новый RedisEventPublisher
func NewRedisEventPublisher(client *redis.Client) *RedisEventPublisher {
	return &RedisEventPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в очередь Redis
func (p *RedisEventPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH в голову списка, воркер забирает с хвоста через BRPOP
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}

// LogEventPublisher только пишет события в лог. Используется в режиме без брокера.
type LogEventPublisher struct {
	logger *logrus.Logger
}

func NewLogEventPublisher(logger *logrus.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger}
}

func (p *LogEventPublisher) Publish(_ context.Context, event Event) error {
	p.logger.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"subject_id": event.SubjectID,
	}).Info("Safety event emitted")
	return nil
}
