package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/sirupsen/logrus"
)

const (
	// deadLetterKey хранит события, которые не удалось доставить
	deadLetterKey = webhookQueueKey + ":dead"
	popTimeout    = 5 * time.Second
	maxBackoff    = 30 * time.Second
	pushTimeout   = 5 * time.Second
)

// eventQueue - подмножество команд Redis, нужное воркеру
type eventQueue interface {
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) *redis.StringSliceCmd
	LPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
}

// errPermanent - ответ получателя, который не имеет смысла повторять
var errPermanent = errors.New("permanent delivery failure")

// WebhookWorker разбирает очередь событий безопасности в Redis и доставляет их получателю
type WebhookWorker struct {
	queue      eventQueue
	logger     *logrus.Logger
	cfg        *config.Config
	httpClient *http.Client
}

func NewWebhookWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config) *WebhookWorker {
	w := &WebhookWorker{
		logger:     logger,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.WebhookTimeout},
	}
	if redisClient != nil {
		w.queue = redisClient
	}
	return w
}

// Start запускает цикл обработки очереди в отдельной горутине. Цикл завершается вместе с ctx.
func (w *WebhookWorker) Start(ctx context.Context) {
	w.logger.WithField("queue", webhookQueueKey).Info("Starting event delivery worker")
	go w.run(ctx)
}

func (w *WebhookWorker) run(ctx context.Context) {
	for ctx.Err() == nil {
		raw, ok := w.next(ctx)
		if !ok {
			continue
		}
		w.handle(ctx, raw)
	}
	w.logger.Info("Event delivery worker stopped")
}

// handle доставляет одно извлеченное событие. Недоставленное из-за остановки событие
// возвращается в очередь, остальные недоставленные уходят в очередь разбора.
func (w *WebhookWorker) handle(ctx context.Context, raw string) {
	var event Event
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		w.logger.WithError(err).Error("Dropping malformed event from queue")
		return
	}
	if w.processEvent(ctx, event, raw) || w.queue == nil {
		return
	}

	pushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushTimeout)
	defer cancel()
	key := deadLetterKey
	var err error
	if ctx.Err() != nil {
		// RPUSH в хвост: событие будет извлечено первым после перезапуска
		key = webhookQueueKey
		err = w.queue.RPush(pushCtx, key, raw).Err()
	} else {
		err = w.queue.LPush(pushCtx, key, raw).Err()
	}
	if err != nil {
		w.logger.WithError(err).WithFields(logrus.Fields{
			"event_id": event.ID,
			"queue":    key,
		}).Error("Failed to push undelivered event")
	}
}

// next извлекает очередное событие. Таймаут BRPOP ограничен, чтобы цикл замечал отмену ctx.
func (w *WebhookWorker) next(ctx context.Context) (string, bool) {
	result, err := w.queue.BRPop(ctx, popTimeout, webhookQueueKey).Result()
	switch {
	case err == nil:
		// result[0] - ключ очереди
		return result[1], true
	case errors.Is(err, redis.Nil), errors.Is(err, context.Canceled):
		return "", false
	default:
		w.logger.WithError(err).Error("Failed to pop event from Redis")
		select {
		case <-ctx.Done():
		case <-time.After(w.cfg.WebhookTimeout):
		}
		return "", false
	}
}

// processEvent доставляет событие с экспоненциальной задержкой между попытками.
// Возвращает false, если событие так и не было принято получателем.
func (w *WebhookWorker) processEvent(ctx context.Context, event Event, rawPayload string) bool {
	log := w.logger.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"event_type": event.Type,
		"subject_id": event.SubjectID,
	})

	if w.cfg.WebhookURL == "" {
		log.Debug("Webhook URL is not configured, event skipped")
		return true
	}

	delay := w.cfg.WebhookBaseDelay
	for attempt := 1; attempt <= w.cfg.WebhookMaxRetries; attempt++ {
		err := w.deliver(ctx, event, rawPayload)
		if err == nil {
			log.WithField("attempt", attempt).Info("Event delivered")
			return true
		}

		entry := log.WithError(err).WithField("attempt", attempt)
		if errors.Is(err, errPermanent) {
			entry.Error("Event rejected by receiver")
			return false
		}
		entry.Warnf("Event delivery failed, next attempt in %v", delay)

		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
		}
		delay = min(delay*2, maxBackoff)
	}

	log.Errorf("Event not delivered after %d attempts", w.cfg.WebhookMaxRetries)
	return false
}

func (w *WebhookWorker) deliver(ctx context.Context, event Event, rawPayload string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewBufferString(rawPayload))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", errPermanent, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Type", string(event.Type))
	req.Header.Set("X-Event-ID", event.ID.String())
	if w.cfg.WebhookSecret != "" {
		req.Header.Set("X-Webhook-Signature", generateHMACSHA256(rawPayload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("receiver responded with status %d", resp.StatusCode)
	default:
		return fmt.Errorf("%w: receiver responded with status %d", errPermanent, resp.StatusCode)
	}
}

// generateHMACSHA256 подписывает тело запроса секретом получателя
func generateHMACSHA256(data, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
