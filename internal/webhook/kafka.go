package webhook

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaEventPublisher публикует события в топик Kafka; ключ записи - идентификатор субъекта,
// поэтому события одного субъекта попадают в одну партицию и сохраняют порядок.
type KafkaEventPublisher struct {
	client *kgo.Client
	topic  string
}

func NewKafkaEventPublisher(client *kgo.Client, topic string) *KafkaEventPublisher {
	return &KafkaEventPublisher{client: client, topic: topic}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.SubjectID),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("failed to publish event to Kafka: %w", err)
	}
	return nil
}
