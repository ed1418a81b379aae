package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Topic is the topic ValidatedEvents are published to.
const Topic = "registration.validated"

// KafkaPublisher publishes ValidatedEvents to Kafka via franz-go.
type KafkaPublisher struct {
	client *kgo.Client
	topic  string
}

// NewKafkaPublisher dials brokers and returns a ready Publisher.
func NewKafkaPublisher(brokers []string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("eventbus: no kafka brokers configured")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchMaxBytes(16384),
		kgo.ProducerLinger(5*time.Millisecond),
		kgo.AllowAutoTopicCreation(),
	)
	if err != nil {
		return nil, fmt.Errorf("eventbus: create kafka client: %w", err)
	}

	return &KafkaPublisher{client: client, topic: Topic}, nil
}

// PublishValidated sends event to Kafka synchronously, keyed by request ID
// so all events for one run land on the same partition.
func (p *KafkaPublisher) PublishValidated(ctx context.Context, event ValidatedEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("eventbus: marshal event: %w", err)
	}

	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(event.RequestID),
		Value: value,
	}

	results := p.client.ProduceSync(ctx, record)
	if err := results.FirstErr(); err != nil {
		return fmt.Errorf("eventbus: produce: %w", err)
	}
	return nil
}

// Close flushes buffered records and shuts the client down.
func (p *KafkaPublisher) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = p.client.Flush(ctx)
	p.client.Close()
	return nil
}
