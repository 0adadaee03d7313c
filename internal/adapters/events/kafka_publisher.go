package events

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
)

// Topics names the Kafka destination for each ledger event. Events are
// hash-partitioned on the envelope partition key, which is the campaign id
// for every emitted event, so one campaign's stream stays ordered.
type Topics struct {
	CampaignCreated      string
	PledgeAccountCreated string
	Pledged              string
	Unpledged            string
	Claimed              string
}

func (t Topics) topicFor(eventType string) string {
	switch eventType {
	case domain.EventCampaignCreated:
		return t.CampaignCreated
	case domain.EventPledgeAccountCreated:
		return t.PledgeAccountCreated
	case domain.EventPledged:
		return t.Pledged
	case domain.EventUnpledged:
		return t.Unpledged
	case domain.EventClaimed:
		return t.Claimed
	default:
		return ""
	}
}

type KafkaPublisher struct {
	writer *kafka.Writer
	topics Topics
}

func NewKafkaPublisher(brokers []string, topics Topics) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher requires at least one broker")
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			RequiredAcks: kafka.RequireAll,
			Balancer:     &kafka.Hash{},
			WriteTimeout: 10 * time.Second,
		},
		topics: topics,
	}, nil
}

// Publish sends one outbox envelope. An event without a configured topic
// falls back to the event type as topic name.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType string, payload []byte, partitionKey string) error {
	topic := p.topics.topicFor(eventType)
	if topic == "" {
		topic = eventType
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(partitionKey),
		Value: payload,
		Time:  time.Now().UTC(),
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
