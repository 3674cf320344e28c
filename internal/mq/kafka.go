package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/yasunstudio/sppg-app-sub005/internal/contracts"
)

func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 250 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
	}
}

func PublishJSON(ctx context.Context, writer *kafka.Writer, key string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: body,
		Time:  time.Now().UTC(),
	})
}

// AlertPublisher hands generated quality alerts to the notification service's
// topic. Publishing is best effort: failures are logged, never surfaced to
// the caller. With no brokers configured it is a no-op.
type AlertPublisher struct {
	writer *kafka.Writer
}

func NewAlertPublisher(brokers []string, topic string) *AlertPublisher {
	if len(brokers) == 0 || topic == "" {
		return &AlertPublisher{}
	}
	return &AlertPublisher{writer: NewWriter(brokers, topic)}
}

func (p *AlertPublisher) Publish(ctx context.Context, alerts []contracts.Alert) {
	if p.writer == nil {
		return
	}
	for _, alert := range alerts {
		if err := PublishJSON(ctx, p.writer, string(alert.ItemType)+"|"+alert.ItemID, alert); err != nil {
			log.Printf("quality-predictor alert publish error: %v", err)
		}
	}
}

func (p *AlertPublisher) Close() {
	if p.writer != nil {
		_ = p.writer.Close()
	}
}
