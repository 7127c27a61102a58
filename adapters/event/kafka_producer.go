package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/howlerhq/howler-api/internal/config"
)

const (
	TopicScraperRuns   = "scraper.runs"
	TopicLibraryEvents = "library.events"
)

const (
	LibraryEventTypeDeleted = "deleted"
	LibraryEventTypeUsed    = "used"
)

type RunResult struct {
	Account  string `json:"account"`
	Success  bool   `json:"success"`
	NewPosts int    `json:"newPosts"`
	Error    string `json:"error,omitempty"`
}

type RunCompletedPayload struct {
	Timestamp     time.Time   `json:"timestamp"`
	Results       []RunResult `json:"results"`
	TotalNewPosts int         `json:"totalNewPosts"`
	LibrarySize   int         `json:"librarySize"`
}

type LibraryEventPayload struct {
	EventType string    `json:"event_type"`
	LibraryID string    `json:"library_id"`
	PostID    string    `json:"post_id"`
	Account   string    `json:"account,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type KafkaProducerClient struct {
	RunsWriter    *kafka.Writer
	LibraryWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	runsWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicScraperRuns,
		Balancer: &kafka.LeastBytes{},
	}

	libraryWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicLibraryEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		RunsWriter:    runsWriter,
		LibraryWriter: libraryWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishRunCompleted(ctx context.Context, payload RunCompletedPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal run event: %w", err)
	}
	return c.RunsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.Timestamp.UTC().Format(time.RFC3339)),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishLibraryEvent(ctx context.Context, payload LibraryEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal library event: %w", err)
	}
	return c.LibraryWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.PostID),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.RunsWriter != nil {
		c.RunsWriter.Close()
	}
	if c.LibraryWriter != nil {
		c.LibraryWriter.Close()
	}
}
