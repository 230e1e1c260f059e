package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"

	"github.com/plateworks/storefront/internal/model"
)

const (
	// StreamName is the name of the storefront event stream.
	StreamName = "STOREFRONT"

	// SubjectPrefix is the prefix for all storefront subjects.
	SubjectPrefix = "storefront"
)

// StreamManager handles JetStream stream operations. The in-memory session
// transcript remains the source of truth for a live session; the stream is
// the durable tap for replay and analytics.
type StreamManager struct {
	client *Client
}

// NewStreamManager creates a new stream manager.
func NewStreamManager(client *Client) *StreamManager {
	return &StreamManager{client: client}
}

// EnsureStream ensures the storefront stream exists with proper configuration.
func (m *StreamManager) EnsureStream(ctx context.Context) error {
	js := m.client.JetStream()

	_, err := js.Stream(ctx, StreamName)
	if err == nil {
		return nil // Stream already exists
	}

	_, err = js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      90 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		Compression: jetstream.S2Compression,
		Description: "Chat transcripts and order events for all storefronts",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}

	return nil
}

// ChatSubject returns the subject for a chat message.
func ChatSubject(restaurantID, sessionID string, role model.Role) string {
	return fmt.Sprintf("%s.chat.%s.%s.%s", SubjectPrefix, restaurantID, sessionID, role)
}

// OrderSubject returns the subject for a placed-order event.
func OrderSubject(restaurantID string) string {
	return fmt.Sprintf("%s.orders.%s.placed", SubjectPrefix, restaurantID)
}

// PublishChatMessage publishes a transcript message to JetStream.
func (m *StreamManager) PublishChatMessage(ctx context.Context, restaurantID string, msg *model.ChatMessage) (uint64, error) {
	subject := ChatSubject(restaurantID, msg.SessionID, msg.Role)

	data, err := json.Marshal(msg)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal chat message: %w", err)
	}

	ack, err := m.client.JetStream().Publish(ctx, subject, data)
	if err != nil {
		return 0, fmt.Errorf("failed to publish chat message: %w", err)
	}

	return ack.Sequence, nil
}

// PublishOrderPlaced publishes a placed-order event to JetStream.
func (m *StreamManager) PublishOrderPlaced(ctx context.Context, order *model.Order) (uint64, error) {
	data, err := json.Marshal(order)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal order: %w", err)
	}

	ack, err := m.client.JetStream().Publish(ctx, OrderSubject(order.RestaurantID), data)
	if err != nil {
		return 0, fmt.Errorf("failed to publish order event: %w", err)
	}

	return ack.Sequence, nil
}
