package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// RedisPublisher publishes messages as JSON envelopes on a Redis channel.
// It stands in for SNS when running locally.
type RedisPublisher struct {
	client  goredis.Cmdable
	channel string
}

type redisEnvelope struct {
	MessageID  string            `json:"message_id"`
	TopicARN   string            `json:"topic_arn"`
	Subject    string            `json:"subject,omitempty"`
	Message    string            `json:"message"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// NewRedisPublisher creates a publisher that writes to channel
func NewRedisPublisher(client goredis.Cmdable, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Publish implements Publisher.Publish
func (p *RedisPublisher) Publish(ctx context.Context, msg Message) (string, error) {
	if msg.Body == "" {
		return "", &PublishError{Topic: p.channel, Err: ErrEmptyMessage}
	}

	envelope := redisEnvelope{
		MessageID:  uuid.New().String(),
		TopicARN:   msg.TopicARN,
		Subject:    msg.Subject,
		Message:    msg.Body,
		Attributes: msg.Attributes,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return "", &PublishError{Topic: p.channel, Err: fmt.Errorf("failed to marshal message: %w", err)}
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return "", &PublishError{Topic: p.channel, Err: err}
	}
	return envelope.MessageID, nil
}
