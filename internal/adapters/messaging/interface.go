package messaging

import (
	"context"
	"errors"
	"fmt"
)

// Message is a single outbound publish request
type Message struct {
	TopicARN   string
	Subject    string
	Body       string
	Attributes map[string]string
}

// Publisher delivers messages to a topic and returns the broker-assigned message id
type Publisher interface {
	Publish(ctx context.Context, msg Message) (string, error)
}

// Publisher driver names
const (
	DriverMemory = "memory"
	DriverSNS    = "sns"
	DriverRedis  = "redis"
)

// ErrEmptyMessage is returned when a message has no body
var ErrEmptyMessage = errors.New("message body is empty")

// PublishError wraps a failed publish with the topic it was sent to
type PublishError struct {
	Topic string
	Err   error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish to %s: %v", e.Topic, e.Err)
}

func (e *PublishError) Unwrap() error {
	return e.Err
}
