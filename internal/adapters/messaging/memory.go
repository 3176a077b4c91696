package messaging

import (
	"context"
	"fmt"
	"sync"
)

// MemoryPublisher records published messages in memory. Fail makes every
// subsequent Publish return the given error.
type MemoryPublisher struct {
	mu       sync.Mutex
	messages []Message
	err      error
	seq      int
}

// NewMemoryPublisher creates an empty MemoryPublisher
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

// Publish implements Publisher.Publish
func (p *MemoryPublisher) Publish(ctx context.Context, msg Message) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return "", &PublishError{Topic: msg.TopicARN, Err: p.err}
	}
	if msg.Body == "" {
		return "", &PublishError{Topic: msg.TopicARN, Err: ErrEmptyMessage}
	}

	p.seq++
	p.messages = append(p.messages, msg)
	return fmt.Sprintf("msg-%d", p.seq), nil
}

// Fail sets the error returned by Publish; nil restores normal operation
func (p *MemoryPublisher) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

// Messages returns a copy of every published message in order
func (p *MemoryPublisher) Messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Message, len(p.messages))
	copy(out, p.messages)
	return out
}
