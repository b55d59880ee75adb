// Package events delivers tracker events to Redis or NATS subscribers.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/p3bustos/jobtracker/internal/tracker"
)

// redisPublisher is the part of *redis.Client used here.
type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// Redis publishes each event on the channel named after its type, for the
// Gateway to forward over SSE.
type Redis struct {
	rdb redisPublisher
}

// NewRedis returns a publisher backed by rdb.
func NewRedis(rdb redisPublisher) *Redis {
	return &Redis{rdb: rdb}
}

// Publish implements tracker.EventPublisher.
func (p *Redis) Publish(ctx context.Context, event tracker.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.rdb.Publish(ctx, event.Type, data).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", event.Type, err)
	}
	return nil
}

// natsPublisher is the part of *nats.Conn used here.
type natsPublisher interface {
	Publish(subject string, data []byte) error
}

// SubjectPrefix is prepended to the event type to form the NATS subject.
const SubjectPrefix = "tracker."

// NATS publishes each event on tracker.<type>.
type NATS struct {
	conn natsPublisher
}

// NewNATS returns a publisher backed by conn, usually a *nats.Conn.
func NewNATS(conn natsPublisher) *NATS {
	return &NATS{conn: conn}
}

// Publish implements tracker.EventPublisher.
func (p *NATS) Publish(_ context.Context, event tracker.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	subject := SubjectPrefix + event.Type
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("nats publish %s: %w", subject, err)
	}
	return nil
}

// Nop drops every event. Used when EVENTS_BACKEND=none.
type Nop struct{}

// Publish implements tracker.EventPublisher.
func (Nop) Publish(context.Context, tracker.Event) error { return nil }

var (
	_ tracker.EventPublisher = (*Redis)(nil)
	_ tracker.EventPublisher = (*NATS)(nil)
	_ tracker.EventPublisher = Nop{}
)
