package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/p3bustos/jobtracker/internal/events"
	"github.com/p3bustos/jobtracker/internal/tracker"
)

type published struct {
	channel string
	payload []byte
}

type fakeRedis struct {
	sent []published
	err  error
}

func (f *fakeRedis) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.sent = append(f.sent, published{channel: channel, payload: message.([]byte)})
	return redis.NewIntResult(1, f.err)
}

type fakeNATS struct {
	sent []published
	err  error
}

func (f *fakeNATS) Publish(subject string, data []byte) error {
	f.sent = append(f.sent, published{channel: subject, payload: data})
	return f.err
}

func statusChanged() tracker.Event {
	return tracker.Event{
		Type:          tracker.EventStatusChanged,
		ApplicationID: 7,
		From:          tracker.StatusApplied,
		To:            tracker.StatusPhoneScreen,
		At:            time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestRedis_PublishesOnTypeChannel(t *testing.T) {
	rdb := &fakeRedis{}
	require.NoError(t, events.NewRedis(rdb).Publish(context.Background(), statusChanged()))

	require.Len(t, rdb.sent, 1)
	assert.Equal(t, tracker.EventStatusChanged, rdb.sent[0].channel)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rdb.sent[0].payload, &body))
	assert.Equal(t, tracker.EventStatusChanged, body["type"])
	assert.Equal(t, float64(7), body["applicationId"])
	assert.Equal(t, "APPLIED", body["from"])
	assert.Equal(t, "PHONE_SCREEN", body["to"])
	assert.NotContains(t, body, "stats")
}

func TestRedis_PublishError(t *testing.T) {
	rdb := &fakeRedis{err: errors.New("connection refused")}
	err := events.NewRedis(rdb).Publish(context.Background(), statusChanged())
	require.Error(t, err)
	assert.Contains(t, err.Error(), tracker.EventStatusChanged)
}

func TestNATS_PublishesOnPrefixedSubject(t *testing.T) {
	conn := &fakeNATS{}
	st := tracker.Stats{Total: 3, Active: 2}
	event := tracker.Event{Type: tracker.EventStatsSnapshot, Stats: &st}

	require.NoError(t, events.NewNATS(conn).Publish(context.Background(), event))

	require.Len(t, conn.sent, 1)
	assert.Equal(t, "tracker.EVENT_STATS_SNAPSHOT", conn.sent[0].channel)

	var got tracker.Event
	require.NoError(t, json.Unmarshal(conn.sent[0].payload, &got))
	require.NotNil(t, got.Stats)
	assert.Equal(t, st, *got.Stats)
}

func TestNATS_PublishError(t *testing.T) {
	conn := &fakeNATS{err: errors.New("nats: connection closed")}
	assert.Error(t, events.NewNATS(conn).Publish(context.Background(), statusChanged()))
}

func TestNop(t *testing.T) {
	assert.NoError(t, events.Nop{}.Publish(context.Background(), statusChanged()))
}
