package tracker

import "time"

// Event types published after successful mutations and by the stats
// scheduler. The type doubles as the Redis channel name.
const (
	EventApplicationCreated = "EVENT_APPLICATION_CREATED"
	EventApplicationUpdated = "EVENT_APPLICATION_UPDATED"
	EventStatusChanged      = "EVENT_STATUS_CHANGED"
	EventApplicationDeleted = "EVENT_APPLICATION_DELETED"
	EventStatsSnapshot      = "EVENT_STATS_SNAPSHOT"
)

// Event is the JSON payload sent to subscribers.
type Event struct {
	Type          string    `json:"type"`
	ApplicationID int64     `json:"applicationId,omitempty"`
	Status        Status    `json:"status,omitempty"`
	From          Status    `json:"from,omitempty"`
	To            Status    `json:"to,omitempty"`
	Stats         *Stats    `json:"stats,omitempty"`
	At            time.Time `json:"at"`
}
