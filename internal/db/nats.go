package db

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NewNATSConn connects to NATS and fails fast if the server is unreachable.
func NewNATSConn(natsURL string) (*nats.Conn, error) {
	conn, err := nats.Connect(natsURL,
		nats.Name("tracker-service"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("nats.Connect: %w", err)
	}
	return conn, nil
}
