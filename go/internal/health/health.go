// Package health reports whether the server's dependencies are reachable.
package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mcdev12/scoreboard/go/internal/respond"
)

type Status struct {
	Healthy           bool     `json:"healthy"`
	DatabaseConnected bool     `json:"database_connected"`
	NATSConnected     *bool    `json:"nats_connected,omitempty"`
	Errors            []string `json:"errors"`
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnectionReporter is implemented by event publishers that hold a broker connection.
type ConnectionReporter interface {
	IsConnected() bool
}

type Checker struct {
	db      Pinger
	broker  ConnectionReporter
	timeout time.Duration
}

// NewChecker creates a checker. broker may be nil when events are disabled.
func NewChecker(db Pinger, broker ConnectionReporter) *Checker {
	return &Checker{db: db, broker: broker, timeout: 5 * time.Second}
}

func (c *Checker) Check(ctx context.Context) Status {
	status := Status{
		Healthy: true,
		Errors:  []string{},
	}

	// Check database connection
	if err := c.db.Ping(ctx); err != nil {
		status.Healthy = false
		status.Errors = append(status.Errors, fmt.Sprintf("database ping failed: %v", err))
	} else {
		status.DatabaseConnected = true
	}

	// A disconnected broker only loses events, the API keeps working
	if c.broker != nil {
		connected := c.broker.IsConnected()
		status.NATSConnected = &connected
		if !connected {
			status.Errors = append(status.Errors, "NATS disconnected")
		}
	}

	return status
}

func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
	defer cancel()

	status := c.Check(ctx)
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	respond.JSON(w, r, code, status)
}
