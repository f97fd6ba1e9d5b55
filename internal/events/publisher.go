// Package events publishes fire-and-forget domain events over NATS. The
// publisher is optional: with no NATS URL configured every publish is a
// no-op, and publish failures are logged but never fail a request.
package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/viajero-ai/travel-planner/pkg/logger"
)

const (
	SubjectItineraryGenerated = "travel.itinerary.generated"
	SubjectChatHandled        = "travel.chat.handled"
)

// ItineraryGenerated is emitted after a successful synthesis.
type ItineraryGenerated struct {
	Location    string    `json:"location"`
	Days        int       `json:"days"`
	Provider    string    `json:"provider,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ChatHandled is emitted for every orchestrated chat turn.
type ChatHandled struct {
	Outcome   string    `json:"outcome"`
	HandledAt time.Time `json:"handled_at"`
}

// Config holds NATS connection configuration.
type Config struct {
	URL   string
	Token string
}

// Publisher wraps an optional NATS connection.
type Publisher struct {
	conn   *nats.Conn
	logger *logger.Logger
}

// Connect establishes a NATS connection, or returns a no-op publisher when
// no URL is configured.
func Connect(cfg Config, log *logger.Logger) (*Publisher, error) {
	if cfg.URL == "" {
		return &Publisher{logger: log}, nil
	}

	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
	}
	if cfg.Token != "" {
		opts = append(opts, nats.Token(cfg.Token))
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, logger: log}, nil
}

// Publish sends one event. Failures are swallowed after logging; events are
// observability signals, not part of the request contract.
func (p *Publisher) Publish(subject string, event any) {
	if p.conn == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("event marshal failed", zap.String("subject", subject), zap.Error(err))
		return
	}
	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn("event publish failed", zap.String("subject", subject), zap.Error(err))
	}
}

// Enabled reports whether a NATS connection is configured.
func (p *Publisher) Enabled() bool {
	return p.conn != nil
}

// Close drains the connection if one exists.
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
