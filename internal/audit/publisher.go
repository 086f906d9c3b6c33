package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Publisher delivers unresolved-link events to an external consumer.
type Publisher interface {
	Publish(ctx context.Context, event *UnresolvedLinkEvent) error
	Close()
}

// NATSPublisher publishes audit events to a JetStream subject.
type NATSPublisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
}

// NewNATSPublisher connects to NATS and prepares a JetStream publisher for
// the given subject.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	slog.Info("Audit event publisher initialized",
		slog.String("url", url),
		slog.String("subject", subject))

	return &NATSPublisher{conn: conn, js: js, subject: subject}, nil
}

// Publish sends one event. The event's timestamp is stamped here so all
// published events carry publish time, not discovery time.
func (p *NATSPublisher) Publish(ctx context.Context, event *UnresolvedLinkEvent) error {
	event.Timestamp = time.Now()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := p.js.Publish(pubCtx, p.subject, data); err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}

	slog.Debug("Published unresolved link event",
		logfields.Href(event.Href),
		logfields.Page(event.ContentPath))
	return nil
}

// Close drains the underlying connection.
func (p *NATSPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
