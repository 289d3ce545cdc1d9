package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/teampulse/feedback-system/internal/core/domain"
)

// DefaultQueueName is the durable queue feedback events are published to.
const DefaultQueueName = "feedback.events"

// AMQPNotifier publishes feedback events as persistent JSON messages on a
// durable queue through the default exchange. A dropped connection or
// channel is reopened on the next publish.
type AMQPNotifier struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPNotifier dials the broker and declares the queue.
func NewAMQPNotifier(url, queue string) (*AMQPNotifier, error) {
	if queue == "" {
		queue = DefaultQueueName
	}
	n := &AMQPNotifier{url: url, queue: queue}
	if err := n.connect(); err != nil {
		return nil, err
	}
	return n, nil
}

// connect must be called with mu held or before the notifier is shared.
func (n *AMQPNotifier) connect() error {
	if n.conn == nil || n.conn.IsClosed() {
		conn, err := amqp.Dial(n.url)
		if err != nil {
			return fmt.Errorf("amqp dial: %w", err)
		}
		n.conn = conn
		n.ch = nil
	}

	if n.ch == nil || n.ch.IsClosed() {
		ch, err := n.conn.Channel()
		if err != nil {
			return fmt.Errorf("amqp channel: %w", err)
		}
		if _, err := ch.QueueDeclare(n.queue, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			return fmt.Errorf("amqp queue declare: %w", err)
		}
		n.ch = ch
	}
	return nil
}

func (n *AMQPNotifier) Notify(ctx context.Context, event domain.FeedbackEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	if err := n.connect(); err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(event.Type),
		Body:         body,
	}
	if err := n.ch.PublishWithContext(ctx, "", n.queue, false, false, pub); err != nil {
		return fmt.Errorf("amqp publish: %w", err)
	}
	return nil
}

// Close releases the channel and the connection.
func (n *AMQPNotifier) Close() error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.ch != nil {
		_ = n.ch.Close()
		n.ch = nil
	}
	if n.conn != nil {
		err := n.conn.Close()
		n.conn = nil
		return err
	}
	return nil
}
