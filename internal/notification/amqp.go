// Package notification publishes booking lifecycle messages to RabbitMQ.
// The external mailer consumes them; publishing failures are logged and
// swallowed so a broken broker never blocks a booking.
package notification

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Sayden945/ito5031-webassignment/internal/lib/logger/sl"
	"github.com/Sayden945/ito5031-webassignment/internal/models"
)

const (
	QueueBookingConfirmed = "booking.confirmed"
	QueueBookingCancelled = "booking.cancelled"
)

// BookingMessage carries everything the mailer needs without querying
// the primary database.
type BookingMessage struct {
	BookingID   string `json:"booking_id"`
	EventID     string `json:"event_id"`
	EventTitle  string `json:"event_title"`
	EventStart  string `json:"event_start"`
	EventEnd    string `json:"event_end"`
	UserID      string `json:"user_id"`
	UserEmail   string `json:"user_email"`
	DisplayName string `json:"display_name"`
	OccurredAt  string `json:"occurred_at"`
}

type AMQPNotifier struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  *slog.Logger
}

// NewAMQPNotifier dials the broker and declares the durable booking
// queues so publishes survive broker restarts.
func NewAMQPNotifier(url string, log *slog.Logger) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	for _, queue := range []string{QueueBookingConfirmed, QueueBookingCancelled} {
		if _, err = ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, err
		}
	}

	return &AMQPNotifier{conn: conn, ch: ch, log: log}, nil
}

func (n *AMQPNotifier) Close() error {
	if err := n.ch.Close(); err != nil {
		return err
	}
	return n.conn.Close()
}

func (n *AMQPNotifier) BookingConfirmed(ctx context.Context, b *models.Booking, u *models.User) {
	n.publish(ctx, QueueBookingConfirmed, b, u)
}

func (n *AMQPNotifier) BookingCancelled(ctx context.Context, b *models.Booking, u *models.User) {
	n.publish(ctx, QueueBookingCancelled, b, u)
}

func (n *AMQPNotifier) publish(ctx context.Context, queue string, b *models.Booking, u *models.User) {
	msg := BookingMessage{
		BookingID:  b.ID,
		EventID:    b.EventID,
		EventTitle: b.EventTitle,
		EventStart: b.EventStart.Format(time.RFC3339),
		EventEnd:   b.EventEnd.Format(time.RFC3339),
		UserID:     b.UserID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if u != nil {
		msg.UserEmail = u.Email
		msg.DisplayName = u.DisplayName
	}

	body, err := json.Marshal(msg)
	if err != nil {
		n.log.Error("failed to marshal notification", sl.Err(err))
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err = n.ch.PublishWithContext(ctx, "", queue, false, false, pub); err != nil {
		n.log.Error("failed to publish notification",
			slog.String("queue", queue),
			slog.String("booking_id", b.ID),
			sl.Err(err),
		)
	}
}
