// Package notifier consumes conversion-complete events and mails the owner.
//
// Notification is off the critical path of the pipeline: every failure is
// logged and the message acked anyway. A lost email is acceptable; a job
// stuck redelivering forever is not.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dkravets/video2mp3/internal/logging"
	amqp "github.com/rabbitmq/amqp091-go"
)

// CompletionMessage is the event the conversion worker publishes once an
// mp3 is ready. Username carries the owner's e-mail address.
type CompletionMessage struct {
	MP3FID   string `json:"mp3_fid"`
	Username string `json:"username"`
}

// Sender delivers one notification e-mail.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Consumer struct {
	sender Sender
	logger logging.Logger
}

func NewConsumer(sender Sender, logger logging.Logger) *Consumer {
	return &Consumer{sender: sender, logger: logger}
}

// Handle processes one completion event. The returned error is informational
// only; Run logs it and acks regardless.
func (c *Consumer) Handle(ctx context.Context, body []byte) error {

	var msg CompletionMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("decoding completion message: %w", err)
	}

	subject := "MP3 Download"
	text := fmt.Sprintf("mp3 file_id: %s is now ready!", msg.MP3FID)

	if err := c.sender.Send(ctx, msg.Username, subject, text); err != nil {
		return fmt.Errorf("sending to %s: %w", msg.Username, err)
	}

	c.logger.Info(ctx, "notification sent", "mp3_fid", msg.MP3FID, "to", msg.Username)
	return nil
}

// Run consumes deliveries until the stream closes or ctx is cancelled.
func (c *Consumer) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {

	for {
		select {
		case <-ctx.Done():
			return
		case d, ok := <-deliveries:
			if !ok {
				return
			}
			if err := c.Handle(ctx, d.Body); err != nil {
				c.logger.Error(ctx, "notification failed", "error", err)
			}
			if err := d.Ack(false); err != nil {
				c.logger.Error(ctx, "ack failed", "error", err)
			}
		}
	}
}
