// Package rabbitmq wraps the broker connection behind the two operations the
// pipeline needs: a durable publish and a consume loop.
package rabbitmq

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to the broker and opens a channel. The caller owns the
// returned client and must Close it on shutdown.
func Dial(url string) (*Client, error) {

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	return &Client{conn: conn, ch: ch}, nil
}

func (c *Client) Close() error {
	if err := c.ch.Close(); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}

// DeclareQueue creates the queue if it does not exist. Durable, so queued
// jobs survive a broker restart.
func (c *Client) DeclareQueue(name string) error {
	_, err := c.ch.QueueDeclare(name, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declaring queue %s: %w", name, err)
	}
	return nil
}

// Publish enqueues body on the named queue with persistent delivery mode.
func (c *Client) Publish(ctx context.Context, queue string, body []byte) error {

	err := c.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", queue, err)
	}

	return nil
}

// Consume returns the delivery stream for the named queue. Deliveries must
// be acked by the caller.
func (c *Client) Consume(queue string) (<-chan amqp.Delivery, error) {

	deliveries, err := c.ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consuming from %s: %w", queue, err)
	}

	return deliveries, nil
}
