// Package config handles configuration for the notifier service.
package config

import (
	"github.com/dkravets/video2mp3/internal/envx"
)

// Config holds runtime settings for the notifier.
//
// Fields:
//   - RabbitURL: AMQP connection URL.
//   - MP3Queue: queue the conversion worker publishes completions to.
//   - SMTPHost / SMTPPort / SMTPUsername / SMTPPassword: submission account.
//   - From: sender address on outgoing notifications.
type Config struct {
	RabbitURL    string
	MP3Queue     string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	From         string
}

// Load reads the configuration from the environment. It returns an error
// naming every missing required variable.
func Load() (*Config, error) {
	var r envx.Reader

	cfg := &Config{
		RabbitURL:    r.Required("RABBITMQ_URL"),
		MP3Queue:     r.Get("MP3_QUEUE", "mp3"),
		SMTPHost:     r.Required("SMTP_HOST"),
		SMTPPort:     r.Int("SMTP_PORT", 587),
		SMTPUsername: r.Required("SMTP_USERNAME"),
		SMTPPassword: r.Required("SMTP_PASSWORD"),
		From:         r.Required("SMTP_FROM"),
	}

	if err := r.Err(); err != nil {
		return nil, err
	}

	return cfg, nil
}
