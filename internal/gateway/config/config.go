// Package config handles configuration for the gateway service.
package config

import (
	"time"

	"github.com/dkravets/video2mp3/internal/envx"
)

// Config holds runtime settings for the gateway.
//
// Fields:
//   - Addr: bind address for the HTTP endpoint.
//   - AuthAddress: base URL of the auth service.
//   - AuthTimeout: bound on each gateway->auth call.
//   - RabbitURL: AMQP connection URL.
//   - VideoQueue: durable queue the conversion jobs go to.
//   - S3Endpoint / S3Region / S3AccessKey / S3SecretKey: object storage.
//   - VideoBucket: bucket uploads are stored in.
//   - MP3Bucket: bucket the converter writes results to; download links are
//     presigned against it.
//   - MaxUploadBytes: request body cap for /upload.
type Config struct {
	Addr           string
	AuthAddress    string
	AuthTimeout    time.Duration
	RabbitURL      string
	VideoQueue     string
	S3Endpoint     string
	S3Region       string
	S3AccessKey    string
	S3SecretKey    string
	VideoBucket    string
	MP3Bucket      string
	MaxUploadBytes int64
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// Load reads the configuration from the environment. It returns an error
// naming every missing required variable.
func Load() (*Config, error) {
	var r envx.Reader

	cfg := &Config{
		Addr:           r.Get("GATEWAY_ADDR", ":8080"),
		AuthAddress:    r.Required("AUTH_SVC_ADDRESS"),
		AuthTimeout:    r.Duration("AUTH_TIMEOUT", 5*time.Second),
		RabbitURL:      r.Required("RABBITMQ_URL"),
		VideoQueue:     r.Get("VIDEO_QUEUE", "video"),
		S3Endpoint:     r.Required("S3_ENDPOINT"),
		S3Region:       r.Get("S3_REGION", "us-east-1"),
		S3AccessKey:    r.Required("S3_ACCESS_KEY"),
		S3SecretKey:    r.Required("S3_SECRET_KEY"),
		VideoBucket:    r.Get("S3_VIDEO_BUCKET", "videos"),
		MP3Bucket:      r.Get("S3_MP3_BUCKET", "mp3s"),
		MaxUploadBytes: int64(r.Int("MAX_UPLOAD_BYTES", 1<<30)),
		ReadTimeout:    r.Duration("HTTP_READ_TIMEOUT", 5*time.Minute),
		WriteTimeout:   r.Duration("HTTP_WRITE_TIMEOUT", 5*time.Minute),
	}

	if err := r.Err(); err != nil {
		return nil, err
	}

	return cfg, nil
}
