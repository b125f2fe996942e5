package notifier

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/dkravets/video2mp3/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	err error

	calls   int
	to      string
	subject string
	body    string
}

var _ Sender = (*fakeSender)(nil)

func (f *fakeSender) Send(_ context.Context, to, subject, body string) error {
	f.calls++
	f.to = to
	f.subject = subject
	f.body = body
	return f.err
}

func newTestConsumer(s *fakeSender) *Consumer {
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	return NewConsumer(s, logger)
}

func TestHandle_SendsExpectedMail(t *testing.T) {
	t.Parallel()

	s := &fakeSender{}
	c := newTestConsumer(s)

	err := c.Handle(context.Background(), []byte(`{"mp3_fid":"h2","username":"a@x.com"}`))
	require.NoError(t, err)

	assert.Equal(t, 1, s.calls)
	assert.Equal(t, "a@x.com", s.to)
	assert.Equal(t, "MP3 Download", s.subject)
	assert.Equal(t, "mp3 file_id: h2 is now ready!", s.body)
}

func TestHandle_BadPayload(t *testing.T) {
	t.Parallel()

	s := &fakeSender{}
	c := newTestConsumer(s)

	err := c.Handle(context.Background(), []byte("not json"))
	require.Error(t, err)
	assert.Equal(t, 0, s.calls)
}

func TestHandle_SendFailureSurfacesForLogging(t *testing.T) {
	t.Parallel()

	s := &fakeSender{err: errors.New("smtp refused")}
	c := newTestConsumer(s)

	err := c.Handle(context.Background(), []byte(`{"mp3_fid":"h2","username":"a@x.com"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a@x.com")
}
