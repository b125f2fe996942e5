// Package upload coordinates the two-phase upload: durable blob store write,
// then durable job publish. A publish failure triggers a compensating delete
// of the stored blob so no orphaned blob survives a failed attempt.
package upload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dkravets/video2mp3/internal/auth"
	"github.com/dkravets/video2mp3/internal/logging"
	"github.com/dkravets/video2mp3/internal/shared"
)

// BlobStore is the storage contract the coordinator depends on.
type BlobStore interface {
	Put(ctx context.Context, body io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

// Publisher is the broker contract the coordinator depends on.
type Publisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

const deleteTimeout = 10 * time.Second

type Coordinator struct {
	blobs     BlobStore
	publisher Publisher
	queue     string
	logger    logging.Logger
}

func NewCoordinator(blobs BlobStore, publisher Publisher, queue string, logger logging.Logger) *Coordinator {
	return &Coordinator{blobs: blobs, publisher: publisher, queue: queue, logger: logger}
}

// Upload stores the payload and enqueues a conversion job for it.
//
// Phase 1 failure surfaces as shared.ErrStorage with nothing to undo.
// Phase 2 failure deletes the stored blob exactly once and surfaces as
// shared.ErrPublish; a failed delete is logged, never returned, so the
// caller always sees the publish failure as the single cause.
func (c *Coordinator) Upload(ctx context.Context, payload io.Reader, identity auth.Identity) error {

	fid, err := c.blobs.Put(ctx, payload)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrStorage, err)
	}

	msg := JobMessage{VideoFID: fid, Username: identity.Username}

	body, err := json.Marshal(msg)
	if err == nil {
		err = c.publisher.Publish(ctx, c.queue, body)
	}
	if err != nil {
		c.compensate(ctx, fid)
		return fmt.Errorf("%w: %v", shared.ErrPublish, err)
	}

	c.logger.Info(ctx, "job published", "queue", c.queue, "video_fid", fid, "username", identity.Username)
	return nil
}

// compensate deletes the stored blob after a publish failure. It runs on a
// context detached from the request so a client disconnect mid-publish
// cannot leave the delete unexecuted.
func (c *Coordinator) compensate(ctx context.Context, fid string) {

	dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deleteTimeout)
	defer cancel()

	if err := c.blobs.Delete(dctx, fid); err != nil {
		// The blob is orphaned and has to be reconciled out-of-band.
		c.logger.Error(ctx, "compensating delete failed", "video_fid", fid, "error", err)
	}
}
