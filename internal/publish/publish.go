// Package publish uploads a captured card and records it in the gallery.
//
// A publish runs a fixed sequence of steps:
//
//	IDLE → CAPTURING → UPLOADING → URL_RESOLVING → RECORD_INSERTING → DONE
//
// Any failing step moves to FAILED and aborts the rest. There is no rollback:
// when the insert fails after a successful upload the object stays in the
// store as an orphan. The orphan's path is logged at WARN level.
package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/youruser/soulcard/internal/agent"
	"github.com/youruser/soulcard/internal/capture"
	"github.com/youruser/soulcard/internal/card"
	apperrors "github.com/youruser/soulcard/internal/errors"
	"github.com/youruser/soulcard/internal/export"
)

// Defaults used when the corresponding Publisher field is empty.
const (
	DefaultBucket       = "cards"
	DefaultCacheControl = "3600"
	ContentTypePNG      = "image/png"
)

// Publisher runs the publish sequence against injected stores.
type Publisher struct {
	Objects ObjectStore
	Records RecordStore

	Bucket       string
	Table        string
	CacheControl string
	Scale        float64

	// StepTimeout bounds each step. Zero waits as long as ctx allows.
	StepTimeout time.Duration

	// NewID generates the unique part of the object path.
	NewID func() string

	Logger *log.Logger

	// OnState, if set, observes every state transition in order.
	OnState func(State)
}

// Outcome describes a completed publish.
type Outcome struct {
	Record     agent.Record
	PublicURL  string
	ObjectPath string
}

// ObjectPath returns public/<id>-<serial>.png.
func ObjectPath(id, serial string) string {
	return fmt.Sprintf("public/%s-%s.png", id, export.SanitizeSerial(serial))
}

// Publish captures s, uploads the PNG, resolves its public URL and inserts
// the record built from d. It returns (nil, nil) when s is not mounted.
func (p *Publisher) Publish(ctx context.Context, s capture.Surface, d card.Data) (*Outcome, error) {
	logger := p.logger()

	if s == nil || !s.Mounted() {
		logger.Debug("publish skipped: card surface not mounted")
		return nil, nil
	}
	if p.Objects == nil || p.Records == nil {
		p.enter(StateFailed)
		return nil, apperrors.New(apperrors.ErrCodeConfigMissing, "publish backend is not configured")
	}

	p.enter(StateCapturing)
	var bmp *capture.Bitmap
	err := p.step(ctx, func(ctx context.Context) error {
		var err error
		bmp, err = capture.Capture(ctx, s, capture.Options{Scale: p.Scale})
		return err
	})
	if err != nil {
		return nil, p.fail(err)
	}
	if bmp == nil {
		p.enter(StateIdle)
		logger.Debug("publish skipped: card surface not mounted")
		return nil, nil
	}

	p.enter(StateUploading)
	data, err := bmp.PNG()
	if err != nil {
		return nil, p.fail(err)
	}
	bucket := p.bucket()
	path := ObjectPath(p.newID(), d.Serial)
	err = p.step(ctx, func(ctx context.Context) error {
		return p.Objects.Upload(ctx, bucket, path, data, UploadOptions{
			ContentType:  ContentTypePNG,
			CacheControl: p.cacheControl(),
			Upsert:       false,
		})
	})
	if err != nil {
		return nil, p.fail(apperrors.Wrap(apperrors.ErrCodeUploadFailed, err, "Upload failed"))
	}
	logger.Debug("uploaded card image", "bucket", bucket, "path", path, "bytes", len(data))

	p.enter(StateURLResolving)
	publicURL := p.Objects.PublicURL(bucket, path)

	p.enter(StateRecordInserting)
	var rec agent.Record
	err = p.step(ctx, func(ctx context.Context) error {
		var err error
		rec, err = p.Records.Insert(ctx, p.table(), agent.FromCard(d, publicURL))
		return err
	})
	if err != nil {
		logger.Warn("orphaned object after failed insert", "bucket", bucket, "path", path)
		return nil, p.fail(apperrors.Wrap(apperrors.ErrCodeInsertFailed, err, "Database insert failed"))
	}

	p.enter(StateDone)
	logger.Info("published agent", "id", rec.ID, "url", publicURL)
	return &Outcome{Record: rec, PublicURL: publicURL, ObjectPath: path}, nil
}

func (p *Publisher) step(ctx context.Context, fn func(context.Context) error) error {
	if p.StepTimeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, p.StepTimeout)
	defer cancel()
	return fn(ctx)
}

func (p *Publisher) fail(err error) error {
	p.enter(StateFailed)
	return err
}

func (p *Publisher) enter(s State) {
	if p.OnState != nil {
		p.OnState(s)
	}
}

func (p *Publisher) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Default()
}

func (p *Publisher) newID() string {
	if p.NewID != nil {
		return p.NewID()
	}
	return uuid.NewString()
}

func (p *Publisher) bucket() string {
	if p.Bucket == "" {
		return DefaultBucket
	}
	return p.Bucket
}

func (p *Publisher) table() string {
	if p.Table == "" {
		return agent.Table
	}
	return p.Table
}

func (p *Publisher) cacheControl() string {
	if p.CacheControl == "" {
		return DefaultCacheControl
	}
	return p.CacheControl
}
