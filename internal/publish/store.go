package publish

import (
	"context"
	"errors"

	"github.com/youruser/soulcard/internal/agent"
)

var (
	// ErrObjectExists is returned by ObjectStore.Upload when the path is
	// already taken. Uploads never overwrite.
	ErrObjectExists = errors.New("object already exists")
	// ErrNotSingleRow is returned when an insert does not yield exactly one row.
	ErrNotSingleRow = errors.New("insert did not return exactly one row")
)

// UploadOptions mirrors the object store upload parameters.
type UploadOptions struct {
	ContentType  string
	CacheControl string
	// Upsert allows replacing an existing object. The publish path always
	// leaves it false.
	Upsert bool
}

// ObjectStore is durable binary storage keyed by bucket and path.
type ObjectStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, opts UploadOptions) error
	// PublicURL derives the object's public URL. It performs no I/O and
	// cannot fail.
	PublicURL(bucket, path string) string
}

// RecordStore inserts structured rows and returns the single inserted row.
type RecordStore interface {
	Insert(ctx context.Context, table string, rec agent.Record) (agent.Record, error)
}
