// Package publishtest provides in-memory stores for tests of code that
// publishes cards.
package publishtest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/youruser/soulcard/internal/agent"
	"github.com/youruser/soulcard/internal/publish"
)

// Objects is an in-memory publish.ObjectStore.
type Objects struct {
	mu      sync.Mutex
	BaseURL string
	Err     error
	Data    map[string][]byte
	Opts    map[string]publish.UploadOptions
	Calls   []string
}

func NewObjects() *Objects {
	return &Objects{
		BaseURL: "https://store.test/storage/v1/object/public",
		Data:    map[string][]byte{},
		Opts:    map[string]publish.UploadOptions{},
	}
}

func (o *Objects) Upload(_ context.Context, bucket, path string, data []byte, opts publish.UploadOptions) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Calls = append(o.Calls, "upload")
	if o.Err != nil {
		return o.Err
	}
	key := bucket + "/" + path
	if _, ok := o.Data[key]; ok && !opts.Upsert {
		return publish.ErrObjectExists
	}
	o.Data[key] = append([]byte(nil), data...)
	o.Opts[key] = opts
	return nil
}

func (o *Objects) PublicURL(bucket, path string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Calls = append(o.Calls, "url")
	return fmt.Sprintf("%s/%s/%s", o.BaseURL, bucket, path)
}

// Records is an in-memory publish.RecordStore that also lists rows.
type Records struct {
	mu    sync.Mutex
	Err   error
	Rows  map[string][]agent.Record
	Calls []string
	seq   int
}

func NewRecords() *Records {
	return &Records{Rows: map[string][]agent.Record{}}
}

func (r *Records) Insert(_ context.Context, table string, rec agent.Record) (agent.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, "insert")
	if r.Err != nil {
		return agent.Record{}, r.Err
	}
	r.seq++
	rec.ID = fmt.Sprintf("rec-%d", r.seq)
	rec.CreatedAt = time.Date(2026, 1, 1, 0, 0, r.seq, 0, time.UTC)
	r.Rows[table] = append(r.Rows[table], rec)
	return rec, nil
}

// All returns the rows of table, oldest first.
func (r *Records) All(table string) []agent.Record {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]agent.Record(nil), r.Rows[table]...)
}

// List returns the rows of table, newest first.
func (r *Records) List(_ context.Context, table string, opts agent.ListOptions) ([]agent.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, "list")
	if r.Err != nil {
		return nil, r.Err
	}
	rows := r.Rows[table]
	out := make([]agent.Record, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, rows[i])
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

func (r *Records) Get(_ context.Context, table, id string) (agent.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, "get")
	if r.Err != nil {
		return agent.Record{}, r.Err
	}
	for _, rec := range r.Rows[table] {
		if rec.ID == id {
			return rec, nil
		}
	}
	return agent.Record{}, agent.ErrNotFound
}
