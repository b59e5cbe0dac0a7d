// Package backend opens the object and record stores selected by config.
//
//   - supabase: Storage + PostgREST
//   - local: sqlite rows, files under <dir>/objects
//   - mongo: MongoDB rows, files under <dir>/objects
package backend

import (
	"context"
	"errors"
	"io"
	"path/filepath"

	"github.com/youruser/soulcard/internal/backend/localfs"
	"github.com/youruser/soulcard/internal/backend/mongo"
	"github.com/youruser/soulcard/internal/backend/sqlite"
	"github.com/youruser/soulcard/internal/backend/supabase"
	"github.com/youruser/soulcard/internal/config"
	apperrors "github.com/youruser/soulcard/internal/errors"
	"github.com/youruser/soulcard/internal/gallery"
	"github.com/youruser/soulcard/internal/publish"
)

// Records is a record store the gallery can also read from.
type Records interface {
	publish.RecordStore
	gallery.Source
}

type Backend struct {
	Kind    string
	Objects publish.ObjectStore
	Records Records

	// ObjectsDir is set when objects live on local disk and must be served
	// by the web server.
	ObjectsDir string

	closers []io.Closer
}

// Open builds the backend for cfg. Configuration problems are returned
// before any connection is made.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b := &Backend{Kind: cfg.Backend}
	switch cfg.Backend {
	case config.BackendSupabase:
		c := supabase.New(cfg.Supabase.URL, cfg.Supabase.AnonKey)
		b.Objects, b.Records = c, c
		return b, nil
	case config.BackendLocal:
		s, err := sqlite.Open(cfg.Local.Dir)
		if err != nil {
			return nil, err
		}
		b.Records = s
		b.closers = append(b.closers, s)
	case config.BackendMongo:
		s, err := mongo.Open(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			return nil, err
		}
		b.Records = s
		b.closers = append(b.closers, s)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown backend %q", cfg.Backend)
	}
	b.ObjectsDir = filepath.Join(cfg.Local.Dir, "objects")
	b.Objects = localfs.New(b.ObjectsDir, cfg.Local.PublicURL)
	return b, nil
}

func (b *Backend) Close() error {
	if b == nil {
		return nil
	}
	var errs []error
	for _, c := range b.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
