// Package gallery lists published agents.
package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/youruser/soulcard/internal/agent"
	"github.com/youruser/soulcard/internal/cache"
	apperrors "github.com/youruser/soulcard/internal/errors"
)

// DefaultTTL is how long a listing stays cached.
const DefaultTTL = 30 * time.Second

// Source is the read side of a record store.
type Source interface {
	List(ctx context.Context, table string, opts agent.ListOptions) ([]agent.Record, error)
	Get(ctx context.Context, table, id string) (agent.Record, error)
}

// Service reads the gallery through a cache of the full listing.
type Service struct {
	Source Source
	Cache  cache.Cache
	TTL    time.Duration
	Table  string
	Logger *log.Logger
}

func (s *Service) cacheKey() string {
	return "gallery:" + s.table()
}

// List returns the published agents matching opt, newest first.
func (s *Service) List(ctx context.Context, opt FilterOptions) ([]agent.Record, error) {
	if s.Source == nil {
		return nil, apperrors.New(apperrors.ErrCodeConfigMissing, "gallery backend is not configured")
	}
	recs, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	if opt.empty() {
		if opt.Limit > 0 && len(recs) > opt.Limit {
			recs = recs[:opt.Limit]
		}
		return recs, nil
	}
	return Filter(recs, opt), nil
}

// Get returns one published agent.
func (s *Service) Get(ctx context.Context, id string) (agent.Record, error) {
	if s.Source == nil {
		return agent.Record{}, apperrors.New(apperrors.ErrCodeConfigMissing, "gallery backend is not configured")
	}
	rec, err := s.Source.Get(ctx, s.table(), id)
	if errors.Is(err, agent.ErrNotFound) {
		return agent.Record{}, apperrors.Wrap(apperrors.ErrCodeNotFound, err, "agent %s not found", id)
	}
	if err != nil {
		return agent.Record{}, apperrors.Wrap(apperrors.ErrCodeInternal, err, "failed to load agent")
	}
	return rec, nil
}

// Invalidate drops the cached listing.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}
	return s.Cache.Delete(ctx, s.cacheKey())
}

func (s *Service) all(ctx context.Context) ([]agent.Record, error) {
	logger := s.logger()
	key := s.cacheKey()
	if s.Cache != nil {
		data, hit, err := s.Cache.Get(ctx, key)
		if err != nil {
			logger.Warn("gallery cache read failed", "err", err)
		} else if hit {
			var recs []agent.Record
			if err := json.Unmarshal(data, &recs); err == nil {
				return recs, nil
			}
			logger.Warn("dropping corrupt gallery cache entry", "key", key)
		}
	}

	recs, err := s.Source.List(ctx, s.table(), agent.ListOptions{})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "failed to list agents")
	}
	if s.Cache != nil {
		data, err := json.Marshal(recs)
		if err == nil {
			err = s.Cache.Set(ctx, key, data, s.ttl())
		}
		if err != nil {
			logger.Warn("gallery cache write failed", "err", err)
		}
	}
	return recs, nil
}

func (s *Service) table() string {
	if s.Table == "" {
		return agent.Table
	}
	return s.Table
}

func (s *Service) ttl() time.Duration {
	if s.TTL == 0 {
		return DefaultTTL
	}
	return s.TTL
}

func (s *Service) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}
