package cli

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/youruser/soulcard/internal/backend"
	"github.com/youruser/soulcard/internal/cache"
	"github.com/youruser/soulcard/internal/capture"
	"github.com/youruser/soulcard/internal/card"
	"github.com/youruser/soulcard/internal/config"
	"github.com/youruser/soulcard/internal/form"
	"github.com/youruser/soulcard/internal/gallery"
	"github.com/youruser/soulcard/internal/publish"
)

// app wires configuration, stores and the form controller for one command.
// A backend that fails to open is logged and leaves publishing disabled.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	renderer *card.Renderer
	backend  *backend.Backend
	cache    cache.Cache
	gallery  *gallery.Service
	form     *form.Controller
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	logger := loggerFromContext(ctx)
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	r, err := card.NewRenderer(card.WithFallbackFont(cfg.Render.FallbackFont))
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, logger: logger, renderer: r}

	opts := []form.Option{form.WithLogger(logger), form.WithScale(cfg.Publish.Scale)}
	b, err := backend.Open(ctx, cfg)
	if err != nil {
		logger.Error("publish backend unavailable", "backend", cfg.Backend, "err", err)
	} else {
		a.backend = b
		a.cache, err = cache.Open(ctx, cfg.Cache.Kind, cfg.Cache.RedisURL)
		if err != nil {
			logger.Warn("gallery cache disabled", "err", err)
			a.cache = cache.NewNullCache()
		}
		a.gallery = &gallery.Service{
			Source: b.Records,
			Cache:  a.cache,
			TTL:    cfg.Cache.TTL.Duration,
			Table:  cfg.Publish.Table,
			Logger: logger,
		}
		pub := &publish.Publisher{
			Objects:      b.Objects,
			Records:      b.Records,
			Bucket:       cfg.Publish.Bucket,
			Table:        cfg.Publish.Table,
			CacheControl: cfg.Publish.CacheControl,
			Scale:        cfg.Publish.Scale,
			StepTimeout:  cfg.Publish.StepTimeout.Duration,
			Logger:       logger,
			OnState:      func(s publish.State) { logger.Debug("publish", "state", s) },
		}
		opts = append(opts,
			form.WithPublisher(pub),
			form.WithPublishHook(func(publish.Outcome) {
				if err := a.gallery.Invalidate(context.Background()); err != nil {
					logger.Warn("gallery cache invalidation failed", "err", err)
				}
			}),
		)
	}

	a.form = form.New(opts...)
	a.mount(card.NewHTTPPhotoLoader())
	return a, nil
}

// mount binds the form to the renderer, fetching photos through photos.
func (a *app) mount(photos card.PhotoLoader) {
	a.form.Mount(func(d card.Data) capture.Surface {
		return card.NewSurface(a.renderer, photos, d)
	})
}

func (a *app) Close() error {
	a.form.Unmount()
	var errs []error
	if a.cache != nil {
		errs = append(errs, a.cache.Close())
	}
	errs = append(errs, a.backend.Close(), a.renderer.Close())
	return errors.Join(errs...)
}
