// Package form holds the editable card state and runs the export and
// publish actions against it.
//
// A Controller owns exactly one card.Data value. Edits are last-write-wins
// and never validated. Export and Publish share one busy flag: while either
// is running, both triggers are inert and return StatusBusy immediately.
package form

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/youruser/soulcard/internal/capture"
	"github.com/youruser/soulcard/internal/card"
	apperrors "github.com/youruser/soulcard/internal/errors"
	"github.com/youruser/soulcard/internal/export"
	"github.com/youruser/soulcard/internal/publish"
)

// SurfaceFactory binds a data snapshot to something capturable. It plays
// the role of the mounted card region.
type SurfaceFactory func(d card.Data) capture.Surface

// Publisher is the publish path as seen by the controller.
type Publisher interface {
	Publish(ctx context.Context, s capture.Surface, d card.Data) (*publish.Outcome, error)
}

// Option configures a Controller.
type Option func(*Controller)

func WithPublisher(p Publisher) Option {
	return func(c *Controller) { c.pub = p }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithScale sets the export capture scale (default capture.DefaultScale).
func WithScale(s float64) Option {
	return func(c *Controller) { c.scale = s }
}

// WithPublishHook registers a callback run after every successful publish.
func WithPublishHook(fn func(publish.Outcome)) Option {
	return func(c *Controller) { c.onPublish = append(c.onPublish, fn) }
}

type Controller struct {
	mu    sync.Mutex
	data  card.Data
	busy  bool
	mount SurfaceFactory

	pub       Publisher
	scale     float64
	logger    *log.Logger
	onPublish []func(publish.Outcome)
}

// New returns a controller holding card.DefaultData.
func New(opts ...Option) *Controller {
	c := &Controller{data: card.DefaultData()}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// Mount attaches the card region. Until then actions are silent no-ops.
func (c *Controller) Mount(f SurfaceFactory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mount = f
}

func (c *Controller) Unmount() {
	c.Mount(nil)
}

func (c *Controller) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mount != nil
}

// Data returns a copy of the current card data.
func (c *Controller) Data() card.Data {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}

// Busy reports whether an action is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Load replaces every field at once.
func (c *Controller) Load(d card.Data) {
	c.edit(func(dst *card.Data) { *dst = d })
}

// Reset restores the default values.
func (c *Controller) Reset() {
	c.edit(func(d *card.Data) { *d = card.DefaultData() })
}

func (c *Controller) SetName(v string)       { c.edit(func(d *card.Data) { d.Name = v }) }
func (c *Controller) SetType(v string)       { c.edit(func(d *card.Data) { d.Type = v }) }
func (c *Controller) SetSerial(v string)     { c.edit(func(d *card.Data) { d.Serial = v }) }
func (c *Controller) SetSoulText(v string)   { c.edit(func(d *card.Data) { d.SoulText = v }) }
func (c *Controller) SetThemeColor(v string) { c.edit(func(d *card.Data) { d.ThemeColor = v }) }
func (c *Controller) SetImageURL(v string)   { c.edit(func(d *card.Data) { d.ImageURL = v }) }

// SelectPreset overwrites the theme color with the named preset.
func (c *Controller) SelectPreset(name string) error {
	p, ok := LookupPreset(name)
	if !ok {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "unknown preset: %s", name)
	}
	c.SetThemeColor(p.Value)
	return nil
}

// Update is a partial edit; nil fields are left alone.
type Update struct {
	Name       *string `json:"name,omitempty"`
	Type       *string `json:"type,omitempty"`
	Serial     *string `json:"serial,omitempty"`
	SoulText   *string `json:"soul_text,omitempty"`
	ThemeColor *string `json:"theme_color,omitempty"`
	ImageURL   *string `json:"image_url,omitempty"`
	Preset     *string `json:"preset,omitempty"`
}

// Apply performs every set field of u as one edit. A preset is applied
// after ThemeColor, so it wins when both are given.
func (c *Controller) Apply(u Update) (card.Data, error) {
	var preset Preset
	if u.Preset != nil {
		p, ok := LookupPreset(*u.Preset)
		if !ok {
			return c.Data(), apperrors.New(apperrors.ErrCodeInvalidInput, "unknown preset: %s", *u.Preset)
		}
		preset = p
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&c.data.Name, u.Name)
	set(&c.data.Type, u.Type)
	set(&c.data.Serial, u.Serial)
	set(&c.data.SoulText, u.SoulText)
	set(&c.data.ThemeColor, u.ThemeColor)
	set(&c.data.ImageURL, u.ImageURL)
	if u.Preset != nil {
		c.data.ThemeColor = preset.Value
	}
	return c.data, nil
}

// Surface returns a capturable surface for the current data, or nil when
// nothing is mounted.
func (c *Controller) Surface() capture.Surface {
	_, s := c.snapshot()
	return s
}

// Export captures the card and saves it through saver.
func (c *Controller) Export(ctx context.Context, saver export.Saver) Result {
	if !c.acquire() {
		return busy(ActionExport)
	}
	defer c.release()

	d, s := c.snapshot()
	bmp, err := capture.Capture(ctx, s, capture.Options{Scale: c.scale})
	if err != nil {
		c.logger.Error("Failed to generate image", "err", err)
		return failed(ActionExport, err)
	}
	if bmp == nil {
		return Result{Action: ActionExport, Status: StatusSkipped}
	}
	name, err := export.Export(ctx, bmp, d.Serial, saver)
	if err != nil {
		c.logger.Error("Failed to generate image", "err", err)
		return failed(ActionExport, err)
	}
	c.logger.Debug("exported card", "file", name)
	return Result{Action: ActionExport, Status: StatusDone, Filename: name}
}

// Publish runs the publish path on a snapshot of the current data.
func (c *Controller) Publish(ctx context.Context) Result {
	if !c.acquire() {
		return busy(ActionPublish)
	}
	defer c.release()

	d, s := c.snapshot()
	if s == nil || !s.Mounted() {
		return Result{Action: ActionPublish, Status: StatusSkipped}
	}
	if c.pub == nil {
		err := apperrors.New(apperrors.ErrCodeConfigMissing, "publish backend is not configured")
		return failed(ActionPublish, err)
	}
	out, err := c.pub.Publish(ctx, s, d)
	if err != nil {
		c.logger.Error("Failed to publish card", "err", err)
		return failed(ActionPublish, err)
	}
	if out == nil {
		return Result{Action: ActionPublish, Status: StatusSkipped}
	}
	for _, fn := range c.onPublish {
		fn(*out)
	}
	return Result{
		Action:    ActionPublish,
		Status:    StatusDone,
		Notice:    publishedNotice(out.Record.ID, out.PublicURL),
		RecordID:  out.Record.ID,
		PublicURL: out.PublicURL,
	}
}

func (c *Controller) edit(fn func(*card.Data)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.data)
}

func (c *Controller) snapshot() (card.Data, capture.Surface) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mount == nil {
		return c.data, nil
	}
	return c.data, c.mount(c.data)
}

func (c *Controller) acquire() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return false
	}
	c.busy = true
	return true
}

func (c *Controller) release() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
}

func busy(a Action) Result {
	return Result{Action: a, Status: StatusBusy, Kind: apperrors.ErrCodeBusy}
}
