// Package config loads soulcard settings from a TOML file and the
// environment.
//
// Precedence, lowest first: DefaultConfig, the TOML file, environment
// variables. Missing backend credentials are not a load error; Validate
// reports them so the caller can log and carry on.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	apperrors "github.com/youruser/soulcard/internal/errors"
)

// DefaultFile is read when no explicit path is given and it exists.
const DefaultFile = "soulcard.toml"

// Backend kinds.
const (
	BackendSupabase = "supabase"
	BackendLocal    = "local"
	BackendMongo    = "mongo"
)

// Duration is a time.Duration written as "60s" or "1m30s" in TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

type Config struct {
	// Backend selects the object and record stores: supabase, local or mongo.
	Backend string `toml:"backend"`

	Server   ServerConfig   `toml:"server"`
	Supabase SupabaseConfig `toml:"supabase"`
	Local    LocalConfig    `toml:"local"`
	Mongo    MongoConfig    `toml:"mongo"`
	Publish  PublishConfig  `toml:"publish"`
	Cache    CacheConfig    `toml:"cache"`
	Export   ExportConfig   `toml:"export"`
	Render   RenderConfig   `toml:"render"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type SupabaseConfig struct {
	URL     string `toml:"url"`
	AnonKey string `toml:"anon_key"`
}

// LocalConfig places the sqlite database and uploaded objects under Dir.
// Objects are served from PublicURL.
type LocalConfig struct {
	Dir       string `toml:"dir"`
	PublicURL string `toml:"public_url"`
}

type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

type PublishConfig struct {
	Bucket       string `toml:"bucket"`
	Table        string `toml:"table"`
	CacheControl string `toml:"cache_control"`
	// StepTimeout bounds each publish step. Zero disables the bound.
	StepTimeout Duration `toml:"step_timeout"`
	Scale       float64  `toml:"scale"`
}

type CacheConfig struct {
	// Kind is none, memory or redis.
	Kind     string   `toml:"kind"`
	RedisURL string   `toml:"redis_url"`
	TTL      Duration `toml:"ttl"`
}

type ExportConfig struct {
	Dir string `toml:"dir"`
}

// RenderConfig tunes card drawing. FallbackFont is a TTF/OTF file used for
// runes the embedded Go fonts lack, such as Hangul soul text.
type RenderConfig struct {
	FallbackFont string `toml:"fallback_font"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend: BackendSupabase,
		Server:  ServerConfig{Addr: "127.0.0.1:8080"},
		Local: LocalConfig{
			Dir:       "soulcard-data",
			PublicURL: "http://localhost:8080/objects",
		},
		Mongo: MongoConfig{Database: "soulcard"},
		Publish: PublishConfig{
			Bucket:       "cards",
			Table:        "agents",
			CacheControl: "3600",
			StepTimeout:  Duration{60 * time.Second},
			Scale:        2,
		},
		Cache: CacheConfig{
			Kind:     "memory",
			RedisURL: "redis://localhost:6379/0",
			TTL:      Duration{30 * time.Second},
		},
		Export: ExportConfig{Dir: "."},
	}
}

// Load reads path over the defaults and applies the environment. An empty
// path reads DefaultFile when present.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("read config %s: unknown keys %v", path, undecoded)
		}
	}
	ApplyEnv(cfg, os.Getenv)
	return cfg, nil
}

// ApplyEnv overrides cfg with non-empty environment values read via getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	set := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				*dst = v
				return
			}
		}
	}
	set(&cfg.Supabase.URL, "SUPABASE_URL", "NEXT_PUBLIC_SUPABASE_URL")
	set(&cfg.Supabase.AnonKey, "SUPABASE_ANON_KEY", "NEXT_PUBLIC_SUPABASE_ANON_KEY")
	set(&cfg.Backend, "SOULCARD_BACKEND")
	set(&cfg.Server.Addr, "SOULCARD_ADDR")
	set(&cfg.Local.Dir, "SOULCARD_DATA_DIR")
	set(&cfg.Local.PublicURL, "SOULCARD_PUBLIC_URL")
	set(&cfg.Mongo.URI, "SOULCARD_MONGO_URI")
	set(&cfg.Cache.Kind, "SOULCARD_CACHE")
	set(&cfg.Cache.RedisURL, "SOULCARD_REDIS_URL")
	set(&cfg.Render.FallbackFont, "SOULCARD_FONT")
}

// Validate reports settings that prevent publishing. The UI can still run
// with an invalid config.
func (c *Config) Validate() error {
	var errs []error
	switch c.Backend {
	case BackendSupabase:
		var missing []string
		if c.Supabase.URL == "" {
			missing = append(missing, "SUPABASE_URL")
		}
		if c.Supabase.AnonKey == "" {
			missing = append(missing, "SUPABASE_ANON_KEY")
		}
		if len(missing) > 0 {
			errs = append(errs, apperrors.New(apperrors.ErrCodeConfigMissing,
				"Supabase credentials are not configured (missing %s)", strings.Join(missing, ", ")))
		}
	case BackendMongo:
		if c.Mongo.URI == "" {
			errs = append(errs, apperrors.New(apperrors.ErrCodeConfigMissing, "mongo.uri is not configured"))
		}
	case BackendLocal:
		if c.Local.Dir == "" {
			errs = append(errs, apperrors.New(apperrors.ErrCodeConfigMissing, "local.dir is not configured"))
		}
	default:
		errs = append(errs, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown backend %q", c.Backend))
	}
	if c.Publish.Scale <= 0 {
		errs = append(errs, apperrors.New(apperrors.ErrCodeInvalidInput, "publish.scale must be positive"))
	}
	if c.Publish.StepTimeout.Duration < 0 {
		errs = append(errs, apperrors.New(apperrors.ErrCodeInvalidInput, "publish.step_timeout must not be negative"))
	}
	return errors.Join(errs...)
}
