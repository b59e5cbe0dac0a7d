// Package sqlite is a local record store for published agents.
package sqlite

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/youruser/soulcard/internal/agent"
	"github.com/youruser/soulcard/internal/publish"
)

// CurrentSchemaVersion is the latest schema version.
const CurrentSchemaVersion = 1

// FileName is the database file created under the data directory.
const FileName = "soulcard.db"

// Store keeps agent rows in SQLite. Only agent.Table exists.
type Store struct {
	db  *sql.DB
	now func() time.Time

	mu      sync.Mutex
	entropy io.Reader
}

// Open initializes the database at dir/soulcard.db, creating dir if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	dsn := filepath.Join(dir, FileName) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{
		db:      db,
		now:     time.Now,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func migrate(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return fmt.Errorf("failed to get user_version: %w", err)
	}

	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS agents (
		  id            TEXT PRIMARY KEY,
		  name          TEXT NOT NULL,
		  model         TEXT NOT NULL,
		  serial_number TEXT NOT NULL,
		  soul_text     TEXT NOT NULL,
		  theme_color   TEXT NOT NULL,
		  image_url     TEXT NOT NULL,
		  created_at    INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_agents_created
		ON agents(created_at DESC, id DESC);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", 1)); err != nil {
			return fmt.Errorf("failed to set user_version: %w", err)
		}
	}
	return nil
}

func checkTable(table string) error {
	if table != agent.Table {
		return fmt.Errorf("sqlite: unknown table %q", table)
	}
	return nil
}

func (s *Store) newID(t time.Time) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := ulid.New(ulid.Timestamp(t), s.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Insert assigns an id and creation time and stores the row.
func (s *Store) Insert(ctx context.Context, table string, rec agent.Record) (agent.Record, error) {
	if err := checkTable(table); err != nil {
		return agent.Record{}, err
	}
	now := s.now().UTC().Truncate(time.Millisecond)
	id, err := s.newID(now)
	if err != nil {
		return agent.Record{}, err
	}
	rec.ID = id
	rec.CreatedAt = now

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO agents (id, name, model, serial_number, soul_text, theme_color, image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.Model, rec.SerialNumber, rec.SoulText, rec.ThemeColor, rec.ImageURL, now.UnixMilli())
	if err != nil {
		return agent.Record{}, fmt.Errorf("insert agent: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n != 1 {
		return agent.Record{}, publish.ErrNotSingleRow
	}
	return rec, nil
}

// List returns rows newest first.
func (s *Store) List(ctx context.Context, table string, opts agent.ListOptions) ([]agent.Record, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	limit := -1
	if opts.Limit > 0 {
		limit = opts.Limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, model, serial_number, soul_text, theme_color, image_url, created_at
		FROM agents ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	out := []agent.Record{}
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, table, id string) (agent.Record, error) {
	if err := checkTable(table); err != nil {
		return agent.Record{}, err
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, model, serial_number, soul_text, theme_color, image_url, created_at
		FROM agents WHERE id = ?`, id)
	rec, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return agent.Record{}, fmt.Errorf("%w: %s", agent.ErrNotFound, id)
	}
	return rec, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(sc scanner) (agent.Record, error) {
	var rec agent.Record
	var created int64
	err := sc.Scan(&rec.ID, &rec.Name, &rec.Model, &rec.SerialNumber, &rec.SoulText, &rec.ThemeColor, &rec.ImageURL, &created)
	if err != nil {
		return agent.Record{}, err
	}
	rec.CreatedAt = time.UnixMilli(created).UTC()
	return rec, nil
}

var _ publish.RecordStore = (*Store)(nil)
