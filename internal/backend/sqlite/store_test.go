package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/soulcard/internal/agent"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInsertAssignsIDAndTime(t *testing.T) {
	s := openTest(t)
	at := time.Date(2026, 3, 4, 5, 6, 7, 8_000_000, time.UTC)
	s.now = func() time.Time { return at }

	rec, err := s.Insert(context.Background(), agent.Table, agent.Record{
		Name: "Hong Hyung Bot", Model: "AI Agent", SerialNumber: "AGENT-MAIN-001",
		SoulText: "s", ThemeColor: "#00d2ff", ImageURL: "http://x/objects/cards/a.png",
	})
	require.NoError(t, err)
	assert.Len(t, rec.ID, 26)
	assert.Equal(t, at, rec.CreatedAt)

	got, err := s.Get(context.Background(), agent.Table, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestListNewestFirst(t *testing.T) {
	s := openTest(t)
	ctx := context.Background()
	for _, name := range []string{"a", "b", "c"} {
		_, err := s.Insert(ctx, agent.Table, agent.Record{Name: name})
		require.NoError(t, err)
	}

	recs, err := s.List(ctx, agent.Table, agent.ListOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "c", recs[0].Name)
	assert.Equal(t, "a", recs[2].Name)

	recs, err = s.List(ctx, agent.Table, agent.ListOptions{Limit: 1})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "c", recs[0].Name)
}

func TestGetMissing(t *testing.T) {
	s := openTest(t)
	_, err := s.Get(context.Background(), agent.Table, "nope")
	assert.ErrorIs(t, err, agent.ErrNotFound)
}

func TestUnknownTable(t *testing.T) {
	s := openTest(t)
	_, err := s.Insert(context.Background(), "users", agent.Record{})
	assert.ErrorContains(t, err, "unknown table")
}

func TestReopenKeepsRows(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	_, err = s.Insert(context.Background(), agent.Table, agent.Record{Name: "kept"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()
	recs, err := s.List(context.Background(), agent.Table, agent.ListOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "kept", recs[0].Name)
}
