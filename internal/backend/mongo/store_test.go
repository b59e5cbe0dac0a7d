package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/soulcard/internal/agent"
)

func TestStore(t *testing.T) {
	uri := os.Getenv("SOULCARD_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("SOULCARD_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := Open(ctx, uri, "soulcard_test")
	require.NoError(t, err)
	defer s.Close()
	table := "agents_" + time.Now().Format("150405.000000")
	defer s.db.Collection(table).Drop(ctx)

	first, err := s.Insert(ctx, table, agent.Record{Name: "a"})
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	second, err := s.Insert(ctx, table, agent.Record{Name: "b"})
	require.NoError(t, err)

	recs, err := s.List(ctx, table, agent.ListOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, second.ID, recs[0].ID)

	got, err := s.Get(ctx, table, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", got.Name)

	_, err = s.Get(ctx, table, "missing")
	assert.ErrorIs(t, err, agent.ErrNotFound)
}
