package gallery_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youruser/soulcard/internal/agent"
	"github.com/youruser/soulcard/internal/cache"
	apperrors "github.com/youruser/soulcard/internal/errors"
	"github.com/youruser/soulcard/internal/gallery"
	"github.com/youruser/soulcard/internal/publish/publishtest"
)

func seed(t *testing.T, records *publishtest.Records) {
	t.Helper()
	ctx := context.Background()
	for _, r := range []agent.Record{
		{Name: "Hong Hyung Bot", Model: "AI Agent", SerialNumber: "AGENT-MAIN-001", SoulText: "Guardian of the lab", ThemeColor: "#00d2ff"},
		{Name: "Nova", Model: "Assistant", SerialNumber: "NV-7", SoulText: "Writes poems at night", ThemeColor: "#ff006e"},
		{Name: "Echo", Model: "AI Agent", SerialNumber: "EC-2", SoulText: "Repeats the lab motto", ThemeColor: "#FF006E"},
	} {
		_, err := records.Insert(ctx, agent.Table, r)
		require.NoError(t, err)
	}
}

func TestFilter(t *testing.T) {
	recs := []agent.Record{
		{Name: "Nova", Model: "Assistant", SoulText: "poems", ThemeColor: "#ff006e"},
		{Name: "Echo", Model: "AI Agent", SoulText: "lab motto", ThemeColor: "#00d2ff"},
	}
	tests := []struct {
		name string
		opt  gallery.FilterOptions
		want []string
	}{
		{"empty", gallery.FilterOptions{}, []string{"Nova", "Echo"}},
		{"model", gallery.FilterOptions{Models: []string{"ai agent"}}, []string{"Echo"}},
		{"color", gallery.FilterOptions{ThemeColors: []string{"#FF006E"}}, []string{"Nova"}},
		{"words all match", gallery.FilterOptions{FreeWords: "LAB echo"}, []string{"Echo"}},
		{"words partial miss", gallery.FilterOptions{FreeWords: "lab poems"}, []string{}},
		{"limit", gallery.FilterOptions{Limit: 1}, []string{"Nova"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, r := range gallery.Filter(recs, tt.opt) {
				got = append(got, r.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListNewestFirst(t *testing.T) {
	records := publishtest.NewRecords()
	seed(t, records)
	svc := &gallery.Service{Source: records}

	recs, err := svc.List(context.Background(), gallery.FilterOptions{})
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "Echo", recs[0].Name)
	assert.Equal(t, "Hong Hyung Bot", recs[2].Name)

	recs, err = svc.List(context.Background(), gallery.FilterOptions{ThemeColors: []string{"#ff006e"}, Limit: 1})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Echo", recs[0].Name)
}

func TestListIsCachedUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	records := publishtest.NewRecords()
	seed(t, records)
	svc := &gallery.Service{Source: records, Cache: cache.NewMemoryCache()}

	_, err := svc.List(ctx, gallery.FilterOptions{})
	require.NoError(t, err)
	_, err = records.Insert(ctx, agent.Table, agent.Record{Name: "Late"})
	require.NoError(t, err)

	recs, err := svc.List(ctx, gallery.FilterOptions{})
	require.NoError(t, err)
	assert.Len(t, recs, 3, "served from cache")

	require.NoError(t, svc.Invalidate(ctx))
	recs, err = svc.List(ctx, gallery.FilterOptions{})
	require.NoError(t, err)
	assert.Len(t, recs, 4)
	assert.Equal(t, "Late", recs[0].Name)

	lists := 0
	for _, c := range records.Calls {
		if c == "list" {
			lists++
		}
	}
	assert.Equal(t, 2, lists)
}

func TestGet(t *testing.T) {
	records := publishtest.NewRecords()
	seed(t, records)
	svc := &gallery.Service{Source: records}

	rec, err := svc.Get(context.Background(), "rec-2")
	require.NoError(t, err)
	assert.Equal(t, "Nova", rec.Name)

	_, err = svc.Get(context.Background(), "rec-99")
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeNotFound))
}

func TestUnconfigured(t *testing.T) {
	svc := &gallery.Service{}
	_, err := svc.List(context.Background(), gallery.FilterOptions{})
	assert.True(t, apperrors.Is(err, apperrors.ErrCodeConfigMissing))
}
