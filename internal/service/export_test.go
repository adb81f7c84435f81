package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportRows(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	u := ts.user(t, "e@example.com")
	l1 := ts.list(t, u.ID, "First")
	ts.list(t, u.ID, "No items")
	l3 := ts.list(t, u.ID, "Third")
	ts.item(t, u.ID, l1, "a")
	done := ts.item(t, u.ID, l3, "b")

	_, err := ts.lists.ToggleMute(ctx, u.ID, l3)
	require.NoError(t, err)
	_, err = ts.items.ToggleDone(ctx, u.ID, l3, done)
	require.NoError(t, err)

	rows, err := NewExportService(ts.lists, ts.items).Rows(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "First", rows[0].ListName)
	assert.Equal(t, "a", rows[0].ItemName)
	assert.Nil(t, rows[0].FinishedAt)

	assert.Equal(t, "Third", rows[1].ListName)
	assert.True(t, rows[1].Muted)
	assert.True(t, rows[1].Done)
	require.NotNil(t, rows[1].FinishedAt)
	assert.Equal(t, time.Unix(ts.clock.Now().Unix(), 0), *rows[1].FinishedAt)
}
