package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/NOTIVEAPP/notive-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestListCRUD(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	u := ts.user(t, "l@example.com")

	all, err := ts.lists.ListAll(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, all)

	c, err := ts.lists.Create(ctx, u.ID, " Groceries ")
	require.NoError(t, err)
	assert.Equal(t, ts.clock.Now().Unix(), c.CreatedAt)

	l, err := ts.lists.Get(ctx, u.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", l.Name)
	assert.False(t, l.IsMuted)
	assert.False(t, l.IsArchived)

	require.NoError(t, ts.lists.Rename(ctx, u.ID, c.ID, "Food"))
	l, err = ts.lists.Get(ctx, u.ID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Food", l.Name)

	ts.list(t, u.ID, "Second")
	all, err = ts.lists.ListAll(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Food", all[0].Name)
	assert.Equal(t, "Second", all[1].Name)
}

func TestListCreate_RequiresName(t *testing.T) {
	ts := newTestServices(t)
	u := ts.user(t, "l@example.com")

	_, err := ts.lists.Create(context.Background(), u.ID, "  ")
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Error: Provide a name for this list!", ve.Message)
}

func TestListRename_ResolvesBeforeValidating(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	alice := ts.user(t, "alice@example.com")
	bob := ts.user(t, "bob@example.com")
	id := ts.list(t, alice.ID, "Mine")

	err := ts.lists.Rename(ctx, bob.ID, id, "")
	var fb *ForbiddenError
	assert.True(t, errors.As(err, &fb), "got %v", err)

	err = ts.lists.Rename(ctx, alice.ID, id, "")
	var ve *ValidationError
	assert.True(t, errors.As(err, &ve), "got %v", err)
}

func TestListToggles(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	u := ts.user(t, "l@example.com")
	id := ts.list(t, u.ID, "Toggle me")
	other := ts.list(t, u.ID, "Untouched")

	muted, err := ts.lists.ToggleMute(ctx, u.ID, id)
	require.NoError(t, err)
	assert.True(t, muted)

	archived, err := ts.lists.ToggleArchive(ctx, u.ID, id)
	require.NoError(t, err)
	assert.True(t, archived)

	muted, err = ts.lists.ToggleMute(ctx, u.ID, id)
	require.NoError(t, err)
	assert.False(t, muted)

	archived, err = ts.lists.ToggleArchive(ctx, u.ID, id)
	require.NoError(t, err)
	assert.False(t, archived)

	// only the addressed list changes
	_, err = ts.lists.ToggleMute(ctx, u.ID, id)
	require.NoError(t, err)
	l, err := ts.lists.Get(ctx, u.ID, other)
	require.NoError(t, err)
	assert.False(t, l.IsMuted)
}

func TestListDelete_RemovesItems(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	u := ts.user(t, "l@example.com")
	doomed := ts.list(t, u.ID, "Doomed")
	kept := ts.list(t, u.ID, "Kept")
	ts.item(t, u.ID, doomed, "a")
	ts.item(t, u.ID, doomed, "b")
	keptItem := ts.item(t, u.ID, kept, "c")

	require.NoError(t, ts.lists.Delete(ctx, u.ID, doomed))

	_, err := ts.lists.Get(ctx, u.ID, doomed)
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))

	var count int64
	require.NoError(t, ts.db.Model(&models.Item{}).Where("list_id = ?", doomed).Count(&count).Error)
	assert.Zero(t, count)

	_, err = ts.items.Get(ctx, u.ID, kept, keptItem)
	assert.NoError(t, err)
}

func TestListDelete_OtherUserIsForbidden(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	alice := ts.user(t, "alice@example.com")
	bob := ts.user(t, "bob@example.com")
	id := ts.list(t, alice.ID, "Mine")

	err := ts.lists.Delete(ctx, bob.ID, id)
	var fb *ForbiddenError
	require.True(t, errors.As(err, &fb))

	_, err = ts.lists.Get(ctx, alice.ID, id)
	assert.NoError(t, err)
}

func TestListDelete_RollsBackOnFailure(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	u := ts.user(t, "l@example.com")
	id := ts.list(t, u.ID, "Sticky")
	ts.item(t, u.ID, id, "a")
	ts.item(t, u.ID, id, "b")

	// fail the list row delete after the item rows are already gone
	require.NoError(t, ts.db.Callback().Delete().Before("gorm:delete").
		Register("test:fail_list_delete", func(tx *gorm.DB) {
			if tx.Statement.Table == "lists" {
				_ = tx.AddError(errors.New("disk full"))
			}
		}))

	err := ts.lists.Delete(ctx, u.ID, id)
	var se *StorageError
	require.True(t, errors.As(err, &se), "got %v", err)

	_, err = ts.lists.Get(ctx, u.ID, id)
	assert.NoError(t, err)

	var count int64
	require.NoError(t, ts.db.Model(&models.Item{}).Where("list_id = ?", id).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestListName_TooLong(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	u := ts.user(t, "l@example.com")
	long := strings.Repeat("x", 256)

	_, err := ts.lists.Create(ctx, u.ID, long)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, MsgNameTooLong, ve.Message)

	id := ts.list(t, u.ID, "Short")
	err = ts.lists.Rename(ctx, u.ID, id, long)
	require.True(t, errors.As(err, &ve), "got %v", err)
	assert.Equal(t, MsgNameTooLong, ve.Message)

	_, err = ts.lists.Create(ctx, u.ID, strings.Repeat("x", 255))
	assert.NoError(t, err)
}
