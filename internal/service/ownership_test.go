package service

import (
	"context"
	"errors"
	"testing"

	"github.com/NOTIVEAPP/notive-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveList(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	alice := ts.user(t, "alice@example.com")
	bob := ts.user(t, "bob@example.com")
	listID := ts.list(t, alice.ID, "Groceries")

	t.Run("owner finds the list", func(t *testing.T) {
		res, err := ResolveList(ctx, ts.db, listID, alice.ID, true)
		require.NoError(t, err)
		found, ok := res.(Found[models.List])
		require.True(t, ok, "got %T", res)
		assert.Equal(t, "Groceries", found.Row.Name)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		res, err := ResolveList(ctx, ts.db, listID, bob.ID, true)
		require.NoError(t, err)
		assert.IsType(t, Forbidden[models.List]{}, res)
	})

	t.Run("missing id is not found for everyone", func(t *testing.T) {
		for _, uid := range []uint{alice.ID, bob.ID} {
			res, err := ResolveList(ctx, ts.db, listID+100, uid, true)
			require.NoError(t, err)
			assert.IsType(t, NotFound[models.List]{}, res)
		}
	})

	t.Run("ownership check can be skipped", func(t *testing.T) {
		res, err := ResolveList(ctx, ts.db, listID, bob.ID, false)
		require.NoError(t, err)
		assert.IsType(t, Found[models.List]{}, res)
	})
}

func TestResolveItem(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	alice := ts.user(t, "alice@example.com")
	bob := ts.user(t, "bob@example.com")
	l1 := ts.list(t, alice.ID, "L1")
	l2 := ts.list(t, alice.ID, "L2")
	bobList := ts.list(t, bob.ID, "Bob's")
	itemID := ts.item(t, alice.ID, l1, "Milk")

	t.Run("found under its own list", func(t *testing.T) {
		res, err := ResolveItem(ctx, ts.db, l1, itemID, alice.ID, true)
		require.NoError(t, err)
		found, ok := res.(Found[models.Item])
		require.True(t, ok, "got %T", res)
		assert.Equal(t, "Milk", found.Row.Name)
		assert.Equal(t, l1, found.Row.ListID)
	})

	t.Run("under another existing list is not found", func(t *testing.T) {
		res, err := ResolveItem(ctx, ts.db, l2, itemID, alice.ID, true)
		require.NoError(t, err)
		assert.IsType(t, NotFound[models.Item]{}, res)
	})

	t.Run("under someone else's list is not found", func(t *testing.T) {
		res, err := ResolveItem(ctx, ts.db, bobList, itemID, bob.ID, true)
		require.NoError(t, err)
		assert.IsType(t, NotFound[models.Item]{}, res)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		res, err := ResolveItem(ctx, ts.db, l1, itemID, bob.ID, true)
		require.NoError(t, err)
		assert.IsType(t, Forbidden[models.Item]{}, res)
	})

	t.Run("missing item is not found", func(t *testing.T) {
		res, err := ResolveItem(ctx, ts.db, l1, itemID+100, alice.ID, true)
		require.NoError(t, err)
		assert.IsType(t, NotFound[models.Item]{}, res)
	})
}

func TestRequire(t *testing.T) {
	row, err := Require[models.List](Found[models.List]{Row: models.List{ID: 7}}, ResourceList)
	require.NoError(t, err)
	assert.Equal(t, uint(7), row.ID)

	_, err = Require[models.List](NotFound[models.List]{}, ResourceList)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, ResourceList, nf.Resource)

	_, err = Require[models.Item](Forbidden[models.Item]{}, ResourceItem)
	var fb *ForbiddenError
	require.True(t, errors.As(err, &fb))
	assert.Equal(t, ResourceItem, fb.Resource)
}
