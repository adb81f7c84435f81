package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/NOTIVEAPP/notive-backend/internal/config"
	"github.com/NOTIVEAPP/notive-backend/internal/database"
	"github.com/NOTIVEAPP/notive-backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// setupTestDB opens a migrated sqlite database in a per-test temp dir.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Init(config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// fixedClock returns a now func that can be moved forward by the test.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) Now() time.Time { return c.t }

type testServices struct {
	db    *gorm.DB
	auth  *AuthService
	lists *ListService
	items *ItemService
	clock *fixedClock
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db := setupTestDB(t)
	clock := &fixedClock{t: time.Unix(1_700_000_000, 0)}

	auth := NewAuthService(db, bcrypt.MinCost)
	auth.now = clock.Now
	lists := NewListService(db)
	lists.now = clock.Now
	items := NewItemService(db, lists)
	items.now = clock.Now

	return &testServices{db: db, auth: auth, lists: lists, items: items, clock: clock}
}

func (ts *testServices) user(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := ts.auth.Register(context.Background(), "User "+email, email, "Passw0rd!")
	require.NoError(t, err)
	return u
}

func (ts *testServices) list(t *testing.T, userID uint, name string) uint {
	t.Helper()
	c, err := ts.lists.Create(context.Background(), userID, name)
	require.NoError(t, err)
	return c.ID
}

func (ts *testServices) item(t *testing.T, userID, listID uint, name string) uint {
	t.Helper()
	c, _, err := ts.items.Create(context.Background(), userID, listID, NewItem{Name: name})
	require.NoError(t, err)
	return c.ID
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
