package locations

import (
	"context"
	"testing"

	"github.com/brewopshq/brewhaus-backend/internal/users"
	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupLocationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:locations_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL DEFAULT '',
  contact_no TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS locations (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	require.NoError(t, db.Exec(`CREATE TABLE IF NOT EXISTS location_users (
  location_id TEXT NOT NULL,
  user_id TEXT NOT NULL,
  PRIMARY KEY (location_id, user_id)
);`).Error)
	return db
}

type locationsFixture struct {
	svc      Service
	usersSvc users.Service
}

func newLocationsFixture(t *testing.T, db *gorm.DB) *locationsFixture {
	t.Helper()

	userRepo := users.NewRepository(db)
	usersSvc, err := users.NewService(userRepo)
	require.NoError(t, err)

	svc, err := NewService(NewRepository(db), userRepo)
	require.NoError(t, err)
	return &locationsFixture{svc: svc, usersSvc: usersSvc}
}

func TestLocationLifecycle(t *testing.T) {
	t.Parallel()

	db := setupLocationsTestDB(t)
	f := newLocationsFixture(t, db)
	ctx := context.Background()

	created, err := f.svc.Add(ctx, CreateLocationInput{Name: "Taproom", Address: "12 Brewer St"})
	require.NoError(t, err)
	assert.Equal(t, "Taproom", created.Name)

	updated, err := f.svc.Update(ctx, created.ID, UpdateLocationInput{Name: "Cellar", Address: "3 Cask Ln"})
	require.NoError(t, err)
	assert.Equal(t, "Cellar", updated.Name)
	assert.Equal(t, "3 Cask Ln", updated.Address)

	got, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cellar", got.Name)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.svc.Delete(ctx, created.ID))
	list, err = f.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLocationAssignAndRemoveUser(t *testing.T) {
	t.Parallel()

	db := setupLocationsTestDB(t)
	f := newLocationsFixture(t, db)
	ctx := context.Background()

	location, err := f.svc.Add(ctx, CreateLocationInput{Name: "Brewhouse"})
	require.NoError(t, err)
	user, err := f.usersSvc.Add(ctx, users.CreateUserInput{Name: "Maya", Email: "maya@brewery.test"})
	require.NoError(t, err)

	withUsers, err := f.svc.AssignUser(ctx, user.ID, location.ID)
	require.NoError(t, err)
	require.Len(t, withUsers.Users, 1)
	assert.Equal(t, user.ID, withUsers.Users[0].ID)

	all, err := f.svc.ListWithUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, all[0].Users, 1)

	withUsers, err = f.svc.RemoveUser(ctx, user.ID, location.ID)
	require.NoError(t, err)
	assert.Empty(t, withUsers.Users)
}

func TestLocationNotFoundPaths(t *testing.T) {
	t.Parallel()

	db := setupLocationsTestDB(t)
	f := newLocationsFixture(t, db)
	ctx := context.Background()

	_, err := f.svc.Get(ctx, uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Location not found", typed.Message())

	location, err := f.svc.Add(ctx, CreateLocationInput{Name: "Brewhouse"})
	require.NoError(t, err)

	_, err = f.svc.AssignUser(ctx, uuid.New(), location.ID)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, "User not found", typed.Message())

	user, err := f.usersSvc.Add(ctx, users.CreateUserInput{Name: "Maya", Email: "maya@brewery.test"})
	require.NoError(t, err)

	_, err = f.svc.AssignUser(ctx, user.ID, uuid.New())
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, "Location not found", typed.Message())

	_, err = f.svc.Add(ctx, CreateLocationInput{Name: "   "})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
