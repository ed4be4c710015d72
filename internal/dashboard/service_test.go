package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDashboardTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:dashboard_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := []string{
		`CREATE TABLE IF NOT EXISTS ingredients (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS grns (
  id TEXT PRIMARY KEY,
  issued_date DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  type TEXT NOT NULL,
  selling_price NUMERIC NOT NULL DEFAULT 0,
  batch_size INTEGER NOT NULL DEFAULT 0,
  expire_duration INTEGER NOT NULL DEFAULT 0,
  recipe_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS batches (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  production_date DATETIME NOT NULL,
  initial_quantity INTEGER NOT NULL,
  available_quantity INTEGER NOT NULL,
  date_of_expiry DATETIME NOT NULL,
  product_id TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  product_id TEXT NOT NULL,
  batch_id TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL DEFAULT '',
  contact_no TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS locations (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  address TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

type fakeCache struct {
	values map[string]string
	gets   int
	sets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.gets++
	v, ok := c.values[key]
	if !ok {
		return "", assert.AnError
	}
	return v, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.sets++
	c.values[key] = string(value.([]byte))
	return nil
}

func (c *fakeCache) CacheKey(parts ...string) string {
	return "test:" + parts[0]
}

func seedBatch(t *testing.T, db *gorm.DB, expiry time.Time) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, db.Create(&models.Batch{
		ID:                uuid.New(),
		Name:              "Batch of Product: Helles of type: Lager",
		ProductionDate:    now,
		InitialQuantity:   10,
		AvailableQuantity: 10,
		DateOfExpiry:      expiry,
		ProductID:         uuid.New(),
	}).Error)
}

func TestDashboardTotals(t *testing.T) {
	t.Parallel()

	db := setupDashboardTestDB(t)
	svc, err := NewService(NewRepository(db), nil, 30*time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	now := time.Now().UTC()
	seedBatch(t, db, now.Add(720*time.Hour))
	seedBatch(t, db, now.Add(-time.Hour))
	require.NoError(t, db.Create(&models.Ingredient{ID: uuid.New(), Name: "Hops"}).Error)
	require.NoError(t, db.Create(&models.Ingredient{ID: uuid.New(), Name: "Malt"}).Error)
	require.NoError(t, db.Create(&models.User{ID: uuid.New(), Name: "Maya", Email: "maya@brewery.test"}).Error)
	require.NoError(t, db.Create(&models.Location{ID: uuid.New(), Name: "Taproom"}).Error)

	totals, err := svc.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals.TotalBatches)
	assert.Equal(t, int64(1), totals.ExpiredBatches)
	assert.Equal(t, int64(2), totals.TotalIngredients)
	assert.Equal(t, int64(1), totals.TotalUsers)
	assert.Equal(t, int64(1), totals.TotalLocations)
	assert.Zero(t, totals.TotalProducts)
	assert.Zero(t, totals.TotalGRNs)
	assert.Zero(t, totals.TotalOrders)
}

func TestDashboardCacheHitSkipsDatabase(t *testing.T) {
	t.Parallel()

	db := setupDashboardTestDB(t)
	cache := newFakeCache()
	svc, err := NewService(NewRepository(db), cache, 30*time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	seedBatch(t, db, time.Now().UTC().Add(720*time.Hour))

	first, err := svc.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.TotalBatches)
	assert.Equal(t, 1, cache.sets)

	// A second batch lands, but the cached snapshot is still served.
	seedBatch(t, db, time.Now().UTC().Add(720*time.Hour))

	second, err := svc.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), second.TotalBatches)
	assert.Equal(t, 1, cache.sets, "cache hit does not re-store")
}

func TestDashboardCorruptCacheFallsBack(t *testing.T) {
	t.Parallel()

	db := setupDashboardTestDB(t)
	cache := newFakeCache()
	cache.values["test:dashboard"] = "{not json"
	svc, err := NewService(NewRepository(db), cache, 30*time.Second)
	require.NoError(t, err)

	totals, err := svc.Totals(context.Background())
	require.NoError(t, err)
	assert.Zero(t, totals.TotalBatches)
	assert.Equal(t, 1, cache.sets, "fresh totals overwrite the bad entry")
}
