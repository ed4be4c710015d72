package batches

import (
	"context"
	"testing"
	"time"

	"github.com/brewopshq/brewhaus-backend/internal/products"
	"github.com/brewopshq/brewhaus-backend/internal/recipes"
	"github.com/brewopshq/brewhaus-backend/internal/stock"
	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupBatchesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:batches_" + uuid.NewString() + "?mode=memory&cache=shared"
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
		`CREATE TABLE IF NOT EXISTS current_stocks (
  ingredient_id TEXT PRIMARY KEY,
  current_quantity INTEGER NOT NULL DEFAULT 0,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS recipes (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS recipe_ingredients (
  recipe_id TEXT NOT NULL,
  ingredient_id TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME,
  PRIMARY KEY (recipe_id, ingredient_id)
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
	}
	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

type fixture struct {
	db      *gorm.DB
	svc     Service
	product *models.Product
	hops    *models.Ingredient
	malt    *models.Ingredient
}

// newFixture seeds a lager product whose recipe needs 2 hops and 5 malt per
// unit, with 100 of each on hand.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupBatchesTestDB(t)
	svc, err := NewService(NewRepository(db), products.NewRepository(db), recipes.NewRepository(db), testTxRunner{db: db})
	require.NoError(t, err)

	hops := &models.Ingredient{ID: uuid.New(), Name: "Hops"}
	malt := &models.Ingredient{ID: uuid.New(), Name: "Malt"}
	require.NoError(t, db.Create(hops).Error)
	require.NoError(t, db.Create(malt).Error)
	require.NoError(t, db.Create(&models.CurrentStock{IngredientID: hops.ID, CurrentQuantity: 100}).Error)
	require.NoError(t, db.Create(&models.CurrentStock{IngredientID: malt.ID, CurrentQuantity: 100}).Error)

	recipe := &models.Recipe{ID: uuid.New(), Name: "Lager Recipe"}
	require.NoError(t, db.Create(recipe).Error)
	require.NoError(t, db.Create(&models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: hops.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: malt.ID, Quantity: 5}).Error)

	product := &models.Product{
		ID:             uuid.New(),
		Name:           "Helles",
		Type:           "Lager",
		BatchSize:      10,
		ExpireDuration: 6,
		RecipeID:       recipe.ID,
	}
	require.NoError(t, db.Create(product).Error)

	return &fixture{db: db, svc: svc, product: product, hops: hops, malt: malt}
}

func stockOf(t *testing.T, db *gorm.DB, id uuid.UUID) int {
	t.Helper()
	qty, err := stock.GetQuantity(context.Background(), db, id)
	require.NoError(t, err)
	return qty
}

func TestCreateBatch_ConsumesStock(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	produced := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	f.svc.(*service).now = func() time.Time { return produced }

	view, err := f.svc.Create(ctx, CreateBatchInput{ProductID: f.product.ID, BatchCount: 3})
	require.NoError(t, err)

	assert.Equal(t, "Batch of Product: Helles of type: Lager", view.Name)
	assert.Equal(t, 10, view.InitialQuantity)
	assert.Equal(t, 10, view.AvailableQuantity)
	assert.True(t, view.ProductionDate.Equal(produced))
	assert.True(t, view.DateOfExpiry.Equal(produced.AddDate(0, 6, 0)), "expiry is production date plus shelf life months")

	// 2 hops and 5 malt per unit, times a batch count of 3.
	assert.Equal(t, 94, stockOf(t, f.db, f.hops.ID))
	assert.Equal(t, 85, stockOf(t, f.db, f.malt.ID))
}

func TestCreateBatch_InsufficientStockRejectsRun(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	// 40 batches need 80 hops (fine) and 200 malt (only 100 on hand).
	_, err := f.svc.Create(ctx, CreateBatchInput{ProductID: f.product.ID, BatchCount: 40})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeInsufficientStock, typed.Code())
	assert.Equal(t, "Ingredients not sufficient to make the batch, name: Malt", typed.Message())

	// Nothing was consumed and no batch row exists.
	assert.Equal(t, 100, stockOf(t, f.db, f.hops.ID))
	assert.Equal(t, 100, stockOf(t, f.db, f.malt.ID))
	var count int64
	require.NoError(t, f.db.Model(&models.Batch{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateBatch_Validation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	for _, count := range []int{0, -1} {
		_, err := f.svc.Create(ctx, CreateBatchInput{ProductID: f.product.ID, BatchCount: count})
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}

	_, err := f.svc.Create(ctx, CreateBatchInput{BatchCount: 1})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCreateBatch_ProductNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), CreateBatchInput{ProductID: uuid.New(), BatchCount: 1})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Product not found", typed.Message())
}

func TestCreateBatch_RecipeMissing(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	orphan := &models.Product{
		ID:        uuid.New(),
		Name:      "Orphan",
		Type:      "Ale",
		BatchSize: 5,
		RecipeID:  uuid.New(),
	}
	require.NoError(t, f.db.Create(orphan).Error)

	_, err := f.svc.Create(ctx, CreateBatchInput{ProductID: orphan.ID, BatchCount: 1})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Recipe not found", typed.Message())
}

func TestCreateBatch_EmptyRecipe(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	hollow := &models.Recipe{ID: uuid.New(), Name: "Hollow"}
	require.NoError(t, f.db.Create(hollow).Error)
	product := &models.Product{
		ID:        uuid.New(),
		Name:      "Hollow Beer",
		Type:      "Ale",
		BatchSize: 5,
		RecipeID:  hollow.ID,
	}
	require.NoError(t, f.db.Create(product).Error)

	_, err := f.svc.Create(ctx, CreateBatchInput{ProductID: product.ID, BatchCount: 1})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Ingredients not found", typed.Message())
}

func TestEditBatch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, CreateBatchInput{ProductID: f.product.ID, BatchCount: 1})
	require.NoError(t, err)

	available := 4
	edited, err := f.svc.Edit(ctx, view.ID, EditBatchInput{AvailableQuantity: &available})
	require.NoError(t, err)
	assert.Equal(t, 4, edited.AvailableQuantity)
	assert.Equal(t, view.InitialQuantity, edited.InitialQuantity)

	// Bookkeeping edits never touch the ingredient ledger.
	assert.Equal(t, 98, stockOf(t, f.db, f.hops.ID))

	negative := -1
	_, err = f.svc.Edit(ctx, view.ID, EditBatchInput{AvailableQuantity: &negative})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = f.svc.Edit(ctx, uuid.New(), EditBatchInput{})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Equal(t, "Batch not found", typed.Message())
}

func TestDeleteBatch_LeavesLedgerAlone(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	view, err := f.svc.Create(ctx, CreateBatchInput{ProductID: f.product.ID, BatchCount: 1})
	require.NoError(t, err)
	require.Equal(t, 98, stockOf(t, f.db, f.hops.ID))

	require.NoError(t, f.svc.Delete(ctx, view.ID))
	assert.Equal(t, 98, stockOf(t, f.db, f.hops.ID))

	err = f.svc.Delete(ctx, view.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestListBatches(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	for range 2 {
		_, err := f.svc.Create(ctx, CreateBatchInput{ProductID: f.product.ID, BatchCount: 1})
		require.NoError(t, err)
	}

	views, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}
