package ingredients

import (
	"context"

	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for ingredients and their stock reads.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, ingredient *models.Ingredient) error
	Update(ctx context.Context, ingredient *models.Ingredient) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error)
	FindByName(ctx context.Context, name string) (*models.Ingredient, error)
	ListByNames(ctx context.Context, names []string) ([]models.Ingredient, error)
	ListWithStock(ctx context.Context) ([]StockRow, error)
	StockFor(ctx context.Context, id uuid.UUID) (int, error)
}

// StockRow is one ingredient joined with its on-hand quantity. Ingredients
// without a stock row read as zero.
type StockRow struct {
	ID              uuid.UUID `gorm:"column:id"`
	Name            string    `gorm:"column:name"`
	Description     string    `gorm:"column:description"`
	CurrentQuantity int       `gorm:"column:current_quantity"`
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an ingredient repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, ingredient *models.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *repository) Update(ctx context.Context, ingredient *models.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *repository) ListByNames(ctx context.Context, names []string) ([]models.Ingredient, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var found []models.Ingredient
	if err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func (r *repository) ListWithStock(ctx context.Context) ([]StockRow, error) {
	var rows []StockRow
	err := r.db.WithContext(ctx).
		Model(&models.Ingredient{}).
		Select("ingredients.id, ingredients.name, ingredients.description, COALESCE(current_stocks.current_quantity, 0) AS current_quantity").
		Joins("LEFT JOIN current_stocks ON current_stocks.ingredient_id = ingredients.id").
		Order("ingredients.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) StockFor(ctx context.Context, id uuid.UUID) (int, error) {
	var qty *int
	err := r.db.WithContext(ctx).
		Model(&models.CurrentStock{}).
		Select("current_quantity").
		Where("ingredient_id = ?", id).
		Scan(&qty).Error
	if err != nil {
		return 0, err
	}
	if qty == nil {
		return 0, nil
	}
	return *qty, nil
}
