package recipes

import (
	"context"

	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for recipes and their ingredient lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, recipe *models.Recipe) error
	Save(ctx context.Context, recipe *models.Recipe) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	List(ctx context.Context) ([]models.Recipe, error)
	LineItems(ctx context.Context, recipeID uuid.UUID) ([]models.RecipeIngredient, error)
	NamedLineItems(ctx context.Context, recipeID uuid.UUID) ([]NamedLine, error)
	AddLineItem(ctx context.Context, line *models.RecipeIngredient) error
	UpdateLineItemQuantity(ctx context.Context, recipeID, ingredientID uuid.UUID, qty int) error
	DeleteLineItems(ctx context.Context, recipeID uuid.UUID, ingredientIDs []uuid.UUID) error
}

// NamedLine is one recipe line joined with its ingredient name.
type NamedLine struct {
	IngredientID uuid.UUID `gorm:"column:ingredient_id"`
	Name         string    `gorm:"column:name"`
	Quantity     int       `gorm:"column:quantity"`
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a recipe repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *repository) Save(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *repository) List(ctx context.Context) ([]models.Recipe, error) {
	var found []models.Recipe
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func (r *repository) LineItems(ctx context.Context, recipeID uuid.UUID) ([]models.RecipeIngredient, error) {
	var lines []models.RecipeIngredient
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repository) NamedLineItems(ctx context.Context, recipeID uuid.UUID) ([]NamedLine, error) {
	var lines []NamedLine
	err := r.db.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Select("recipe_ingredients.ingredient_id, ingredients.name, recipe_ingredients.quantity").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id = ?", recipeID).
		Order("recipe_ingredients.created_at ASC, ingredients.name ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repository) AddLineItem(ctx context.Context, line *models.RecipeIngredient) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *repository) UpdateLineItemQuantity(ctx context.Context, recipeID, ingredientID uuid.UUID, qty int) error {
	return r.db.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Where("recipe_id = ? AND ingredient_id = ?", recipeID, ingredientID).
		Update("quantity", qty).Error
}

func (r *repository) DeleteLineItems(ctx context.Context, recipeID uuid.UUID, ingredientIDs []uuid.UUID) error {
	if len(ingredientIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("recipe_id = ? AND ingredient_id IN ?", recipeID, ingredientIDs).
		Delete(&models.RecipeIngredient{}).Error
}
