package recipes

import (
	"context"

	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Requirement is the per-unit demand a recipe places on one ingredient.
type Requirement struct {
	IngredientID uuid.UUID `gorm:"column:ingredient_id"`
	Name         string    `gorm:"column:name"`
	PerUnit      int       `gorm:"column:quantity"`
}

// Requirements resolves the ingredient demand of the recipe inside the
// caller's transaction. A recipe with no lines is unusable for production,
// so an empty result is reported as not found.
func Requirements(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) ([]Requirement, error) {
	if tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "recipes: transaction required")
	}

	var reqs []Requirement
	err := tx.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Select("recipe_ingredients.ingredient_id, ingredients.name, recipe_ingredients.quantity").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id = ?", recipeID).
		Order("recipe_ingredients.created_at ASC, ingredients.name ASC").
		Scan(&reqs).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recipes: resolve requirements")
	}
	if len(reqs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Ingredients not found")
	}
	return reqs, nil
}
