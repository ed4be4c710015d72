package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is a named list of per-unit ingredient requirements.
type Recipe struct {
	ID          uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string             `gorm:"column:name;not null"`
	Description string             `gorm:"column:description"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// RecipeIngredient holds the quantity of one ingredient required to produce
// one batch unit of the recipe.
type RecipeIngredient struct {
	RecipeID     uuid.UUID `gorm:"column:recipe_id;type:uuid;primaryKey"`
	IngredientID uuid.UUID `gorm:"column:ingredient_id;type:uuid;primaryKey"`
	Quantity     int       `gorm:"column:quantity;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
