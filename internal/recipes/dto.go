package recipes

import "github.com/google/uuid"

// IngredientLine pairs an ingredient name with a per-unit quantity in
// recipe payloads and views.
type IngredientLine struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// CreateRecipeInput creates a recipe and its ingredient list. Unknown
// ingredient names are created with zero stock.
type CreateRecipeInput struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description"`
	Ingredients []IngredientLine `json:"ingredients" validate:"required,min=1,dive"`
}

// UpdateRecipeInput applies partial updates. A nil or empty ingredient list
// leaves the existing lines untouched; a populated list is reconciled
// against them.
type UpdateRecipeInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Ingredients []IngredientLine `json:"ingredients" validate:"omitempty,dive"`
}

// RecipeView is the read shape for recipe endpoints.
type RecipeView struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Ingredients []IngredientLine `json:"ingredients"`
}
