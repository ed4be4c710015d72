package ingredients

import "github.com/google/uuid"

// IngredientView is the read shape returned by all ingredient endpoints.
type IngredientView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	TotalQuantity int       `json:"total_quantity"`
}

// AddIngredientInput creates an ingredient with no stock on hand.
type AddIngredientInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateIngredientInput renames or re-describes an existing ingredient.
// Stock is never touched through this path.
type UpdateIngredientInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}
