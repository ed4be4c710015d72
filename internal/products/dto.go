package products

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductInput registers a sellable product against an existing recipe.
// ExpireDuration is the shelf life of a produced batch in months.
type CreateProductInput struct {
	Name           string          `json:"name" validate:"required"`
	Description    string          `json:"description"`
	Type           string          `json:"type" validate:"required"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	BatchSize      int             `json:"batch_size" validate:"required,min=1"`
	ExpireDuration int             `json:"expire_duration" validate:"min=0"`
	RecipeID       uuid.UUID       `json:"recipe_id" validate:"required"`
}

// UpdateProductInput applies partial field updates to a product.
type UpdateProductInput struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Type           *string          `json:"type"`
	SellingPrice   *decimal.Decimal `json:"selling_price"`
	BatchSize      *int             `json:"batch_size" validate:"omitempty,min=1"`
	ExpireDuration *int             `json:"expire_duration" validate:"omitempty,min=0"`
	RecipeID       *uuid.UUID       `json:"recipe_id"`
}

// ProductView is the read shape for product endpoints.
type ProductView struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Type           string          `json:"type"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	BatchSize      int             `json:"batch_size"`
	ExpireDuration int             `json:"expire_duration"`
	RecipeID       uuid.UUID       `json:"recipe_id"`
	RecipeName     string          `json:"recipe_name,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
