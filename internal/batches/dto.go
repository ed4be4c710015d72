package batches

import (
	"time"

	"github.com/google/uuid"
)

// CreateBatchInput requests a production run. BatchCount scales the
// ingredient consumption of the product's recipe.
type CreateBatchInput struct {
	ProductID  uuid.UUID `json:"product_id" validate:"required"`
	BatchCount int       `json:"batch_count" validate:"required,min=1"`
}

// EditBatchInput applies field-level corrections to a recorded batch. Edits
// never replay ingredient consumption; they fix bookkeeping only.
type EditBatchInput struct {
	Name              *string    `json:"name"`
	ProductionDate    *time.Time `json:"production_date"`
	InitialQuantity   *int       `json:"initial_quantity" validate:"omitempty,min=0"`
	AvailableQuantity *int       `json:"available_quantity" validate:"omitempty,min=0"`
	DateOfExpiry      *time.Time `json:"date_of_expiry"`
}

// BatchView is the read shape for batch endpoints.
type BatchView struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	ProductionDate    time.Time `json:"production_date"`
	InitialQuantity   int       `json:"initial_quantity"`
	AvailableQuantity int       `json:"available_quantity"`
	DateOfExpiry      time.Time `json:"date_of_expiry"`
	ProductID         uuid.UUID `json:"product_id"`
}
