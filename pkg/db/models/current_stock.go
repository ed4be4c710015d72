package models

import (
	"time"

	"github.com/google/uuid"
)

// CurrentStock tracks the running on-hand quantity per ingredient. Rows are
// only written by the stock ledger; a missing row means no stock was ever
// recorded and reads as zero.
type CurrentStock struct {
	IngredientID    uuid.UUID `gorm:"column:ingredient_id;type:uuid;primaryKey"`
	CurrentQuantity int       `gorm:"column:current_quantity;not null;default:0"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
