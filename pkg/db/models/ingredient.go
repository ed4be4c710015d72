package models

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is a raw material received through GRNs and consumed by batches.
type Ingredient struct {
	ID          uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string        `gorm:"column:name;not null;uniqueIndex"`
	Description string        `gorm:"column:description"`
	Stock       *CurrentStock `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}
