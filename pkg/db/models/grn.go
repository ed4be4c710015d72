package models

import (
	"time"

	"github.com/google/uuid"
)

// GRN is the header row for one goods-received event.
type GRN struct {
	ID         uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	IssuedDate time.Time     `gorm:"column:issued_date;not null"`
	LineItems  []GRNLineItem `gorm:"foreignKey:GRNID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

// GRNLineItem records the quantity of one ingredient received in one GRN.
// At most one line item exists per (grn, ingredient) pair.
type GRNLineItem struct {
	GRNID        uuid.UUID `gorm:"column:grn_id;type:uuid;primaryKey"`
	IngredientID uuid.UUID `gorm:"column:ingredient_id;type:uuid;primaryKey"`
	Quantity     int       `gorm:"column:quantity;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
