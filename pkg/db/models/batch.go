package models

import (
	"time"

	"github.com/google/uuid"
)

// Batch is one production run of a product. Creation consumes ingredient
// stock; available_quantity is drawn down afterwards by order fulfillment.
type Batch struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name              string    `gorm:"column:name;not null"`
	ProductionDate    time.Time `gorm:"column:production_date;not null"`
	InitialQuantity   int       `gorm:"column:initial_quantity;not null"`
	AvailableQuantity int       `gorm:"column:available_quantity;not null"`
	DateOfExpiry      time.Time `gorm:"column:date_of_expiry;not null"`
	ProductID         uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
