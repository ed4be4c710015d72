package models

import (
	"time"

	"github.com/google/uuid"
)

// Order consumes available quantity from the earliest-produced batch that can
// cover it. BatchID records which batch fulfilled the order.
type Order struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string     `gorm:"column:name;not null"`
	Quantity  int        `gorm:"column:quantity;not null"`
	ProductID uuid.UUID  `gorm:"column:product_id;type:uuid;not null"`
	BatchID   *uuid.UUID `gorm:"column:batch_id;type:uuid"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
