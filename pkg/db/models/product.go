package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable good produced in batches from its recipe.
type Product struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name           string          `gorm:"column:name;not null"`
	Description    string          `gorm:"column:description"`
	Type           string          `gorm:"column:type;not null"`
	SellingPrice   decimal.Decimal `gorm:"column:selling_price;type:numeric(12,2);not null"`
	BatchSize      int             `gorm:"column:batch_size;not null;default:0"`
	ExpireDuration int             `gorm:"column:expire_duration;not null;default:0"` // months
	RecipeID       uuid.UUID       `gorm:"column:recipe_id;type:uuid;not null"`
	Recipe         *Recipe         `gorm:"foreignKey:RecipeID"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
