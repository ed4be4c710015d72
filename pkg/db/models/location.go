package models

import (
	"time"

	"github.com/google/uuid"
)

// Location is a physical site users can be assigned to.
type Location struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Address   string    `gorm:"column:address"`
	Users     []User    `gorm:"many2many:location_users"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
