package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a plain staff record; locations are assigned through the
// location_users join table.
type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email"`
	ContactNo string    `gorm:"column:contact_no"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
