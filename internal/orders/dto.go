package orders

import (
	"time"

	"github.com/google/uuid"
)

// CreateOrderInput requests units of a product from finished batch stock.
type CreateOrderInput struct {
	Name      string    `json:"name" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// OrderView is the read shape for order endpoints. BatchID names the batch
// that fulfilled the order.
type OrderView struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Quantity  int        `json:"quantity"`
	ProductID uuid.UUID  `json:"product_id"`
	BatchID   *uuid.UUID `json:"batch_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
