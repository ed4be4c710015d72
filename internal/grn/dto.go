package grn

import (
	"time"

	"github.com/google/uuid"
)

// LineInput is one received ingredient in a GRN payload.
type LineInput struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// LineView is one received ingredient in a GRN read shape.
type LineView struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// CreateGRNInput records one goods-received event. Every named ingredient
// must already exist in the catalog.
type CreateGRNInput struct {
	IssuedDate  *time.Time  `json:"issued_date"`
	Ingredients []LineInput `json:"ingredients" validate:"required,min=1,dive"`
}

// UpdateGRNInput reconciles an existing GRN. An absent or empty ingredient
// list removes every line item and reverses its stock contribution.
type UpdateGRNInput struct {
	IssuedDate  *time.Time  `json:"issued_date"`
	Ingredients []LineInput `json:"ingredients" validate:"omitempty,dive"`
}

// GRNView is the read shape for GRN endpoints.
type GRNView struct {
	ID          uuid.UUID  `json:"id"`
	IssuedDate  time.Time  `json:"issued_date"`
	Ingredients []LineView `json:"ingredients"`
}
