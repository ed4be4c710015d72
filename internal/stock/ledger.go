// Package stock is the single writer of current_stocks rows. GRN intake and
// batch production both mutate on-hand quantities exclusively through the
// functions here, always inside the caller's transaction.
package stock

import (
	"context"
	"errors"
	"fmt"

	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplyDelta adds delta to the on-hand quantity of the ingredient, creating a
// zero-initialized row first when none exists. Negative deltas may drive the
// quantity below zero; callers that need a floor use ConsumeExact instead.
func ApplyDelta(ctx context.Context, tx *gorm.DB, ingredientID uuid.UUID, delta int) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "stock: transaction required")
	}
	if ingredientID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock: ingredient id required")
	}
	if delta == 0 {
		return nil
	}

	result := tx.WithContext(ctx).
		Model(&models.CurrentStock{}).
		Where("ingredient_id = ?", ingredientID).
		Update("current_quantity", gorm.Expr("current_quantity + ?", delta))
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "stock: apply delta")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	row := models.CurrentStock{IngredientID: ingredientID, CurrentQuantity: delta}
	if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stock: create stock row")
	}
	return nil
}

// GetQuantity reports the on-hand quantity for the ingredient. A missing row
// reads as zero.
func GetQuantity(ctx context.Context, tx *gorm.DB, ingredientID uuid.UUID) (int, error) {
	if tx == nil {
		return 0, pkgerrors.New(pkgerrors.CodeInternal, "stock: transaction required")
	}

	var row models.CurrentStock
	err := tx.WithContext(ctx).First(&row, "ingredient_id = ?", ingredientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stock: load stock row")
	}
	return row.CurrentQuantity, nil
}

// ConsumeExact decrements the ingredient's on-hand quantity by qty in a
// single conditional UPDATE. The decrement only lands when the row holds at
// least qty, so two concurrent consumers cannot both drain the same units.
func ConsumeExact(ctx context.Context, tx *gorm.DB, ingredientID uuid.UUID, qty int) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "stock: transaction required")
	}
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("stock: consume quantity must be positive, got %d", qty))
	}

	result := tx.WithContext(ctx).
		Model(&models.CurrentStock{}).
		Where("ingredient_id = ? AND current_quantity >= ?", ingredientID, qty).
		Update("current_quantity", gorm.Expr("current_quantity - ?", qty))
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, result.Error, "stock: consume stock")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock")
	}
	return nil
}
