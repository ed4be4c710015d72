package orders

import (
	"context"

	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for orders and their batch draw-downs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	EarliestFulfillableBatch(ctx context.Context, productID uuid.UUID, qty int) (*models.Batch, error)
	DrawDownBatch(ctx context.Context, batchID uuid.UUID, qty int) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an order repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) List(ctx context.Context) ([]models.Order, error) {
	var found []models.Order
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

// EarliestFulfillableBatch finds the oldest production run that can cover the
// requested quantity on its own. Orders are never split across batches.
func (r *repository) EarliestFulfillableBatch(ctx context.Context, productID uuid.UUID, qty int) (*models.Batch, error) {
	var batch models.Batch
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND available_quantity >= ?", productID, qty).
		Order("production_date ASC, created_at ASC").
		First(&batch).Error
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

// DrawDownBatch conditionally decrements the batch's available quantity,
// reporting whether the decrement landed.
func (r *repository) DrawDownBatch(ctx context.Context, batchID uuid.UUID, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Batch{}).
		Where("id = ? AND available_quantity >= ?", batchID, qty).
		Update("available_quantity", gorm.Expr("available_quantity - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
