package batches

import (
	"context"

	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for production batches.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, batch *models.Batch) error
	Save(ctx context.Context, batch *models.Batch) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Batch, error)
	List(ctx context.Context) ([]models.Batch, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a batch repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, batch *models.Batch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *repository) Save(ctx context.Context, batch *models.Batch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Batch{}).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Batch, error) {
	var batch models.Batch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *repository) List(ctx context.Context) ([]models.Batch, error) {
	var found []models.Batch
	if err := r.db.WithContext(ctx).
		Order("production_date ASC, created_at ASC").
		Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}
