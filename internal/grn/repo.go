package grn

import (
	"context"

	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for GRN headers and line items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, grn *models.GRN) error
	Save(ctx context.Context, grn *models.GRN) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.GRN, error)
	List(ctx context.Context) ([]models.GRN, error)
	LineItems(ctx context.Context, grnID uuid.UUID) ([]models.GRNLineItem, error)
	NamedLineItems(ctx context.Context, grnID uuid.UUID) ([]NamedLine, error)
	AddLineItem(ctx context.Context, line *models.GRNLineItem) error
	UpdateLineItemQuantity(ctx context.Context, grnID, ingredientID uuid.UUID, qty int) error
	DeleteLineItems(ctx context.Context, grnID uuid.UUID, ingredientIDs []uuid.UUID) error
}

// NamedLine is one GRN line joined with its ingredient name.
type NamedLine struct {
	IngredientID uuid.UUID `gorm:"column:ingredient_id"`
	Name         string    `gorm:"column:name"`
	Quantity     int       `gorm:"column:quantity"`
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a GRN repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, grn *models.GRN) error {
	return r.db.WithContext(ctx).Create(grn).Error
}

func (r *repository) Save(ctx context.Context, grn *models.GRN) error {
	return r.db.WithContext(ctx).Save(grn).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.GRN, error) {
	var grn models.GRN
	if err := r.db.WithContext(ctx).First(&grn, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &grn, nil
}

func (r *repository) List(ctx context.Context) ([]models.GRN, error) {
	var found []models.GRN
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func (r *repository) LineItems(ctx context.Context, grnID uuid.UUID) ([]models.GRNLineItem, error) {
	var lines []models.GRNLineItem
	if err := r.db.WithContext(ctx).
		Where("grn_id = ?", grnID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repository) NamedLineItems(ctx context.Context, grnID uuid.UUID) ([]NamedLine, error) {
	var lines []NamedLine
	err := r.db.WithContext(ctx).
		Model(&models.GRNLineItem{}).
		Select("grn_line_items.ingredient_id, ingredients.name, grn_line_items.quantity").
		Joins("JOIN ingredients ON ingredients.id = grn_line_items.ingredient_id").
		Where("grn_line_items.grn_id = ?", grnID).
		Order("grn_line_items.created_at ASC, ingredients.name ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repository) AddLineItem(ctx context.Context, line *models.GRNLineItem) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *repository) UpdateLineItemQuantity(ctx context.Context, grnID, ingredientID uuid.UUID, qty int) error {
	return r.db.WithContext(ctx).
		Model(&models.GRNLineItem{}).
		Where("grn_id = ? AND ingredient_id = ?", grnID, ingredientID).
		Update("quantity", qty).Error
}

func (r *repository) DeleteLineItems(ctx context.Context, grnID uuid.UUID, ingredientIDs []uuid.UUID) error {
	if len(ingredientIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("grn_id = ? AND ingredient_id IN ?", grnID, ingredientIDs).
		Delete(&models.GRNLineItem{}).Error
}
