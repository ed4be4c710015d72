package dashboard

import (
	"context"
	"time"

	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository aggregates row counts for the dashboard.
type Repository interface {
	CountBatches(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountIngredients(ctx context.Context) (int64, error)
	CountGRNs(ctx context.Context) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
	CountUsers(ctx context.Context) (int64, error)
	CountLocations(ctx context.Context) (int64, error)
	CountExpiredBatches(ctx context.Context, asOf time.Time) (int64, error)
}

type repository struct {
	conn *gorm.DB
}

func NewRepository(conn *gorm.DB) Repository {
	return &repository{conn: conn}
}

func (r *repository) count(ctx context.Context, model any) (int64, error) {
	var n int64
	err := r.conn.WithContext(ctx).Model(model).Count(&n).Error
	return n, err
}

func (r *repository) CountBatches(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Batch{})
}

func (r *repository) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Product{})
}

func (r *repository) CountIngredients(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Ingredient{})
}

func (r *repository) CountGRNs(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.GRN{})
}

func (r *repository) CountOrders(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Order{})
}

func (r *repository) CountUsers(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.User{})
}

func (r *repository) CountLocations(ctx context.Context) (int64, error) {
	return r.count(ctx, &models.Location{})
}

func (r *repository) CountExpiredBatches(ctx context.Context, asOf time.Time) (int64, error) {
	var n int64
	err := r.conn.WithContext(ctx).
		Model(&models.Batch{}).
		Where("date_of_expiry < ?", asOf).
		Count(&n).Error
	return n, err
}
