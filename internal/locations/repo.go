package locations

import (
	"context"

	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository manages persistence for locations and user assignments.
type Repository interface {
	Create(ctx context.Context, location *models.Location) error
	Save(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
	List(ctx context.Context) ([]models.Location, error)
	ListWithUsers(ctx context.Context) ([]models.Location, error)
	FindByIDWithUsers(ctx context.Context, id uuid.UUID) (*models.Location, error)
	AssignUser(ctx context.Context, location *models.Location, user *models.User) error
	RemoveUser(ctx context.Context, location *models.Location, user *models.User) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a location repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *repository) Save(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).Omit("Users").Save(location).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Location{}).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *repository) List(ctx context.Context) ([]models.Location, error) {
	var found []models.Location
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func (r *repository) ListWithUsers(ctx context.Context) ([]models.Location, error) {
	var found []models.Location
	if err := r.db.WithContext(ctx).
		Preload("Users").
		Order("created_at ASC").
		Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func (r *repository) FindByIDWithUsers(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).
		Preload("Users").
		First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *repository) AssignUser(ctx context.Context, location *models.Location, user *models.User) error {
	return r.db.WithContext(ctx).Model(location).Association("Users").Append(user)
}

func (r *repository) RemoveUser(ctx context.Context, location *models.Location, user *models.User) error {
	return r.db.WithContext(ctx).Model(location).Association("Users").Delete(user)
}
