package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUserInput registers a brewery staff member.
type CreateUserInput struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	ContactNo string `json:"contact_no"`
}

// UpdateUserInput applies partial field updates to a user.
type UpdateUserInput struct {
	Name      *string `json:"name"`
	Email     *string `json:"email" validate:"omitempty,email"`
	ContactNo *string `json:"contact_no"`
}

// UserView is the read shape for user endpoints.
type UserView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ContactNo string    `json:"contact_no"`
	CreatedAt time.Time `json:"created_at"`
}

// Service defines user directory operations.
type Service interface {
	List(ctx context.Context) ([]UserView, error)
	Add(ctx context.Context, input CreateUserInput) (*UserView, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Repository manages persistence for users.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a user repository bound to the provided database.
func NewRepository(conn *gorm.DB) Repository {
	return &repository{db: conn}
}

func (r *repository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) Save(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) List(ctx context.Context) ([]models.User, error) {
	var found []models.User
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

type service struct {
	repo Repository
}

// NewService wires a user service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]UserView, error) {
	found, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	views := make([]UserView, 0, len(found))
	for i := range found {
		views = append(views, *toView(&found[i]))
	}
	return views, nil
}

func (s *service) Add(ctx context.Context, input CreateUserInput) (*UserView, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user name is required")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	user := &models.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		ContactNo: strings.TrimSpace(input.ContactNo),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
	}
	return toView(user), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserView, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		user.Email = strings.TrimSpace(*input.Email)
	}
	if input.ContactNo != nil {
		user.ContactNo = strings.TrimSpace(*input.ContactNo)
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update user")
	}
	return toView(user), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user")
	}
	return nil
}

func toView(user *models.User) *UserView {
	return &UserView{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		ContactNo: user.ContactNo,
		CreatedAt: user.CreatedAt,
	}
}
