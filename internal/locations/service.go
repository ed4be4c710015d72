package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brewopshq/brewhaus-backend/internal/users"
	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateLocationInput registers a physical site.
type CreateLocationInput struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
}

// UpdateLocationInput replaces a location's name and address.
type UpdateLocationInput struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
}

// LocationView is the read shape for location endpoints.
type LocationView struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
}

// LocationWithUsersView adds the assigned staff to a location view.
type LocationWithUsersView struct {
	LocationView
	Users []users.UserView `json:"users"`
}

// Service defines location directory and assignment operations.
type Service interface {
	List(ctx context.Context) ([]LocationView, error)
	Get(ctx context.Context, id uuid.UUID) (*LocationView, error)
	Add(ctx context.Context, input CreateLocationInput) (*LocationView, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateLocationInput) (*LocationView, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListWithUsers(ctx context.Context) ([]LocationWithUsersView, error)
	AssignUser(ctx context.Context, userID, locationID uuid.UUID) (*LocationWithUsersView, error)
	RemoveUser(ctx context.Context, userID, locationID uuid.UUID) (*LocationWithUsersView, error)
}

type service struct {
	repo  Repository
	users users.Repository
}

// NewService wires a location service with its collaborators.
func NewService(repo Repository, userRepo users.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("location repository required")
	}
	if userRepo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	return &service{repo: repo, users: userRepo}, nil
}

func (s *service) List(ctx context.Context) ([]LocationView, error) {
	found, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list locations")
	}
	views := make([]LocationView, 0, len(found))
	for i := range found {
		views = append(views, toView(&found[i]))
	}
	return views, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*LocationView, error) {
	location, err := s.findLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toView(location)
	return &view, nil
}

func (s *service) Add(ctx context.Context, input CreateLocationInput) (*LocationView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location name is required")
	}

	location := &models.Location{
		ID:      uuid.New(),
		Name:    name,
		Address: strings.TrimSpace(input.Address),
	}
	if err := s.repo.Create(ctx, location); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create location")
	}
	view := toView(location)
	return &view, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateLocationInput) (*LocationView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location name is required")
	}

	location, err := s.findLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	location.Name = name
	location.Address = strings.TrimSpace(input.Address)
	if err := s.repo.Save(ctx, location); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update location")
	}
	view := toView(location)
	return &view, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findLocation(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete location")
	}
	return nil
}

func (s *service) ListWithUsers(ctx context.Context) ([]LocationWithUsersView, error) {
	found, err := s.repo.ListWithUsers(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list locations with users")
	}
	views := make([]LocationWithUsersView, 0, len(found))
	for i := range found {
		views = append(views, toViewWithUsers(&found[i]))
	}
	return views, nil
}

func (s *service) AssignUser(ctx context.Context, userID, locationID uuid.UUID) (*LocationWithUsersView, error) {
	user, location, err := s.findPair(ctx, userID, locationID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AssignUser(ctx, location, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "assign user to location")
	}
	return s.withUsers(ctx, locationID)
}

func (s *service) RemoveUser(ctx context.Context, userID, locationID uuid.UUID) (*LocationWithUsersView, error) {
	user, location, err := s.findPair(ctx, userID, locationID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.RemoveUser(ctx, location, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove user from location")
	}
	return s.withUsers(ctx, locationID)
}

func (s *service) findLocation(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	location, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Location not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load location")
	}
	return location, nil
}

func (s *service) findPair(ctx context.Context, userID, locationID uuid.UUID) (*models.User, *models.Location, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
	}
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	location, err := s.findLocation(ctx, locationID)
	if err != nil {
		return nil, nil, err
	}
	return user, location, nil
}

func (s *service) withUsers(ctx context.Context, id uuid.UUID) (*LocationWithUsersView, error) {
	location, err := s.repo.FindByIDWithUsers(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load location users")
	}
	view := toViewWithUsers(location)
	return &view, nil
}

func toView(location *models.Location) LocationView {
	return LocationView{
		ID:      location.ID,
		Name:    location.Name,
		Address: location.Address,
	}
}

func toViewWithUsers(location *models.Location) LocationWithUsersView {
	view := LocationWithUsersView{
		LocationView: toView(location),
		Users:        make([]users.UserView, 0, len(location.Users)),
	}
	for i := range location.Users {
		user := &location.Users[i]
		view.Users = append(view.Users, users.UserView{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			ContactNo: user.ContactNo,
			CreatedAt: user.CreatedAt,
		})
	}
	return view
}
