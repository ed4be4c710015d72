package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brewopshq/brewhaus-backend/internal/recipes"
	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines product catalog operations.
type Service interface {
	List(ctx context.Context) ([]ProductView, error)
	Add(ctx context.Context, input CreateProductInput) (*ProductView, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo    Repository
	recipes recipes.Repository
}

// NewService wires a product service with its collaborators.
func NewService(repo Repository, recipeRepo recipes.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if recipeRepo == nil {
		return nil, fmt.Errorf("recipe repository required")
	}
	return &service{repo: repo, recipes: recipeRepo}, nil
}

// ensureRecipe verifies the referenced recipe exists before a product can
// point at it.
func (s *service) ensureRecipe(ctx context.Context, id uuid.UUID) error {
	_, err := s.recipes.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "Recipe not found")
	}
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load recipe")
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]ProductView, error) {
	found, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list products")
	}
	views := make([]ProductView, 0, len(found))
	for i := range found {
		views = append(views, *toView(&found[i]))
	}
	return views, nil
}

func (s *service) Add(ctx context.Context, input CreateProductInput) (*ProductView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.BatchSize < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "batch_size must be at least 1")
	}
	if input.ExpireDuration < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expire_duration cannot be negative")
	}
	if input.SellingPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "selling_price cannot be negative")
	}
	if err := s.ensureRecipe(ctx, input.RecipeID); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:             uuid.New(),
		Name:           name,
		Description:    input.Description,
		Type:           strings.TrimSpace(input.Type),
		SellingPrice:   input.SellingPrice,
		BatchSize:      input.BatchSize,
		ExpireDuration: input.ExpireDuration,
		RecipeID:       input.RecipeID,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}

	created, err := s.repo.FindByIDWithRecipe(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return toView(created), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*ProductView, error) {
	product, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Type != nil && strings.TrimSpace(*input.Type) != "" {
		product.Type = strings.TrimSpace(*input.Type)
	}
	if input.SellingPrice != nil {
		if input.SellingPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "selling_price cannot be negative")
		}
		product.SellingPrice = *input.SellingPrice
	}
	if input.BatchSize != nil {
		if *input.BatchSize < 1 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "batch_size must be at least 1")
		}
		product.BatchSize = *input.BatchSize
	}
	if input.ExpireDuration != nil {
		if *input.ExpireDuration < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "expire_duration cannot be negative")
		}
		product.ExpireDuration = *input.ExpireDuration
	}
	if input.RecipeID != nil {
		if err := s.ensureRecipe(ctx, *input.RecipeID); err != nil {
			return nil, err
		}
		product.RecipeID = *input.RecipeID
	}

	product.Recipe = nil
	if err := s.repo.Save(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update product")
	}

	updated, err := s.repo.FindByIDWithRecipe(ctx, product.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return toView(updated), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete product")
	}
	return nil
}

func toView(product *models.Product) *ProductView {
	view := &ProductView{
		ID:             product.ID,
		Name:           product.Name,
		Description:    product.Description,
		Type:           product.Type,
		SellingPrice:   product.SellingPrice,
		BatchSize:      product.BatchSize,
		ExpireDuration: product.ExpireDuration,
		RecipeID:       product.RecipeID,
		CreatedAt:      product.CreatedAt,
	}
	if product.Recipe != nil {
		view.RecipeName = product.Recipe.Name
	}
	return view
}
