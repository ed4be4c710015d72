package ingredients

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brewopshq/brewhaus-backend/pkg/db"
	"github.com/brewopshq/brewhaus-backend/pkg/db/models"
	pkgerrors "github.com/brewopshq/brewhaus-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines ingredient catalog operations.
type Service interface {
	List(ctx context.Context) ([]IngredientView, error)
	Add(ctx context.Context, input AddIngredientInput) (*IngredientView, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateIngredientInput) (*IngredientView, error)
}

type service struct {
	repo Repository
}

// NewService wires an ingredient service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ingredient repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]IngredientView, error) {
	rows, err := s.repo.ListWithStock(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list ingredients")
	}
	views := make([]IngredientView, 0, len(rows))
	for _, row := range rows {
		views = append(views, IngredientView{
			ID:            row.ID,
			Name:          row.Name,
			Description:   row.Description,
			TotalQuantity: row.CurrentQuantity,
		})
	}
	return views, nil
}

func (s *service) Add(ctx context.Context, input AddIngredientInput) (*IngredientView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ingredient name is required")
	}

	ingredient := &models.Ingredient{
		ID:          uuid.New(),
		Name:        name,
		Description: input.Description,
	}
	if err := s.repo.Create(ctx, ingredient); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("ingredient %q already exists", name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create ingredient")
	}

	return &IngredientView{
		ID:          ingredient.ID,
		Name:        ingredient.Name,
		Description: ingredient.Description,
	}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateIngredientInput) (*IngredientView, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ingredient name is required")
	}

	ingredient, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Ingredient not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load ingredient")
	}

	ingredient.Name = name
	ingredient.Description = input.Description
	if err := s.repo.Update(ctx, ingredient); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("ingredient %q already exists", name))
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update ingredient")
	}

	qty, err := s.repo.StockFor(ctx, ingredient.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load ingredient stock")
	}

	return &IngredientView{
		ID:            ingredient.ID,
		Name:          ingredient.Name,
		Description:   ingredient.Description,
		TotalQuantity: qty,
	}, nil
}
